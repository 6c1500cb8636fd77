package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/tphakala/go-streamdsp/internal/cliutil"
	"github.com/tphakala/go-streamdsp/internal/coeffs"
	"github.com/tphakala/go-streamdsp/internal/filter"
)

const (
	defaultAttenuationDB = 60.0
	defaultOrder         = 4

	// responseFFTSize sets the frequency grid used to measure a design.
	responseFFTSize = 8192
)

type design struct {
	cutoffHz     float64
	rate         float64
	taps         int
	window       string
	atten        float64
	transitionHz float64
	order        int
}

func (d design) validate() error {
	if d.rate <= 0 {
		return fmt.Errorf("%w: -rate is required", cliutil.ErrUsage)
	}
	if d.cutoffHz <= 0 {
		return fmt.Errorf("%w: -cutoff is required", cliutil.ErrUsage)
	}
	return nil
}

func (d design) lowPass() ([]float64, error) {
	if err := d.validate(); err != nil {
		return nil, err
	}
	window, err := filter.ParseWindow(d.window)
	if err != nil {
		return nil, err
	}

	cutoff := d.cutoffHz / d.rate
	if d.taps == 0 {
		if d.transitionHz <= 0 {
			return nil, fmt.Errorf("%w: pass -taps or -transition", cliutil.ErrUsage)
		}
		if window != filter.WindowKaiser {
			return nil, fmt.Errorf("%w: -transition needs -window kaiser", cliutil.ErrUsage)
		}
		return filter.DesignLowPassAuto(cutoff, d.transitionHz/d.rate, d.atten)
	}

	return filter.DesignLowPass(filter.LowPassParams{
		NumTaps:     d.taps,
		Cutoff:      cutoff,
		Window:      window,
		Attenuation: d.atten,
	})
}

// report is what a design measured as, in Hz and dB.
type report struct {
	kind      string
	size      int
	cutoffHz  float64
	hasCutoff bool
	dcGainDB  float64
}

func measure(kind string, size int, resp filter.Response, rate float64) report {
	f, ok := resp.CutoffFrequency()
	return report{
		kind:      kind,
		size:      size,
		cutoffHz:  f * rate,
		hasCutoff: ok,
		dcGainDB:  filter.MagnitudeDB(resp.DCGain()),
	}
}

func (r report) print(w io.Writer, output string) {
	unit := "taps"
	if r.kind == "iir" {
		unit = "sections"
	}
	cutoff := "not reached"
	if r.hasCutoff {
		cutoff = fmt.Sprintf("%.1f Hz", r.cutoffHz)
	}
	fmt.Fprintf(w, "Designed %s low-pass (%d %s): -3 dB at %s, DC gain %.2f dB, wrote %s\n",
		r.kind, r.size, unit, cutoff, r.dcGainDB, output)
}

func writeFIR(log *logrus.Entry, d design, path string, precision int) (report, error) {
	taps, err := d.lowPass()
	if err != nil {
		return report{}, err
	}
	if err := writeFile(path, func(w io.Writer) error {
		return coeffs.WriteFIR(w, taps, precision)
	}); err != nil {
		return report{}, err
	}

	r := measure("fir", len(taps), filter.FIRResponse(taps, responseFFTSize), d.rate)
	log.WithFields(logrus.Fields{
		"taps":      len(taps),
		"window":    d.window,
		"cutoff_hz": r.cutoffHz,
	}).Debug("designed FIR")
	return r, nil
}

func writeIIR(log *logrus.Entry, d design, path string, precision int) (report, error) {
	if err := d.validate(); err != nil {
		return report{}, err
	}
	sections, err := filter.ButterworthLowPass(d.cutoffHz, d.order, d.rate)
	if err != nil {
		return report{}, err
	}
	if err := writeFile(path, func(w io.Writer) error {
		return coeffs.WriteBiquads(w, filter.ToSOSRows(sections), precision)
	}); err != nil {
		return report{}, err
	}

	resp, err := filter.CascadeResponse(sections, responseFFTSize)
	if err != nil {
		return report{}, err
	}
	r := measure("iir", len(sections), resp, d.rate)
	log.WithFields(logrus.Fields{
		"order":     d.order,
		"sections":  len(sections),
		"cutoff_hz": r.cutoffHz,
	}).Debug("designed Butterworth cascade")
	return r, nil
}

func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { err = errors.Join(err, f.Close()) }()
	return write(f)
}
