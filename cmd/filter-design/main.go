// Command filter-design writes low-pass coefficient files for fir-filter,
// downmix and iir-filter, and reports the measured response of the result.
//
// Usage:
//
//	filter-design -cutoff 4000 -rate 48000 -taps 63 fir lowpass.txt
//	filter-design -cutoff 4000 -rate 48000 -window kaiser -atten 80 -transition 1000 fir lowpass.txt
//	filter-design -cutoff 1000 -rate 48000 -order 4 iir butter4.csv
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/tphakala/go-streamdsp/internal/cliutil"
)

const toolName = "filter-design"

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		logrus.WithError(err).Fatal(toolName + " failed")
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet(toolName, flag.ContinueOnError)
	var d design
	fs.Float64Var(&d.cutoffHz, "cutoff", 0, "Cutoff frequency in Hz (required)")
	fs.Float64Var(&d.rate, "rate", 0, "Sample rate in Hz (required)")
	fs.IntVar(&d.taps, "taps", 0, "FIR length (0 = derive from -atten and -transition)")
	fs.StringVar(&d.window, "window", "hamming", "FIR window: hamming, kaiser")
	fs.Float64Var(&d.atten, "atten", defaultAttenuationDB, "FIR stopband attenuation in dB (kaiser window)")
	fs.Float64Var(&d.transitionHz, "transition", 0, "FIR transition width in Hz, used when -taps is 0")
	fs.IntVar(&d.order, "order", defaultOrder, "IIR Butterworth order")
	precision := fs.Int("precision", -1, "Significant digits written (-1 = shortest exact)")
	logLevel := fs.String("log-level", "info", "Log level: debug, info, warn, error")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: %s [options] fir|iir output\n\nOptions:\n", toolName)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	logger, err := cliutil.NewLogger(*logLevel, os.Stderr)
	if err != nil {
		return err
	}
	log := logger.WithField("tool", toolName)

	pos, err := cliutil.Positional(fs, 2, "mode output")
	if err != nil {
		fs.Usage()
		return err
	}
	mode, output := pos[0], pos[1]

	var summary report
	switch mode {
	case "fir":
		summary, err = writeFIR(log, d, output, *precision)
	case "iir":
		summary, err = writeIIR(log, d, output, *precision)
	default:
		return fmt.Errorf("%w: mode must be fir or iir, got %q", cliutil.ErrUsage, mode)
	}
	if err != nil {
		return err
	}

	summary.print(os.Stdout, output)
	return nil
}
