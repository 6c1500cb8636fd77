// Command downmix shifts a band of a real stream down to baseband, low-pass
// filters it and keeps every M-th sample.
//
// Usage:
//
//	downmix -coeffs lowpass.txt -factor 8 -mix 12000 -rate 48000 input.txt output.txt
//	downmix -coeffs lowpass.txt -factor 4 -mix 1000 input.wav output.wav
//
// WAV input supplies the sample rate unless -rate is given. WAV output is
// written at the decimated rate.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/tphakala/go-streamdsp/internal/cliutil"
	"github.com/tphakala/go-streamdsp/internal/driver"
)

const toolName = "downmix"

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
	common := cliutil.RegisterCommon(fs)
	var opts options
	fs.StringVar(&opts.coeffPath, "coeffs", "", "Low-pass FIR coefficient file (required)")
	fs.IntVar(&opts.numTaps, "taps", 0, "Number of taps to use (0 = every tap in the file)")
	fs.BoolVar(&opts.strict, "strict", false, "Fail when the coefficient file has fewer than -taps values")
	fs.IntVar(&opts.factor, "factor", defaultFactor, "Decimation factor M")
	fs.Float64Var(&opts.mixHz, "mix", 0, "Local oscillator frequency in Hz")
	rate := fs.Int("rate", 0, "Input sample rate in Hz (required for text input)")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: %s [options] input output\n\nOptions:\n", toolName)
		fs.PrintDefaults()
	}

	log, err := cliutil.Parse(fs, common, args)
	if err != nil {
		return err
	}
	paths, err := cliutil.Positional(fs, 2, "input output")
	if err != nil {
		fs.Usage()
		return err
	}
	if err := opts.validate(); err != nil {
		return err
	}

	job := cliutil.Job{
		Input:      paths[0],
		Output:     paths[1],
		Common:     common,
		Logger:     log.WithFields(logrus.Fields{"factor": opts.factor, "mix_hz": opts.mixHz}),
		SampleRate: *rate,
		Decimation: opts.factor,
	}

	var stats driver.Stats
	if common.Fast {
		stats, err = downmixFile[float32](job, opts)
	} else {
		stats, err = downmixFile[float64](job, opts)
	}
	if err != nil {
		return err
	}

	cliutil.Report(os.Stdout, stats, job.Output)
	return nil
}
