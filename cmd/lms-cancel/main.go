// Command lms-cancel removes a sinusoidal interferer of known frequency from
// a sample stream with an adaptive LMS canceller.
//
// Usage:
//
//	lms-cancel -freq 50 -rate 8000 input.txt output.txt
//	lms-cancel -freq 60 -taps 4 -mu 0.005 input.wav output.wav
//
// The output is the error signal: the input minus the canceller's estimate
// of the interferer.
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

const toolName = "lms-cancel"

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
	fs.IntVar(&opts.taps, "taps", defaultTaps, "Number of adaptive weights")
	fs.Float64Var(&opts.mu, "mu", defaultStepSize, "Adaptation step size")
	fs.Float64Var(&opts.freqHz, "freq", 0, "Interferer frequency in Hz (required)")
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
		Logger:     log.WithFields(logrus.Fields{"taps": opts.taps, "mu": opts.mu, "freq_hz": opts.freqHz}),
		SampleRate: *rate,
	}

	var stats driver.Stats
	if common.Fast {
		stats, err = cancelFile[float32](job, opts)
	} else {
		stats, err = cancelFile[float64](job, opts)
	}
	if err != nil {
		return err
	}

	cliutil.Report(os.Stdout, stats, job.Output)
	return nil
}
