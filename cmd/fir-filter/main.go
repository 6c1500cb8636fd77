// Command fir-filter convolves a sample stream with FIR taps read from a
// coefficient file.
//
// Usage:
//
//	fir-filter -coeffs lowpass.txt input.txt output.txt
//	fir-filter -coeffs lowpass.txt -taps 64 input.wav output.wav
//	fir-filter -coeffs lowpass.txt -strict -chunk 4096 input.txt output.txt
//
// A coefficient file shorter than -taps is padded with zeros and a warning
// is logged; -strict turns that into an error.
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

const toolName = "fir-filter"

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
	fs.StringVar(&opts.coeffPath, "coeffs", "", "FIR coefficient file, one tap per line (required)")
	fs.IntVar(&opts.numTaps, "taps", 0, "Number of taps to use (0 = every tap in the file)")
	fs.BoolVar(&opts.strict, "strict", false, "Fail when the coefficient file has fewer than -taps values")
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

	job := cliutil.Job{Input: paths[0], Output: paths[1], Common: common, Logger: log}

	var stats driver.Stats
	if common.Fast {
		stats, err = filterFile[float32](job, opts)
	} else {
		stats, err = filterFile[float64](job, opts)
	}
	if err != nil {
		return err
	}

	cliutil.Report(os.Stdout, stats, job.Output)
	return nil
}
