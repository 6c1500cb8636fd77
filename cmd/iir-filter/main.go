// Command iir-filter runs a sample stream through a cascade of biquad
// sections read from a coefficient file.
//
// Usage:
//
//	iir-filter -coeffs butter4.csv input.txt output.txt
//	iir-filter -coeffs butter4.csv -sections 2 input.wav output.wav
//
// Each line of the coefficient file holds seven comma-separated values:
// inverse stage gain, b0, b1, b2, a0, a1, a2. A file with fewer than
// -sections lines is rejected.
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

const toolName = "iir-filter"

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
	fs.StringVar(&opts.coeffPath, "coeffs", "", "Biquad coefficient file, seven values per line (required)")
	fs.IntVar(&opts.numSections, "sections", 0, "Number of sections to use (0 = every line in the file)")
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
