// Command inst-freq estimates the instantaneous frequency of a complex
// baseband stream.
//
// Usage:
//
//	inst-freq -rate 48000 iq.txt freq.txt
//
// The input holds one "real,imaginary" pair per line. The output holds one
// frequency in Hz per input sample, except the first, which has no
// predecessor to difference against.
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

const toolName = "inst-freq"

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
	rate := fs.Int("rate", 0, "Input sample rate in Hz (required)")
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

	job := cliutil.Job{
		Input:      paths[0],
		Output:     paths[1],
		Common:     common,
		Logger:     log,
		SampleRate: *rate,
	}

	var stats driver.Stats
	if common.Fast {
		stats, err = estimateFile[float32](job)
	} else {
		stats, err = estimateFile[float64](job)
	}
	if err != nil {
		return err
	}

	cliutil.Report(os.Stdout, stats, job.Output)
	return nil
}
