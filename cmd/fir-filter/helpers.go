package main

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/tphakala/go-streamdsp"
	"github.com/tphakala/go-streamdsp/internal/cliutil"
	"github.com/tphakala/go-streamdsp/internal/driver"
)

type options struct {
	coeffPath string
	numTaps   int
	strict    bool
}

func (o options) validate() error {
	if o.coeffPath == "" {
		return fmt.Errorf("%w: -coeffs is required", cliutil.ErrUsage)
	}
	if o.numTaps < 0 {
		return fmt.Errorf("%w: -taps must not be negative, got %d", cliutil.ErrUsage, o.numTaps)
	}
	return nil
}

// newFilter loads the taps and builds a FIR sized for the job's chunk size.
func newFilter[F streamdsp.Float](job cliutil.Job, opts options) (*streamdsp.FIR[F], error) {
	taps, err := cliutil.LoadTaps[float64](job.Logger, opts.coeffPath, opts.numTaps, opts.strict)
	if err != nil {
		return nil, err
	}
	return streamdsp.NewFIR[F](streamdsp.FIRConfig{Taps: taps, ChunkSize: job.Common.ChunkSize})
}

func filterFile[F streamdsp.Float](job cliutil.Job, opts options) (driver.Stats, error) {
	fir, err := newFilter[F](job, opts)
	if err != nil {
		return driver.Stats{}, err
	}
	job.Logger.WithFields(logrus.Fields{
		"taps":    fir.NumTaps(),
		"dc_gain": fir.DCGain(),
	}).Debug("filter ready")
	return cliutil.RunFilter[F](job, func(int) (driver.Stage[F], error) {
		return fir, nil
	})
}
