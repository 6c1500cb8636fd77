package main

import (
	"fmt"

	"github.com/tphakala/go-streamdsp"
	"github.com/tphakala/go-streamdsp/internal/cliutil"
	"github.com/tphakala/go-streamdsp/internal/driver"
)

const defaultFactor = 1

type options struct {
	coeffPath string
	numTaps   int
	strict    bool
	factor    int
	mixHz     float64
}

func (o options) validate() error {
	if o.coeffPath == "" {
		return fmt.Errorf("%w: -coeffs is required", cliutil.ErrUsage)
	}
	if o.numTaps < 0 {
		return fmt.Errorf("%w: -taps must not be negative, got %d", cliutil.ErrUsage, o.numTaps)
	}
	if o.factor < 1 {
		return fmt.Errorf("%w: -factor must be at least 1, got %d", cliutil.ErrUsage, o.factor)
	}
	return nil
}

func downmixFile[F streamdsp.Float](job cliutil.Job, opts options) (driver.Stats, error) {
	taps, err := cliutil.LoadTaps[float64](job.Logger, opts.coeffPath, opts.numTaps, opts.strict)
	if err != nil {
		return driver.Stats{}, err
	}

	return cliutil.RunFilter[F](job, func(rate int) (driver.Stage[F], error) {
		if err := cliutil.RequireRate(rate); err != nil {
			return nil, err
		}
		d, err := streamdsp.NewDownmixer[F](streamdsp.DownmixConfig{
			Taps:         taps,
			Factor:       opts.factor,
			MixFrequency: opts.mixHz,
			SampleRate:   float64(rate),
			ChunkSize:    job.Common.ChunkSize,
		})
		if err != nil {
			return nil, err
		}
		return d, nil
	})
}
