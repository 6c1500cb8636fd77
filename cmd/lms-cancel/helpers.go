package main

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/tphakala/go-streamdsp"
	"github.com/tphakala/go-streamdsp/internal/cliutil"
	"github.com/tphakala/go-streamdsp/internal/driver"
)

const (
	defaultTaps     = 2
	defaultStepSize = 0.01
)

type options struct {
	taps   int
	mu     float64
	freqHz float64
}

func (o options) validate() error {
	if o.taps < 1 {
		return fmt.Errorf("%w: -taps must be at least 1, got %d", cliutil.ErrUsage, o.taps)
	}
	if o.mu < 0 {
		return fmt.Errorf("%w: -mu must not be negative, got %g", cliutil.ErrUsage, o.mu)
	}
	if o.freqHz <= 0 {
		return fmt.Errorf("%w: -freq is required", cliutil.ErrUsage)
	}
	return nil
}

func cancelFile[F streamdsp.Float](job cliutil.Job, opts options) (driver.Stats, error) {
	var lms *streamdsp.LMSCanceller[F]
	stats, err := cliutil.RunFilter[F](job, func(rate int) (driver.Stage[F], error) {
		if err := cliutil.RequireRate(rate); err != nil {
			return nil, err
		}
		var err error
		lms, err = streamdsp.NewLMSCanceller[F](streamdsp.LMSConfig{
			Taps:                opts.taps,
			StepSize:            opts.mu,
			InterfererFrequency: opts.freqHz,
			SampleRate:          float64(rate),
		})
		if err != nil {
			return nil, err
		}
		return lms, nil
	})
	if err != nil {
		return stats, err
	}

	job.Logger.WithFields(logrus.Fields{"weights": lms.Coefficients()}).Debug("final LMS weights")
	return stats, nil
}
