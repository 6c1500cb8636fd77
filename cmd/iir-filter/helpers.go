package main

import (
	"fmt"

	"github.com/tphakala/go-streamdsp"
	"github.com/tphakala/go-streamdsp/internal/cliutil"
	"github.com/tphakala/go-streamdsp/internal/driver"
)

type options struct {
	coeffPath   string
	numSections int
}

func (o options) validate() error {
	if o.coeffPath == "" {
		return fmt.Errorf("%w: -coeffs is required", cliutil.ErrUsage)
	}
	if o.numSections < 0 {
		return fmt.Errorf("%w: -sections must not be negative, got %d", cliutil.ErrUsage, o.numSections)
	}
	return nil
}

func newCascade[F streamdsp.Float](job cliutil.Job, opts options) (*streamdsp.BiquadCascade[F], error) {
	sections, err := cliutil.LoadSections(job.Logger, opts.coeffPath, opts.numSections)
	if err != nil {
		return nil, err
	}
	return streamdsp.NewBiquadCascade[F](streamdsp.BiquadConfig{Sections: sections})
}

func filterFile[F streamdsp.Float](job cliutil.Job, opts options) (driver.Stats, error) {
	cascade, err := newCascade[F](job, opts)
	if err != nil {
		return driver.Stats{}, err
	}
	return cliutil.RunFilter[F](job, func(int) (driver.Stage[F], error) {
		return cascade, nil
	})
}
