package main

import (
	"github.com/tphakala/go-streamdsp"
	"github.com/tphakala/go-streamdsp/internal/cliutil"
	"github.com/tphakala/go-streamdsp/internal/driver"
)

func estimateFile[F streamdsp.Float](job cliutil.Job) (driver.Stats, error) {
	return cliutil.RunIQFilter[F](job, func(rate int) (driver.IQStage[F], error) {
		if err := cliutil.RequireRate(rate); err != nil {
			return nil, err
		}
		e, err := streamdsp.NewInstFreqEstimator[F](streamdsp.InstFreqConfig{
			SampleRate: float64(rate),
			ChunkSize:  job.Common.ChunkSize,
		})
		if err != nil {
			return nil, err
		}
		return e, nil
	})
}
