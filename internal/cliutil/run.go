package cliutil

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/tphakala/go-streamdsp/internal/driver"
	"github.com/tphakala/go-streamdsp/internal/simdops"
)

// Job is one input-to-output run of a streaming tool.
type Job struct {
	Input  string
	Output string
	Common *Common
	Logger *logrus.Entry

	// SampleRate is the -rate flag. Zero falls back to the WAV header rate.
	SampleRate int

	// Decimation divides the rate written to a WAV output. Zero means 1.
	Decimation int
}

// StageFactory builds a stage once the input sample rate is known. rate is
// zero for text input without -rate.
type StageFactory[F simdops.Float] func(rate int) (driver.Stage[F], error)

// RunFilter opens the job's files, builds the stage and streams the input
// through it.
func RunFilter[F simdops.Float](job Job, build StageFactory[F]) (stats driver.Stats, err error) {
	format, err := ParseFormat(job.Common.Format)
	if err != nil {
		return stats, err
	}

	in, err := OpenInput[F](job.Input, format)
	if err != nil {
		return stats, err
	}
	defer func() { _ = in.Close() }()

	rate := job.rate(in.SampleRate())
	stage, err := build(rate)
	if err != nil {
		return stats, err
	}

	out, err := CreateOutput[F](job.Output, job.outputOptions(format, rate))
	if err != nil {
		return stats, err
	}
	defer func() { err = errors.Join(err, out.Close()) }()

	job.Logger.WithFields(logrus.Fields{
		"input":         job.Input,
		"input_format":  in.Format(),
		"bit_depth":     in.BitDepth(),
		"output":        job.Output,
		"output_format": out.Format(),
		"sample_rate":   rate,
		"chunk":         job.Common.ChunkSize,
	}).Debug("starting stream")

	return driver.Run[F](job.driverConfig(), in, stage, out)
}

// IQStageFactory builds a complex-input stage; see StageFactory.
type IQStageFactory[F simdops.Float] func(rate int) (driver.IQStage[F], error)

// RunIQFilter is RunFilter for complex text input.
func RunIQFilter[F simdops.Float](job Job, build IQStageFactory[F]) (stats driver.Stats, err error) {
	format, err := ParseFormat(job.Common.Format)
	if err != nil {
		return stats, err
	}

	in, err := OpenIQInput[F](job.Input, format)
	if err != nil {
		return stats, err
	}
	defer func() { _ = in.Close() }()

	rate := job.rate(0)
	stage, err := build(rate)
	if err != nil {
		return stats, err
	}

	out, err := CreateOutput[F](job.Output, job.outputOptions(format, rate))
	if err != nil {
		return stats, err
	}
	defer func() { err = errors.Join(err, out.Close()) }()

	return driver.RunIQ[F](job.driverConfig(), in, stage, out)
}

func (j Job) rate(header int) int {
	if j.SampleRate > 0 {
		if header > 0 && header != j.SampleRate {
			j.Logger.WithFields(logrus.Fields{
				"flag":   j.SampleRate,
				"header": header,
			}).Warn("-rate overrides the WAV header sample rate")
		}
		return j.SampleRate
	}
	return header
}

func (j Job) outputOptions(format Format, rate int) OutputOptions {
	m := max(j.Decimation, 1)
	return OutputOptions{
		Format:     format,
		SampleRate: rate / m,
		BitDepth:   j.Common.BitDepth,
		Precision:  j.Common.Precision,
	}
}

func (j Job) driverConfig() driver.Config {
	return driver.Config{
		ChunkSize: j.Common.ChunkSize,
		Logger:    j.Logger,
		Output:    j.Output,
	}
}

// RequireRate returns an error when no sample rate is available.
func RequireRate(rate int) error {
	if rate <= 0 {
		return fmt.Errorf("%w: sample rate unknown, pass -rate", ErrUsage)
	}
	return nil
}
