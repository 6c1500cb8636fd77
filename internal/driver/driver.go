// Package driver runs the chunk loop shared by every filter tool: read a
// fixed-size chunk, hand it to a stage, write whatever the stage emits,
// repeat until the source is exhausted.
//
// All buffers are allocated once before the first read. Chunks are processed
// strictly in stream order; stages carry their state from one call to the
// next and must see every chunk exactly once.
package driver

import (
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/tphakala/go-streamdsp/internal/simdops"
)

// DefaultChunkSize is used when Config.ChunkSize is zero.
const DefaultChunkSize = 1024

// ErrInvalidChunkSize is returned for a negative chunk size.
var ErrInvalidChunkSize = errors.New("invalid chunk size")

// Source yields real chunks. ReadChunk returns (0, io.EOF) once exhausted.
type Source[F simdops.Float] interface {
	ReadChunk(dst []F) (int, error)
}

// IQSource yields complex chunks as parallel real and imaginary slices.
type IQSource[F simdops.Float] interface {
	ReadIQ(re, im []F) (int, error)
}

// Sink consumes output chunks.
type Sink[F simdops.Float] interface {
	WriteChunk(src []F) error
}

// Stage transforms a real chunk.
type Stage[F simdops.Float] interface {
	Process(dst, src []F) int
	MaxOutputLen(n int) int
}

// IQStage transforms a complex chunk into a real one.
type IQStage[F simdops.Float] interface {
	Process(dst, re, im []F) int
	MaxOutputLen(n int) int
}

// Config controls a run.
type Config struct {
	// ChunkSize is the number of samples read per iteration.
	ChunkSize int

	// Logger receives a debug line per chunk and an info summary. Nil
	// disables logging.
	Logger *logrus.Entry

	// Output names the sink in the summary line.
	Output string
}

// Stats summarizes a completed run.
type Stats struct {
	Chunks     int
	SamplesIn  int64
	SamplesOut int64
}

func (c Config) chunkSize() (int, error) {
	switch {
	case c.ChunkSize < 0:
		return 0, fmt.Errorf("%w: %d", ErrInvalidChunkSize, c.ChunkSize)
	case c.ChunkSize == 0:
		return DefaultChunkSize, nil
	default:
		return c.ChunkSize, nil
	}
}

// Run streams src through stage into sink.
func Run[F simdops.Float](cfg Config, src Source[F], stage Stage[F], sink Sink[F]) (Stats, error) {
	size, err := cfg.chunkSize()
	if err != nil {
		return Stats{}, err
	}

	in := make([]F, size)
	out := make([]F, stage.MaxOutputLen(size))

	return loop(cfg, src, sink, func() (int, int, error) {
		n, err := src.ReadChunk(in)
		if n == 0 {
			return 0, 0, err
		}
		return n, stage.Process(out, in[:n]), err
	}, out)
}

// RunIQ streams complex samples from src through stage into sink.
func RunIQ[F simdops.Float](cfg Config, src IQSource[F], stage IQStage[F], sink Sink[F]) (Stats, error) {
	size, err := cfg.chunkSize()
	if err != nil {
		return Stats{}, err
	}

	re := make([]F, size)
	im := make([]F, size)
	out := make([]F, stage.MaxOutputLen(size))

	return loop(cfg, src, sink, func() (int, int, error) {
		n, err := src.ReadIQ(re, im)
		if n == 0 {
			return 0, 0, err
		}
		return n, stage.Process(out, re[:n], im[:n]), err
	}, out)
}

// step reads and processes one chunk, returning the input and output counts.
// A source may report io.EOF together with its final samples.
type step func() (read, emitted int, err error)

// loop drives next until the source is exhausted. src is only inspected for
// an Err method reporting why the input ended.
func loop[F simdops.Float](cfg Config, src any, sink Sink[F], next step, out []F) (Stats, error) {
	var stats Stats
	for {
		n, m, err := next()
		if err != nil && !errors.Is(err, io.EOF) {
			return stats, fmt.Errorf("chunk %d: %w", stats.Chunks+1, err)
		}
		if n == 0 {
			break
		}

		if m > 0 {
			if werr := sink.WriteChunk(out[:m]); werr != nil {
				return stats, fmt.Errorf("chunk %d: %w", stats.Chunks+1, werr)
			}
		}

		stats.Chunks++
		stats.SamplesIn += int64(n)
		stats.SamplesOut += int64(m)

		if cfg.Logger != nil {
			cfg.Logger.WithFields(logrus.Fields{
				"chunk": stats.Chunks,
				"in":    n,
				"out":   m,
			}).Debug("processed chunk")
		}

		if err != nil {
			break
		}
	}

	if cfg.Logger != nil {
		if e, ok := src.(interface{ Err() error }); ok && e.Err() != nil {
			cfg.Logger.WithError(e.Err()).Warn("input ended early")
		}
		cfg.Logger.WithFields(logrus.Fields{
			"chunks":      stats.Chunks,
			"samples_in":  stats.SamplesIn,
			"samples_out": stats.SamplesOut,
			"output":      cfg.Output,
		}).Info("stream complete")
	}
	return stats, nil
}
