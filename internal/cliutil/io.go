package cliutil

import (
	"errors"
	"fmt"
	"os"

	"github.com/tphakala/go-streamdsp/internal/driver"
	"github.com/tphakala/go-streamdsp/internal/sampleio"
	"github.com/tphakala/go-streamdsp/internal/simdops"
)

// Input is an opened real-sample source.
type Input[F simdops.Float] struct {
	src    driver.Source[F]
	file   *os.File
	format Format
	rate   int
	depth  int
}

// OpenInput opens path as text or WAV.
func OpenInput[F simdops.Float](path string, format Format) (*Input[F], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}

	in := &Input[F]{file: f, format: format.Resolve(path)}
	switch in.format {
	case FormatWAV:
		r, err := sampleio.NewWAVReader[F](f)
		if err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		in.src = r
		in.rate = r.SampleRate()
		in.depth = r.BitDepth()
	default:
		in.src = sampleio.NewTextReader[F](f)
	}
	return in, nil
}

// ReadChunk implements driver.Source.
func (in *Input[F]) ReadChunk(dst []F) (int, error) {
	return in.src.ReadChunk(dst)
}

// Err reports why a text input ended early.
func (in *Input[F]) Err() error {
	if e, ok := in.src.(interface{ Err() error }); ok {
		return e.Err()
	}
	return nil
}

// SampleRate is the WAV header rate, or 0 for text.
func (in *Input[F]) SampleRate() int {
	return in.rate
}

// BitDepth is the WAV header bit depth, or 0 for text.
func (in *Input[F]) BitDepth() int {
	return in.depth
}

// Format is the resolved input format.
func (in *Input[F]) Format() Format {
	return in.format
}

// Close closes the underlying file.
func (in *Input[F]) Close() error {
	return in.file.Close()
}

// IQInput is an opened complex-sample text source.
type IQInput[F simdops.Float] struct {
	*sampleio.TextReader[F]
	file *os.File
}

// OpenIQInput opens path as real,imaginary text pairs. WAV is rejected since
// the sources only decode mono.
func OpenIQInput[F simdops.Float](path string, format Format) (*IQInput[F], error) {
	if format.Resolve(path) == FormatWAV {
		return nil, fmt.Errorf("%s: %w: complex input must be text", path, sampleio.ErrUnsupportedFormat)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	return &IQInput[F]{TextReader: sampleio.NewTextReader[F](f), file: f}, nil
}

// Close closes the underlying file.
func (in *IQInput[F]) Close() error {
	return in.file.Close()
}

type chunkWriter[F simdops.Float] interface {
	WriteChunk(src []F) error
	Close() error
}

// Output is an opened sink.
type Output[F simdops.Float] struct {
	sink   chunkWriter[F]
	file   *os.File
	format Format
}

// OutputOptions configure CreateOutput.
type OutputOptions struct {
	Format Format
	// SampleRate and BitDepth apply to WAV output.
	SampleRate int
	BitDepth   int
	// Precision applies to text output.
	Precision int
}

// CreateOutput creates path and a sink of the requested format.
func CreateOutput[F simdops.Float](path string, opts OutputOptions) (*Output[F], error) {
	format := opts.Format.Resolve(path)
	if format == FormatWAV && opts.SampleRate <= 0 {
		return nil, fmt.Errorf("%w: WAV output needs a sample rate (use -rate)", ErrUsage)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}

	out := &Output[F]{file: f, format: format}
	switch format {
	case FormatWAV:
		w, err := sampleio.NewWAVWriter[F](f, opts.SampleRate, opts.BitDepth)
		if err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		out.sink = w
	default:
		out.sink = sampleio.NewTextWriter[F](f, opts.Precision)
	}
	return out, nil
}

// WriteChunk implements driver.Sink.
func (o *Output[F]) WriteChunk(src []F) error {
	return o.sink.WriteChunk(src)
}

// Format is the resolved output format.
func (o *Output[F]) Format() Format {
	return o.format
}

// Close finalizes the sink and closes the file.
func (o *Output[F]) Close() error {
	return errors.Join(o.sink.Close(), o.file.Close())
}
