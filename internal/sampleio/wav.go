package sampleio

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/tphakala/go-streamdsp/internal/simdops"
)

// WAVReader reads normalized samples from a mono integer PCM WAV stream.
type WAVReader[F Float] struct {
	dec      *wav.Decoder
	buf      *audio.IntBuffer
	rate     int
	bitDepth int
	invMax   F
	ops      *simdops.Ops[F]
}

// NewWAVReader validates the stream header. Only mono 16, 24 and 32-bit PCM
// is accepted.
func NewWAVReader[F Float](rs io.ReadSeeker) (*WAVReader[F], error) {
	dec := wav.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("%w: not a valid WAV stream", ErrUnsupportedFormat)
	}

	format := dec.Format()
	if format.NumChannels != monoChannels {
		return nil, fmt.Errorf("%w: %d channels (only mono is supported)", ErrUnsupportedFormat, format.NumChannels)
	}
	if dec.WavAudioFormat != pcmFormat {
		return nil, fmt.Errorf("%w: WAV audio format %d (only integer PCM is supported)", ErrUnsupportedFormat, dec.WavAudioFormat)
	}
	bitDepth := int(dec.BitDepth)
	maxVal, err := fullScale(bitDepth)
	if err != nil {
		return nil, err
	}

	return &WAVReader[F]{
		dec:      dec,
		buf:      &audio.IntBuffer{Format: format, SourceBitDepth: bitDepth},
		rate:     format.SampleRate,
		bitDepth: bitDepth,
		invMax:   F(1 / maxVal),
		ops:      simdops.For[F](),
	}, nil
}

// SampleRate returns the stream's sample rate in Hz.
func (r *WAVReader[F]) SampleRate() int {
	return r.rate
}

// BitDepth returns the PCM sample width.
func (r *WAVReader[F]) BitDepth() int {
	return r.bitDepth
}

// ReadChunk fills dst with samples scaled to [-1, 1).
func (r *WAVReader[F]) ReadChunk(dst []F) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	if cap(r.buf.Data) < len(dst) {
		r.buf.Data = make([]int, len(dst))
	}
	r.buf.Data = r.buf.Data[:len(dst)]

	n, err := r.dec.PCMBuffer(r.buf)
	if err != nil && !errors.Is(err, io.EOF) {
		return 0, fmt.Errorf("failed to read audio data: %w", err)
	}
	if n == 0 {
		return 0, io.EOF
	}

	for i, v := range r.buf.Data[:n] {
		dst[i] = F(v)
	}
	r.ops.Scale(dst[:n], dst[:n], r.invMax)
	return n, nil
}

// WAVWriter writes mono integer PCM, clipping samples to full scale.
type WAVWriter[F Float] struct {
	enc    *wav.Encoder
	buf    *audio.IntBuffer
	maxVal float64
}

// NewWAVWriter starts a WAV stream. The header is finalized by Close.
func NewWAVWriter[F Float](ws io.WriteSeeker, sampleRate, bitDepth int) (*WAVWriter[F], error) {
	maxVal, err := fullScale(bitDepth)
	if err != nil {
		return nil, err
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: sample rate %d", ErrUnsupportedFormat, sampleRate)
	}

	return &WAVWriter[F]{
		enc: wav.NewEncoder(ws, sampleRate, bitDepth, monoChannels, pcmFormat),
		buf: &audio.IntBuffer{
			Format:         &audio.Format{NumChannels: monoChannels, SampleRate: sampleRate},
			SourceBitDepth: bitDepth,
		},
		maxVal: maxVal,
	}, nil
}

// WriteChunk encodes src.
func (w *WAVWriter[F]) WriteChunk(src []F) error {
	if len(src) == 0 {
		return nil
	}
	if cap(w.buf.Data) < len(src) {
		w.buf.Data = make([]int, len(src))
	}
	w.buf.Data = w.buf.Data[:len(src)]

	for i, v := range src {
		s := float64(v) * w.maxVal
		s = min(max(s, -w.maxVal-1), w.maxVal)
		w.buf.Data[i] = int(math.Round(s))
	}
	if err := w.enc.Write(w.buf); err != nil {
		return fmt.Errorf("failed to write audio data: %w", err)
	}
	return nil
}

// Close writes the final header. The underlying writer stays open.
func (w *WAVWriter[F]) Close() error {
	return w.enc.Close()
}

func fullScale(bitDepth int) (float64, error) {
	switch bitDepth {
	case bitsPerSample16:
		return maxInt16, nil
	case bitsPerSample24:
		return maxInt24, nil
	case bitsPerSample32:
		return maxInt32, nil
	default:
		return 0, fmt.Errorf("%w: %d-bit samples (want 16, 24 or 32)", ErrUnsupportedFormat, bitDepth)
	}
}
