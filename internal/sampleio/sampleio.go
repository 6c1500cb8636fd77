// Package sampleio provides the chunk sources and sinks the filter tools
// stream through: delimited text holding real samples or real/imaginary
// pairs, and mono PCM WAV.
//
// Sources fill a caller-owned chunk and return how many samples they wrote,
// with (0, io.EOF) once the stream is exhausted. A malformed text token also
// ends the stream; the parse error is kept and returned by Err.
package sampleio

import (
	"errors"

	"github.com/tphakala/go-streamdsp/internal/simdops"
)

var (
	// ErrUnsupportedFormat is returned for inputs the sources cannot decode.
	ErrUnsupportedFormat = errors.New("unsupported sample format")

	// ErrMalformedSample reports a text token that is not a number.
	ErrMalformedSample = errors.New("malformed sample")
)

// Float is the sample type of every source and sink.
type Float = simdops.Float

func bitSize[F Float]() int {
	var zero F
	if _, ok := any(zero).(float32); ok {
		return float32Bits
	}
	return float64Bits
}
