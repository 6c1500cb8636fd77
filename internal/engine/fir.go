// Package engine implements the chunked streaming filter engines.
//
// Every engine keeps all of its running state (history, biquad registers,
// oscillator phase, adaptive weights, unwrap carry) inside the instance, so a
// signal fed through in chunks of any size produces exactly the same samples
// as the whole signal fed at once. Engines are not safe for concurrent use;
// chunks must be delivered in stream order.
package engine

import (
	"fmt"

	"github.com/tphakala/go-streamdsp/internal/history"
	"github.com/tphakala/go-streamdsp/internal/simdops"
)

// FIR applies a fixed coefficient vector to a circular input history.
//
//	y[n] = Σ_k taps[k] · x[n-k]
//
// taps[0] multiplies the most recently inserted sample.
type FIR[F simdops.Float] struct {
	taps     []F
	reversed []F // taps in oldest-first order, matching Ring.Window
	ring     *history.Ring[F]
	ops      *simdops.Ops[F]
}

// NewFIR creates a FIR convolver. capacity is the history ring size and must
// be at least len(taps); chunk size + len(taps) - 1 is the usual choice.
func NewFIR[F simdops.Float](taps []F, capacity int) (*FIR[F], error) {
	if len(taps) < minTaps {
		return nil, fmt.Errorf("%w: FIR needs at least %d tap", ErrInvalidParameter, minTaps)
	}
	if capacity < len(taps) {
		return nil, fmt.Errorf("%w: history capacity %d is smaller than %d taps",
			ErrInvalidParameter, capacity, len(taps))
	}

	n := len(taps)
	t := make([]F, n)
	copy(t, taps)
	reversed := make([]F, n)
	for k := range n {
		reversed[n-1-k] = t[k]
	}

	return &FIR[F]{
		taps:     t,
		reversed: reversed,
		ring:     history.NewRing[F](capacity),
		ops:      simdops.For[F](),
	}, nil
}

// Push inserts x into the history without computing an output.
func (f *FIR[F]) Push(x F) {
	f.ring.Insert(x)
}

// Convolve returns the filter output for the current history.
func (f *FIR[F]) Convolve() F {
	return f.ops.DotProductUnsafe(f.ring.Window(len(f.reversed)), f.reversed)
}

// ProcessSample inserts x and returns the filtered sample.
func (f *FIR[F]) ProcessSample(x F) F {
	f.ring.Insert(x)
	return f.Convolve()
}

// Process filters src into dst and returns len(src).
// dst must hold at least len(src) samples; dst and src may be the same slice.
func (f *FIR[F]) Process(dst, src []F) int {
	if len(src) == 0 {
		return 0
	}
	_ = dst[len(src)-1] // bounds check hint

	for i, x := range src {
		dst[i] = f.ProcessSample(x)
	}
	return len(src)
}

// MaxOutputLen returns the output length for an n-sample chunk.
func (f *FIR[F]) MaxOutputLen(n int) int {
	return n
}

// Reset clears the history.
func (f *FIR[F]) Reset() {
	f.ring.Reset()
}

// Taps returns a copy of the coefficients.
func (f *FIR[F]) Taps() []F {
	c := make([]F, len(f.taps))
	copy(c, f.taps)
	return c
}

// DCGain returns the sum of the taps, the filter's response at 0 Hz.
func (f *FIR[F]) DCGain() F {
	return f.ops.Sum(f.taps)
}

// NumTaps returns the number of coefficients.
func (f *FIR[F]) NumTaps() int {
	return len(f.taps)
}

// Capacity returns the history ring capacity.
func (f *FIR[F]) Capacity() int {
	return f.ring.Capacity()
}
