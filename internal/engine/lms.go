package engine

import (
	"fmt"
	"math"

	"github.com/tphakala/go-streamdsp/internal/simdops"
)

// LMSCanceller removes a sinusoidal interferer of known frequency with an
// adaptive least-mean-squares filter.
//
// The reference input for tap k is sin(φ - k·Δφ), regenerated from the
// oscillator phase φ every sample, so no reference history is stored and the
// result does not depend on chunk boundaries. Weights start at zero and adapt
// on every sample; choosing a stable μ is the caller's responsibility.
type LMSCanceller[F simdops.Float] struct {
	weights []F
	refs    []F // per-sample reference vector, reused
	twoMu   F
	osc     Oscillator
	ops     *simdops.Ops[F]
}

// NewLMSCanceller creates a canceller with the given number of taps and
// adaptation rate mu for an interferer at interfererHz.
func NewLMSCanceller[F simdops.Float](taps int, mu F, interfererHz, sampleRate float64) (*LMSCanceller[F], error) {
	if taps < minTaps {
		return nil, fmt.Errorf("%w: LMS needs at least %d tap, got %d", ErrInvalidParameter, minTaps, taps)
	}
	if sampleRate <= 0 || math.IsInf(sampleRate, 0) || math.IsNaN(sampleRate) {
		return nil, fmt.Errorf("%w: sample rate must be positive, got %v", ErrInvalidParameter, sampleRate)
	}
	if !validFrequency(interfererHz) {
		return nil, fmt.Errorf("%w: interferer frequency must be finite and non-negative, got %v",
			ErrInvalidParameter, interfererHz)
	}
	if m := float64(mu); m < 0 || math.IsNaN(m) || math.IsInf(m, 0) {
		return nil, fmt.Errorf("%w: adaptation rate must be finite and non-negative, got %v",
			ErrInvalidParameter, mu)
	}

	return &LMSCanceller[F]{
		weights: make([]F, taps),
		refs:    make([]F, taps),
		twoMu:   lmsGradientFactor * mu,
		osc:     NewOscillator(interfererHz / sampleRate),
		ops:     simdops.For[F](),
	}, nil
}

// Process writes the error signal e[n] = x[n] - ŷ[n] for every input sample
// and returns len(src). dst must hold at least len(src) samples; dst and src
// may be the same slice.
func (l *LMSCanceller[F]) Process(dst, src []F) int {
	if len(src) == 0 {
		return 0
	}
	_ = dst[len(src)-1]

	step := l.osc.Increment()
	for i, x := range src {
		phase := l.osc.Phase()
		for k := range l.refs {
			l.refs[k] = F(math.Sin(phase - float64(k)*step))
		}

		estimate := l.ops.DotProductUnsafe(l.weights, l.refs)
		e := x - estimate
		dst[i] = e

		g := l.twoMu * e
		for k, r := range l.refs {
			l.weights[k] += g * r
		}

		l.osc.Advance()
	}
	return len(src)
}

// MaxOutputLen returns the output length for an n-sample chunk.
func (l *LMSCanceller[F]) MaxOutputLen(n int) int {
	return n
}

// NumTaps returns the number of adaptive weights.
func (l *LMSCanceller[F]) NumTaps() int {
	return len(l.weights)
}

// Coefficients returns a copy of the current adaptive weights.
func (l *LMSCanceller[F]) Coefficients() []F {
	w := make([]F, len(l.weights))
	copy(w, l.weights)
	return w
}

// Phase returns the reference oscillator phase in radians.
func (l *LMSCanceller[F]) Phase() float64 {
	return l.osc.Phase()
}

// Reset zeroes the weights and rewinds the reference oscillator.
func (l *LMSCanceller[F]) Reset() {
	clear(l.weights)
	l.osc.Reset()
}
