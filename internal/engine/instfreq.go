package engine

import (
	"fmt"
	"math"

	"github.com/tphakala/go-streamdsp/internal/simdops"
)

// UnwrapCarry is the state that lets phase unwrapping and frequency
// differencing continue across a chunk boundary.
//
// The zero value means no sample has been seen yet: the first sample of the
// stream is neither compared against a previous wrapped phase nor used as the
// right-hand side of a difference.
type UnwrapCarry struct {
	// LastWrapped is the wrapped phase of the previous chunk's final sample.
	LastWrapped float64
	// Correction is the accumulated multiple of 2π added to wrapped phases.
	Correction float64
	// LastUnwrapped is the unwrapped phase of the previous chunk's final sample.
	LastUnwrapped float64
	// Primed reports whether at least one sample has been consumed.
	Primed bool
}

// WrapPhases writes atan2(im[i], re[i]) into dst. It is stateless.
func WrapPhases[F simdops.Float](dst []float64, re, im []F) {
	for i := range re {
		dst[i] = math.Atan2(float64(im[i]), float64(re[i]))
	}
}

// UnwrapPhases removes ±π jumps from wrapped, writing the continuous phase to
// dst. A step above +π subtracts 2π from the running correction and a step
// below -π adds 2π. The first sample is compared against carry.LastWrapped
// once the carry is primed.
//
// UnwrapPhases updates LastWrapped and Correction; call EstimateFrequency on
// the same chunk afterwards to advance LastUnwrapped and Primed.
func UnwrapPhases(carry *UnwrapCarry, dst, wrapped []float64) {
	if len(wrapped) == 0 {
		return
	}

	k := carry.Correction
	prev := carry.LastWrapped
	for i, w := range wrapped {
		if i > 0 || carry.Primed {
			switch d := w - prev; {
			case d > math.Pi:
				k -= twoPi
			case d < -math.Pi:
				k += twoPi
			}
		}
		dst[i] = w + k
		prev = w
	}

	carry.Correction = k
	carry.LastWrapped = prev
}

// EstimateFrequency writes (u[i] - u[i-1])·sampleRate/2π into dst and returns
// the number of samples written. On an unprimed carry the first sample has no
// predecessor and is dropped, so the very first chunk yields len(unwrapped)-1
// samples; every later chunk differences its first sample against
// carry.LastUnwrapped and yields len(unwrapped).
func EstimateFrequency[F simdops.Float](carry *UnwrapCarry, dst []F, unwrapped []float64, sampleRate float64) int {
	if len(unwrapped) == 0 {
		return 0
	}

	scale := sampleRate / twoPi
	start := 0
	prev := carry.LastUnwrapped
	if !carry.Primed {
		prev = unwrapped[0]
		start = 1
	}

	out := 0
	for _, u := range unwrapped[start:] {
		dst[out] = F((u - prev) * scale)
		prev = u
		out++
	}

	carry.LastUnwrapped = prev
	carry.Primed = true
	return out
}

// InstFreq chains phase extraction, unwrapping and frequency differencing
// over complex chunks, owning the scratch buffers and the carry.
type InstFreq[F simdops.Float] struct {
	sampleRate float64
	carry      UnwrapCarry
	wrapped    []float64
	unwrapped  []float64
}

// NewInstFreq creates an estimator. chunkSize sizes the scratch buffers; larger
// chunks are accepted and grow them.
func NewInstFreq[F simdops.Float](chunkSize int, sampleRate float64) (*InstFreq[F], error) {
	if sampleRate <= 0 || math.IsInf(sampleRate, 0) || math.IsNaN(sampleRate) {
		return nil, fmt.Errorf("%w: sample rate must be positive, got %v", ErrInvalidParameter, sampleRate)
	}
	if chunkSize < 1 {
		chunkSize = defaultIQCapacity
	}

	return &InstFreq[F]{
		sampleRate: sampleRate,
		wrapped:    make([]float64, chunkSize),
		unwrapped:  make([]float64, chunkSize),
	}, nil
}

// Process estimates the instantaneous frequency of the complex chunk
// (re[i] + j·im[i]) into dst using the estimator's own carry. It returns the
// number of samples written (len(re)-1 for the first non-empty chunk,
// len(re) afterwards).
func (e *InstFreq[F]) Process(dst, re, im []F) int {
	return e.ProcessWithCarry(&e.carry, dst, re, im)
}

// ProcessWithCarry is Process with caller-owned carry state.
func (e *InstFreq[F]) ProcessWithCarry(carry *UnwrapCarry, dst, re, im []F) int {
	n := min(len(re), len(im))
	if n == 0 {
		return 0
	}
	if n > len(e.wrapped) {
		e.wrapped = make([]float64, n)
		e.unwrapped = make([]float64, n)
	}

	wrapped := e.wrapped[:n]
	unwrapped := e.unwrapped[:n]

	WrapPhases(wrapped, re[:n], im[:n])
	UnwrapPhases(carry, unwrapped, wrapped)
	return EstimateFrequency(carry, dst, unwrapped, e.sampleRate)
}

// MaxOutputLen returns the largest output for an n-sample chunk.
func (e *InstFreq[F]) MaxOutputLen(n int) int {
	return n
}

// Carry returns a copy of the estimator's carry.
func (e *InstFreq[F]) Carry() UnwrapCarry {
	return e.carry
}

// SetCarry replaces the estimator's carry.
func (e *InstFreq[F]) SetCarry(c UnwrapCarry) {
	e.carry = c
}

// SampleRate returns the sample rate used to scale the estimate.
func (e *InstFreq[F]) SampleRate() float64 {
	return e.sampleRate
}

// Reset returns the estimator to the unprimed state.
func (e *InstFreq[F]) Reset() {
	e.carry = UnwrapCarry{}
}
