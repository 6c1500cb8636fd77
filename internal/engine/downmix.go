package engine

import (
	"fmt"
	"math"

	"github.com/tphakala/go-streamdsp/internal/simdops"
)

// Downmixer multiplies the input by a local oscillator, low-pass filters the
// product and keeps every factor-th filtered sample.
//
// The decimation grid is anchored to the running sample index of the whole
// stream, so chunk sizes that are not multiples of the factor still select
// exactly the samples a single-shot run would.
type Downmixer[F simdops.Float] struct {
	fir    *FIR[F]
	osc    Oscillator
	factor int
	gain   F   // factor, compensating the energy dropped by decimation
	index  int // running sample index modulo factor
}

// NewDownmixer creates a downmixer. mixFreq is the oscillator frequency
// normalized to the input sample rate; factor is the decimation factor M.
func NewDownmixer[F simdops.Float](taps []F, capacity, factor int, mixFreq float64) (*Downmixer[F], error) {
	if factor < minDecimation {
		return nil, fmt.Errorf("%w: decimation factor must be at least %d, got %d",
			ErrInvalidParameter, minDecimation, factor)
	}
	if !validFrequency(mixFreq) {
		return nil, fmt.Errorf("%w: mixing frequency must be finite and non-negative, got %v",
			ErrInvalidParameter, mixFreq)
	}

	fir, err := NewFIR(taps, capacity)
	if err != nil {
		return nil, fmt.Errorf("downmix filter: %w", err)
	}

	return &Downmixer[F]{
		fir:    fir,
		osc:    NewOscillator(mixFreq),
		factor: factor,
		gain:   F(factor),
	}, nil
}

// Process down-mixes and decimates src into dst and returns the number of
// samples written, which is at most MaxOutputLen(len(src)).
func (d *Downmixer[F]) Process(dst, src []F) int {
	out := 0
	for _, x := range src {
		lo := F(downmixOscillatorAmplitude * math.Cos(d.osc.Phase()))
		d.fir.Push(x * lo)
		d.osc.Advance()

		if d.index == 0 {
			dst[out] = d.fir.Convolve() * d.gain
			out++
		}

		d.index++
		if d.index == d.factor {
			d.index = 0
		}
	}
	return out
}

// MaxOutputLen returns the largest number of samples an n-sample chunk can
// produce: ⌈n / factor⌉.
func (d *Downmixer[F]) MaxOutputLen(n int) int {
	return (n + d.factor - 1) / d.factor
}

// Factor returns the decimation factor.
func (d *Downmixer[F]) Factor() int {
	return d.factor
}

// NumTaps returns the low-pass filter length.
func (d *Downmixer[F]) NumTaps() int {
	return d.fir.NumTaps()
}

// Phase returns the local oscillator phase in radians.
func (d *Downmixer[F]) Phase() float64 {
	return d.osc.Phase()
}

// Reset clears the filter history, the oscillator phase and the decimation
// index.
func (d *Downmixer[F]) Reset() {
	d.fir.Reset()
	d.osc.Reset()
	d.index = 0
}
