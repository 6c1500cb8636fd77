package engine

import "math"

// Oscillator is a phase accumulator kept in [0, 2π). It advances by a fixed
// increment once per processed sample and carries its phase across chunks.
type Oscillator struct {
	phase     float64
	increment float64
}

// NewOscillator creates an oscillator advancing by 2π·cyclesPerSample per
// sample. cyclesPerSample is the frequency normalized to the sample rate.
func NewOscillator(cyclesPerSample float64) Oscillator {
	return Oscillator{increment: twoPi * cyclesPerSample}
}

// Phase returns the current phase in radians.
func (o *Oscillator) Phase() float64 {
	return o.phase
}

// Increment returns the per-sample phase step in radians.
func (o *Oscillator) Increment() float64 {
	return o.increment
}

// Advance steps the phase by one sample and wraps it into [0, 2π).
func (o *Oscillator) Advance() {
	o.phase += o.increment
	if o.phase >= twoPi {
		o.phase = math.Mod(o.phase, twoPi)
	}
}

// Reset rewinds the phase to zero.
func (o *Oscillator) Reset() {
	o.phase = 0
}

func validFrequency(f float64) bool {
	return f >= 0 && !math.IsInf(f, 0) && !math.IsNaN(f)
}
