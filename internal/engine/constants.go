package engine

import "math"

// Oscillator constants
const (
	twoPi = 2 * math.Pi

	// downmixOscillatorAmplitude is the local oscillator amplitude used by the
	// downmixer. A factor of two restores the amplitude lost to the image
	// component that the low-pass FIR removes.
	downmixOscillatorAmplitude = 2.0
)

// LMS constants
const (
	// lmsGradientFactor is the 2 in the stochastic gradient update w += 2·μ·e·x.
	lmsGradientFactor = 2
)

// Minimums for engine construction
const (
	minTaps           = 1
	minSections       = 1
	minDecimation     = 1
	defaultIQCapacity = 1024
)
