package mathutil

// Bessel series limits.
const (
	besselMaxTerms     = 500
	besselRelTolerance = 1e-17
)

// Kaiser & Schafer empirical constants.
const (
	kaiserAttHigh   = 50.0 // dB
	kaiserAttMedium = 21.0 // dB

	kaiserBetaHighCoeff1 = 0.1102
	kaiserBetaHighOffset = 8.7

	kaiserBetaMediumCoeff1 = 0.5842
	kaiserBetaMediumPower  = 0.4
	kaiserBetaMediumCoeff2 = 0.07886

	kaiserLengthOffset     = 8.0
	kaiserLengthMultiplier = 2.285
)

// Filter length bounds.
const (
	minFilterLength   = 3
	maxFilterLength   = 8191
	defaultTransition = 0.01
)

const (
	halfDivisor       = 2.0
	sincZeroThreshold = 1e-12
)
