package filter

const (
	minTaps = 1
	maxTaps = 8191

	nyquistFraction     = 0.5
	minNormalizationSum = 1e-12

	maxButterworthOrder = 32
	minFFTSize          = 256

	// Magnitudes below this floor read as the floor in dB.
	minMagnitude = 1e-12
	dbMultiplier = 20.0

	cutoffLevelDB = -3.0
)
