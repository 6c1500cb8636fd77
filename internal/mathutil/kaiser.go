package mathutil

import "math"

// KaiserBeta computes the Kaiser window β parameter from the desired
// stopband attenuation in decibels.
//
// Formula from Kaiser & Schafer:
//   - att > 50 dB: β = 0.1102·(att - 8.7)
//   - 21 dB ≤ att ≤ 50 dB: β = 0.5842·(att - 21)^0.4 + 0.07886·(att - 21)
//   - att < 21 dB: β = 0
func KaiserBeta(attenuation float64) float64 {
	switch {
	case attenuation > kaiserAttHigh:
		return kaiserBetaHighCoeff1 * (attenuation - kaiserBetaHighOffset)
	case attenuation >= kaiserAttMedium:
		delta := attenuation - kaiserAttMedium
		return kaiserBetaMediumCoeff1*math.Pow(delta, kaiserBetaMediumPower) + kaiserBetaMediumCoeff2*delta
	default:
		return 0
	}
}

// KaiserLength estimates the odd tap count needed for the given stopband
// attenuation and transition width (as a fraction of the sample rate):
//
//	N ≈ (att - 8) / (2.285 · 2π · Δf) + 1
func KaiserLength(attenuation, transition float64) int {
	if transition <= 0 {
		transition = defaultTransition
	}
	n := (attenuation-kaiserLengthOffset)/(kaiserLengthMultiplier*2*math.Pi*transition) + 1

	taps := max(int(math.Ceil(n)), minFilterLength)
	if taps%2 == 0 {
		taps++
	}
	return min(taps, maxFilterLength)
}

// KaiserWindow returns the n-point Kaiser window with shape β.
func KaiserWindow(n int, beta float64) []float64 {
	w := make([]float64, n)
	if n == 1 {
		w[0] = 1
		return w
	}
	denom := BesselI0(beta)
	m := float64(n - 1)
	for i := range w {
		r := 2*float64(i)/m - 1
		w[i] = BesselI0(beta*math.Sqrt(1-r*r)) / denom
	}
	return w
}

// Sinc is the normalized sinc, sin(πx)/(πx), with Sinc(0) = 1.
func Sinc(x float64) float64 {
	if math.Abs(x) < sincZeroThreshold {
		return 1
	}
	px := math.Pi * x
	return math.Sin(px) / px
}
