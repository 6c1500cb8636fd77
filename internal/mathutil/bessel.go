// Package mathutil holds the special functions and window shapes used by
// coefficient design.
package mathutil

// BesselI0 computes the modified Bessel function of the first kind, order
// zero, by summing its power series
//
//	I₀(x) = Σ ((x/2)^k / k!)²
//
// until a term no longer changes the sum. The series converges for every x
// and reaches full float64 precision well inside besselMaxTerms for the β
// range a Kaiser window uses.
func BesselI0(x float64) float64 {
	half := x / halfDivisor
	sum := 1.0
	term := 1.0
	for k := 1; k <= besselMaxTerms; k++ {
		f := half / float64(k)
		term *= f * f
		sum += term
		if term < sum*besselRelTolerance {
			break
		}
	}
	return sum
}
