// Package testutil provides reusable test helpers for the streaming filter
// engines: testify assertions, signal generators and chunked drivers.
package testutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/floats"
)

// Default tolerances for various test scenarios.
const (
	DefaultTolerance = 1e-10
	Float32Tolerance = 1e-4
	DBTolerance      = 0.01
)

// Float mirrors simdops.Float for test helpers.
type Float interface {
	float32 | float64
}

// AssertNoNaNOrInf verifies that no elements in the slice are NaN or Inf.
func AssertNoNaNOrInf[F Float](t *testing.T, s []F, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		f := float64(v)
		if math.IsNaN(f) {
			return assert.Fail(t, "found NaN", "s[%d] is NaN", i)
		}
		if math.IsInf(f, 0) {
			return assert.Fail(t, "found Inf", "s[%d] is Inf", i)
		}
	}
	return true
}

// AssertSlicesInDelta verifies element-wise closeness of two equal-length slices.
func AssertSlicesInDelta[F Float](t *testing.T, expected, actual []F, tolerance float64, msgAndArgs ...any) bool {
	t.Helper()
	if !assert.Len(t, actual, len(expected), msgAndArgs...) {
		return false
	}
	for i := range expected {
		if !assert.InDelta(t, float64(expected[i]), float64(actual[i]), tolerance,
			"index %d: expected %v, got %v", i, expected[i], actual[i]) {
			return false
		}
	}
	return true
}

// AssertRelativeError verifies that the relative error between actual and expected is within tolerance.
func AssertRelativeError(t *testing.T, expected, actual, tolerance float64, msgAndArgs ...any) bool {
	t.Helper()
	if expected == 0 {
		return assert.InDelta(t, expected, actual, tolerance, msgAndArgs...)
	}
	relError := math.Abs(actual-expected) / math.Abs(expected)
	return assert.LessOrEqual(t, relError, tolerance,
		"relative error %e exceeds tolerance %e (expected=%f, actual=%f)",
		relError, tolerance, expected, actual)
}

// AssertStrictlyDecreasing verifies s[i] < s[i-1] for every i.
func AssertStrictlyDecreasing(t *testing.T, s []float64, msgAndArgs ...any) bool {
	t.Helper()
	for i := 1; i < len(s); i++ {
		if s[i] >= s[i-1] {
			return assert.Fail(t, "not strictly decreasing",
				"s[%d]=%g >= s[%d]=%g", i, s[i], i-1, s[i-1])
		}
	}
	return true
}

// Sine generates amplitude·sin(2π·freq·n/sampleRate + phase) for n in [0, n).
func Sine[F Float](n int, freq, sampleRate, amplitude, phase float64) []F {
	out := make([]F, n)
	w := 2 * math.Pi * freq / sampleRate
	for i := range out {
		out[i] = F(amplitude * math.Sin(w*float64(i)+phase))
	}
	return out
}

// Ramp generates start, start+step, ... of length n.
func Ramp[F Float](n int, start, step float64) []F {
	out := make([]F, n)
	for i := range out {
		out[i] = F(start + step*float64(i))
	}
	return out
}

// ReferenceConvolve computes y[n] = Σ_k h[k]·x[n-k] over the whole signal
// with zero initial history, using a plain nested loop.
func ReferenceConvolve(x, h []float64) []float64 {
	y := make([]float64, len(x))
	for n := range x {
		var acc float64
		for k := range h {
			if n-k < 0 {
				break
			}
			acc += h[k] * x[n-k]
		}
		y[n] = acc
	}
	return y
}

// RMS returns the root-mean-square value of s.
func RMS(s []float64) float64 {
	if len(s) == 0 {
		return 0
	}
	return floats.Norm(s, 2) / math.Sqrt(float64(len(s)))
}

// WindowRMS splits s into consecutive non-overlapping windows of size w and
// returns the RMS of each complete window.
func WindowRMS(s []float64, w int) []float64 {
	var out []float64
	for start := 0; start+w <= len(s); start += w {
		out = append(out, RMS(s[start:start+w]))
	}
	return out
}

// ToFloat64 converts a slice to float64.
func ToFloat64[F Float](s []F) []float64 {
	out := make([]float64, len(s))
	for i, v := range s {
		out[i] = float64(v)
	}
	return out
}

// ProcessChunked feeds input through process in chunks whose sizes cycle
// through sizes, concatenating the outputs. maxOut bounds each chunk's output.
func ProcessChunked[F Float](process func(dst, src []F) int, maxOut func(int) int, input []F, sizes []int) []F {
	var out []F
	pos, i := 0, 0
	for pos < len(input) {
		n := min(sizes[i%len(sizes)], len(input)-pos)
		dst := make([]F, maxOut(n))
		written := process(dst, input[pos:pos+n])
		out = append(out, dst[:written]...)
		pos += n
		i++
	}
	return out
}
