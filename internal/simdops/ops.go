// Package simdops binds the float32 and float64 kernels of github.com/tphakala/simd
// behind one generic table so the streaming engines can be written once for
// both sample precisions.
package simdops

import (
	"github.com/tphakala/simd/f32"
	"github.com/tphakala/simd/f64"
)

// Float is the type constraint for supported sample types.
type Float interface {
	float32 | float64
}

// Ops holds the vector kernels used by the filter engines for type F.
type Ops[F Float] struct {
	// DotProductUnsafe computes Σ a[i]*b[i]. Both slices must have equal length.
	DotProductUnsafe func(a, b []F) F

	// Scale multiplies each element by s: dst[i] = a[i] * s
	Scale func(dst, a []F, s F)

	// Sum returns the sum of all elements.
	Sum func(a []F) F
}

var (
	ops32 = Ops[float32]{
		DotProductUnsafe: f32.DotProductUnsafe,
		Scale:            f32.Scale,
		Sum:              f32.Sum,
	}
	ops64 = Ops[float64]{
		DotProductUnsafe: f64.DotProductUnsafe,
		Scale:            f64.Scale,
		Sum:              f64.Sum,
	}
)

// For returns the Ops instance for type F.
// Resolve it once at construction time, not per sample.
func For[F Float]() *Ops[F] {
	var zero F
	switch any(zero).(type) {
	case float32:
		ops, ok := any(&ops32).(*Ops[F])
		if !ok {
			panic("simdops: type assertion failed for float32")
		}
		return ops
	case float64:
		ops, ok := any(&ops64).(*Ops[F])
		if !ok {
			panic("simdops: type assertion failed for float64")
		}
		return ops
	default:
		panic("simdops: unsupported float type")
	}
}
