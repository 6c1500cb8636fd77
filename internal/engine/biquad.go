package engine

import (
	"fmt"

	"github.com/tphakala/go-streamdsp/internal/simdops"
)

// BiquadCoefficients holds one normalized second-order section. a0 is taken
// as 1 and not stored.
//
//	y[n] = B0·x[n] + B1·x1 + B2·x2 - A1·y1 - A2·y2
type BiquadCoefficients struct {
	B0, B1, B2 float64 // feedforward
	A1, A2     float64 // feedback
}

// NormalizeBiquad applies a per-section gain stage to raw section
// coefficients. The feedforward terms are multiplied by invStageGain (that is,
// divided by the stage gain); the feedback terms pass through unchanged.
func NormalizeBiquad(invStageGain, b0, b1, b2, a1, a2 float64) BiquadCoefficients {
	return BiquadCoefficients{
		B0: b0 * invStageGain,
		B1: b1 * invStageGain,
		B2: b2 * invStageGain,
		A1: a1,
		A2: a2,
	}
}

// BiquadState is the history of one section: the two previous inputs and the
// two previous outputs.
type BiquadState struct {
	X1, X2 float64
	Y1, Y2 float64
}

type biquadSection[F simdops.Float] struct {
	b0, b1, b2 F
	a1, a2     F
	x1, x2     F
	y1, y2     F
}

func (s *biquadSection[F]) process(x F) F {
	y := s.b0*x + s.b1*s.x1 + s.b2*s.x2 - s.a1*s.y1 - s.a2*s.y2

	s.x2 = s.x1
	s.x1 = x
	s.y2 = s.y1
	s.y1 = y

	return y
}

// BiquadCascade is a chain of direct form I biquad sections processed in
// series. Section state persists across chunks for the life of the stream.
type BiquadCascade[F simdops.Float] struct {
	sections []biquadSection[F]
}

// NewBiquadCascade creates a cascade with one section per coefficient set.
func NewBiquadCascade[F simdops.Float](coeffs []BiquadCoefficients) (*BiquadCascade[F], error) {
	if len(coeffs) < minSections {
		return nil, fmt.Errorf("%w: cascade needs at least %d section", ErrInvalidParameter, minSections)
	}

	c := &BiquadCascade[F]{sections: make([]biquadSection[F], len(coeffs))}
	for i, bc := range coeffs {
		c.sections[i] = biquadSection[F]{
			b0: F(bc.B0), b1: F(bc.B1), b2: F(bc.B2),
			a1: F(bc.A1), a2: F(bc.A2),
		}
	}
	return c, nil
}

// ProcessSample runs x through every section in order.
func (c *BiquadCascade[F]) ProcessSample(x F) F {
	for i := range c.sections {
		x = c.sections[i].process(x)
	}
	return x
}

// Process filters src into dst and returns len(src).
// dst must hold at least len(src) samples; dst and src may be the same slice.
func (c *BiquadCascade[F]) Process(dst, src []F) int {
	if len(src) == 0 {
		return 0
	}
	_ = dst[len(src)-1]

	for i, x := range src {
		dst[i] = c.ProcessSample(x)
	}
	return len(src)
}

// MaxOutputLen returns the output length for an n-sample chunk.
func (c *BiquadCascade[F]) MaxOutputLen(n int) int {
	return n
}

// NumSections returns the number of biquad sections.
func (c *BiquadCascade[F]) NumSections() int {
	return len(c.sections)
}

// State returns a snapshot of section i's history.
func (c *BiquadCascade[F]) State(i int) BiquadState {
	s := &c.sections[i]
	return BiquadState{
		X1: float64(s.x1), X2: float64(s.x2),
		Y1: float64(s.y1), Y2: float64(s.y2),
	}
}

// Reset zeroes the history of every section.
func (c *BiquadCascade[F]) Reset() {
	for i := range c.sections {
		s := &c.sections[i]
		s.x1, s.x2, s.y1, s.y2 = 0, 0, 0, 0
	}
}
