package filter

import (
	"fmt"
	"math"

	"github.com/tphakala/go-streamdsp/internal/coeffs"
	"github.com/tphakala/go-streamdsp/internal/engine"
)

// ButterworthLowPass designs an order-N Butterworth low-pass as a cascade of
// second-order sections, each with unity DC gain. Odd orders end with a
// first-order section (B2 = A2 = 0).
func ButterworthLowPass(cutoffHz float64, order int, sampleRate float64) ([]engine.BiquadCoefficients, error) {
	if order < 1 || order > maxButterworthOrder {
		return nil, fmt.Errorf("%w: order %d (must be 1-%d)", ErrInvalidDesign, order, maxButterworthOrder)
	}
	if sampleRate <= 0 || cutoffHz <= 0 || cutoffHz >= sampleRate*nyquistFraction {
		return nil, fmt.Errorf("%w: cutoff %g Hz must lie in (0, %g)", ErrInvalidDesign, cutoffHz, sampleRate*nyquistFraction)
	}

	sections := make([]engine.BiquadCoefficients, 0, (order+1)/2)
	for i := order/2 - 1; i >= 0; i-- {
		sections = append(sections, lowpassRBJ(cutoffHz, butterworthQ(order, i), sampleRate))
	}
	if order%2 != 0 {
		sections = append(sections, firstOrderLowPass(cutoffHz, sampleRate))
	}
	return sections, nil
}

// butterworthQ returns the quality factor of biquad section index for the
// given order: 1 / (2·sin(π(2i+1)/(2N))).
func butterworthQ(order, index int) float64 {
	theta := math.Pi * float64(2*index+1) / (2 * float64(order))
	return 1 / (2 * math.Sin(theta))
}

func lowpassRBJ(freq, q, sampleRate float64) engine.BiquadCoefficients {
	w0 := 2 * math.Pi * freq / sampleRate
	cw := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * q)
	a0 := 1 + alpha

	b := (1 - cw) / 2 / a0
	return engine.BiquadCoefficients{
		B0: b,
		B1: 2 * b,
		B2: b,
		A1: -2 * cw / a0,
		A2: (1 - alpha) / a0,
	}
}

func firstOrderLowPass(freq, sampleRate float64) engine.BiquadCoefficients {
	k := math.Tan(math.Pi * freq / sampleRate)
	norm := 1 / (1 + k)
	return engine.BiquadCoefficients{
		B0: k * norm,
		B1: k * norm,
		A1: (k - 1) * norm,
	}
}

// ToSOSRows splits each section into a monic numerator and the inverse stage
// gain Σa/Σb that restores unity DC gain. Sections with B0 = 0 keep their
// numerator as is.
func ToSOSRows(sections []engine.BiquadCoefficients) []coeffs.SOSRow {
	rows := make([]coeffs.SOSRow, len(sections))
	for i, s := range sections {
		b0, b1, b2 := s.B0, s.B1, s.B2
		if b0 != 0 {
			b0, b1, b2 = 1, s.B1/s.B0, s.B2/s.B0
		}

		inv := 1.0
		if sb := b0 + b1 + b2; sb != 0 {
			inv = (1 + s.A1 + s.A2) / sb
		}
		rows[i] = coeffs.SOSRow{InvStageGain: inv, B0: b0, B1: b1, B2: b2, A0: 1, A1: s.A1, A2: s.A2}
	}
	return rows
}
