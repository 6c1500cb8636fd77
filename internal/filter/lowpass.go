// Package filter designs the coefficient sets the streaming engines consume:
// windowed-sinc FIR low-pass taps and Butterworth low-pass biquad cascades,
// together with a frequency response check for validating them.
package filter

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/dsp/window"
	"gonum.org/v1/gonum/floats"

	"github.com/tphakala/go-streamdsp/internal/mathutil"
)

// ErrInvalidDesign is returned for design parameters no filter can satisfy.
var ErrInvalidDesign = errors.New("invalid filter design")

// Window selects the taper applied to a truncated sinc.
type Window int

const (
	// WindowHamming is the fixed 0.54/0.46 Hamming taper.
	WindowHamming Window = iota
	// WindowKaiser is a Kaiser taper whose β follows the requested attenuation.
	WindowKaiser
)

func (w Window) String() string {
	switch w {
	case WindowHamming:
		return "hamming"
	case WindowKaiser:
		return "kaiser"
	default:
		return fmt.Sprintf("Window(%d)", int(w))
	}
}

// ParseWindow maps a window name to its Window value.
func ParseWindow(name string) (Window, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "hamming":
		return WindowHamming, nil
	case "kaiser":
		return WindowKaiser, nil
	default:
		return 0, fmt.Errorf("%w: unknown window %q (want hamming or kaiser)", ErrInvalidDesign, name)
	}
}

// LowPassParams holds parameters for windowed-sinc design.
type LowPassParams struct {
	// NumTaps is the filter length. Odd lengths give an exact centre tap.
	NumTaps int

	// Cutoff is the -6 dB point as a fraction of the sample rate, in (0, 0.5).
	Cutoff float64

	Window Window

	// Attenuation is the stopband target in dB; only WindowKaiser uses it.
	Attenuation float64

	// Gain is the DC gain the taps are normalized to. Zero means unity.
	Gain float64
}

// Validate checks if the parameters describe a realizable filter.
func (p *LowPassParams) Validate() error {
	if p.NumTaps < minTaps || p.NumTaps > maxTaps {
		return fmt.Errorf("%w: %d taps (must be %d-%d)", ErrInvalidDesign, p.NumTaps, minTaps, maxTaps)
	}
	if p.Cutoff <= 0 || p.Cutoff >= nyquistFraction {
		return fmt.Errorf("%w: cutoff %g (must be in (0, 0.5))", ErrInvalidDesign, p.Cutoff)
	}
	if p.Window == WindowKaiser && p.Attenuation <= 0 {
		return fmt.Errorf("%w: kaiser window needs a positive attenuation, got %g dB", ErrInvalidDesign, p.Attenuation)
	}
	if p.Gain < 0 {
		return fmt.Errorf("%w: gain %g must not be negative", ErrInvalidDesign, p.Gain)
	}
	return nil
}

// DesignLowPass designs a linear-phase low-pass FIR by truncating the ideal
// sinc response to NumTaps, applying the selected window and scaling the taps
// so they sum to Gain.
func DesignLowPass(p LowPassParams) ([]float64, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	taps := make([]float64, p.NumTaps)
	center := float64(p.NumTaps-1) / 2
	for n := range taps {
		taps[n] = 2 * p.Cutoff * mathutil.Sinc(2*p.Cutoff*(float64(n)-center))
	}

	switch {
	case p.Window == WindowKaiser:
		floats.Mul(taps, mathutil.KaiserWindow(p.NumTaps, mathutil.KaiserBeta(p.Attenuation)))
	case p.NumTaps > 1:
		// window.Hamming divides by N-1; a single tap is left untapered.
		window.Hamming(taps)
	}

	gain := p.Gain
	if gain == 0 {
		gain = 1
	}
	if sum := floats.Sum(taps); math.Abs(sum) > minNormalizationSum {
		floats.Scale(gain/sum, taps)
	}
	return taps, nil
}

// DesignLowPassAuto picks the tap count from the attenuation and transition
// width (both as fractions of the sample rate) and designs a Kaiser-windowed
// low-pass.
func DesignLowPassAuto(cutoff, transition, attenuation float64) ([]float64, error) {
	return DesignLowPass(LowPassParams{
		NumTaps:     mathutil.KaiserLength(attenuation, transition),
		Cutoff:      cutoff,
		Window:      WindowKaiser,
		Attenuation: attenuation,
	})
}
