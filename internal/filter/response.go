package filter

import (
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/tphakala/go-streamdsp/internal/engine"
)

// Response is a sampled magnitude response from DC to Nyquist.
type Response struct {
	// Frequencies are fractions of the sample rate, 0 to 0.5.
	Frequencies []float64
	// Magnitude is the linear gain at each frequency.
	Magnitude []float64
}

// FIRResponse evaluates the magnitude response of FIR taps on an FFT grid
// of at least fftSize points (rounded up to cover the taps).
func FIRResponse(taps []float64, fftSize int) Response {
	return impulseResponse(taps, fftSize)
}

// CascadeResponse evaluates a biquad cascade by running fftSize samples of
// its impulse response through an FFT. The IIR tail is truncated, so fftSize
// should comfortably exceed the cascade's decay time.
func CascadeResponse(sections []engine.BiquadCoefficients, fftSize int) (Response, error) {
	n := max(fftSize, minFFTSize)
	c, err := engine.NewBiquadCascade[float64](sections)
	if err != nil {
		return Response{}, fmt.Errorf("cascade response: %w", err)
	}

	impulse := make([]float64, n)
	impulse[0] = 1
	h := make([]float64, c.MaxOutputLen(n))
	c.Process(h, impulse)
	return impulseResponse(h, n), nil
}

func impulseResponse(h []float64, fftSize int) Response {
	n := max(fftSize, minFFTSize, len(h))
	seq := make([]float64, n)
	copy(seq, h)

	fft := fourier.NewFFT(n)
	coeffs := fft.Coefficients(nil, seq)

	r := Response{
		Frequencies: make([]float64, len(coeffs)),
		Magnitude:   make([]float64, len(coeffs)),
	}
	for i, c := range coeffs {
		r.Frequencies[i] = fft.Freq(i)
		r.Magnitude[i] = cmplx.Abs(c)
	}
	return r
}

// DCGain is the magnitude at 0 Hz.
func (r Response) DCGain() float64 {
	if len(r.Magnitude) == 0 {
		return 0
	}
	return r.Magnitude[0]
}

// At returns the magnitude at the grid point nearest to freq.
func (r Response) At(freq float64) float64 {
	if len(r.Frequencies) < 2 {
		return r.DCGain()
	}
	step := r.Frequencies[1]
	i := int(math.Round(freq / step))
	i = min(max(i, 0), len(r.Magnitude)-1)
	return r.Magnitude[i]
}

// CutoffFrequency returns the first frequency where the response falls 3 dB
// below its DC gain, linearly interpolated between grid points. ok is false
// when the response never drops that far.
func (r Response) CutoffFrequency() (freq float64, ok bool) {
	ref := MagnitudeDB(r.DCGain())
	for i := 1; i < len(r.Magnitude); i++ {
		db := MagnitudeDB(r.Magnitude[i]) - ref
		if db > cutoffLevelDB {
			continue
		}
		prev := MagnitudeDB(r.Magnitude[i-1]) - ref
		frac := 0.0
		if prev != db {
			frac = (prev - cutoffLevelDB) / (prev - db)
		}
		f0, f1 := r.Frequencies[i-1], r.Frequencies[i]
		return f0 + frac*(f1-f0), true
	}
	return 0, false
}

// MagnitudeDB converts a linear magnitude to decibels.
func MagnitudeDB(magnitude float64) float64 {
	return dbMultiplier * math.Log10(max(magnitude, minMagnitude))
}
