package streamdsp

import (
	"errors"
	"fmt"
	"math"

	"github.com/tphakala/simd/cpu"

	"github.com/tphakala/go-streamdsp/internal/engine"
	"github.com/tphakala/go-streamdsp/internal/simdops"
)

// Float is the sample type constraint: float32 or float64.
type Float = simdops.Float

// Filter processes real chunks. Process writes at most MaxOutputLen(len(src))
// samples to dst and returns how many it wrote.
type Filter[F Float] interface {
	Process(dst, src []F) int
	MaxOutputLen(n int) int
	Reset()
}

// IQProcessor turns complex chunks, given as parallel real and imaginary
// slices, into real output.
type IQProcessor[F Float] interface {
	Process(dst, re, im []F) int
	MaxOutputLen(n int) int
	Reset()
}

type (
	// FIR is a streaming FIR convolver.
	FIR[F Float] = engine.FIR[F]
	// BiquadCascade is a streaming chain of biquad sections.
	BiquadCascade[F Float] = engine.BiquadCascade[F]
	// Downmixer mixes, filters and decimates.
	Downmixer[F Float] = engine.Downmixer[F]
	// LMSCanceller adaptively removes a sinusoidal interferer.
	LMSCanceller[F Float] = engine.LMSCanceller[F]
	// InstFreqEstimator estimates instantaneous frequency.
	InstFreqEstimator[F Float] = engine.InstFreq[F]

	// BiquadCoefficients is one normalized section (a0 = 1).
	BiquadCoefficients = engine.BiquadCoefficients
	// UnwrapCarry is the phase state an estimator carries across chunks.
	UnwrapCarry = engine.UnwrapCarry
)

var (
	_ Filter[float64]      = (*FIR[float64])(nil)
	_ Filter[float64]      = (*BiquadCascade[float64])(nil)
	_ Filter[float32]      = (*Downmixer[float32])(nil)
	_ Filter[float64]      = (*LMSCanceller[float64])(nil)
	_ IQProcessor[float64] = (*InstFreqEstimator[float64])(nil)
)

// ErrInvalidConfig indicates invalid configuration parameters.
var ErrInvalidConfig = errors.New("invalid filter configuration")

// NormalizeBiquad folds a per-section inverse gain into the numerator.
func NormalizeBiquad(invStageGain, b0, b1, b2, a1, a2 float64) BiquadCoefficients {
	return engine.NormalizeBiquad(invStageGain, b0, b1, b2, a1, a2)
}

// FIRConfig configures NewFIR.
type FIRConfig struct {
	// Taps are the filter coefficients; Taps[0] weights the newest sample.
	Taps []float64

	// ChunkSize is the largest chunk the caller will pass. It sizes the
	// history; zero means DefaultChunkSize.
	ChunkSize int
}

// Validate checks if the configuration is valid.
func (c *FIRConfig) Validate() error {
	if len(c.Taps) < minTaps {
		return fmt.Errorf("%w: FIR needs at least %d tap", ErrInvalidConfig, minTaps)
	}
	if err := validTaps(c.Taps); err != nil {
		return err
	}
	return validChunkSize(c.ChunkSize)
}

// BiquadConfig configures NewBiquadCascade.
type BiquadConfig struct {
	Sections []BiquadCoefficients
}

// Validate checks if the configuration is valid.
func (c *BiquadConfig) Validate() error {
	if len(c.Sections) == 0 {
		return fmt.Errorf("%w: cascade needs at least one section", ErrInvalidConfig)
	}
	for i, s := range c.Sections {
		if err := validTaps([]float64{s.B0, s.B1, s.B2, s.A1, s.A2}); err != nil {
			return fmt.Errorf("section %d: %w", i, err)
		}
	}
	return nil
}

// DownmixConfig configures NewDownmixer.
type DownmixConfig struct {
	// Taps is the low-pass applied after mixing.
	Taps []float64

	// Factor is the decimation factor M.
	Factor int

	// MixFrequency is the local oscillator frequency in Hz.
	MixFrequency float64

	// SampleRate is the input sample rate in Hz.
	SampleRate float64

	// ChunkSize sizes the history; zero means DefaultChunkSize.
	ChunkSize int
}

// Validate checks if the configuration is valid.
func (c *DownmixConfig) Validate() error {
	if len(c.Taps) < minTaps {
		return fmt.Errorf("%w: downmix filter needs at least %d tap", ErrInvalidConfig, minTaps)
	}
	if err := validTaps(c.Taps); err != nil {
		return err
	}
	if c.Factor < minDecimation {
		return fmt.Errorf("%w: decimation factor must be at least %d, got %d", ErrInvalidConfig, minDecimation, c.Factor)
	}
	if err := validRate(c.SampleRate); err != nil {
		return err
	}
	if c.MixFrequency < 0 || c.MixFrequency >= c.SampleRate || math.IsNaN(c.MixFrequency) {
		return fmt.Errorf("%w: mix frequency %g Hz must be in [0, %g)", ErrInvalidConfig, c.MixFrequency, c.SampleRate)
	}
	return validChunkSize(c.ChunkSize)
}

// LMSConfig configures NewLMSCanceller.
type LMSConfig struct {
	// Taps is the number of adaptive weights.
	Taps int

	// StepSize is the adaptation rate μ. Stability is the caller's concern.
	StepSize float64

	// InterfererFrequency is the tone to cancel, in Hz.
	InterfererFrequency float64

	// SampleRate is the input sample rate in Hz.
	SampleRate float64
}

// Validate checks if the configuration is valid.
func (c *LMSConfig) Validate() error {
	if c.Taps < minTaps {
		return fmt.Errorf("%w: LMS needs at least %d tap, got %d", ErrInvalidConfig, minTaps, c.Taps)
	}
	if c.StepSize < 0 || math.IsNaN(c.StepSize) || math.IsInf(c.StepSize, 0) {
		return fmt.Errorf("%w: step size must be finite and non-negative, got %g", ErrInvalidConfig, c.StepSize)
	}
	if err := validRate(c.SampleRate); err != nil {
		return err
	}
	if c.InterfererFrequency < 0 || c.InterfererFrequency > c.SampleRate/nyquistDivisor {
		return fmt.Errorf("%w: interferer %g Hz must be in [0, %g]", ErrInvalidConfig,
			c.InterfererFrequency, c.SampleRate/nyquistDivisor)
	}
	return nil
}

// InstFreqConfig configures NewInstFreqEstimator.
type InstFreqConfig struct {
	// SampleRate scales the estimate to Hz.
	SampleRate float64

	// ChunkSize sizes the scratch buffers; zero means DefaultChunkSize.
	ChunkSize int
}

// Validate checks if the configuration is valid.
func (c *InstFreqConfig) Validate() error {
	if err := validRate(c.SampleRate); err != nil {
		return err
	}
	return validChunkSize(c.ChunkSize)
}

// NewFIR creates a FIR filter whose history holds ChunkSize+len(Taps)-1
// samples.
func NewFIR[F Float](cfg FIRConfig) (*FIR[F], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return engine.NewFIR(convert[F](cfg.Taps), historyCapacity(cfg.ChunkSize, len(cfg.Taps)))
}

// NewBiquadCascade creates a cascade with zeroed state.
func NewBiquadCascade[F Float](cfg BiquadConfig) (*BiquadCascade[F], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return engine.NewBiquadCascade[F](cfg.Sections)
}

// NewDownmixer creates a downmixer with the oscillator at phase zero.
func NewDownmixer[F Float](cfg DownmixConfig) (*Downmixer[F], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return engine.NewDownmixer(
		convert[F](cfg.Taps),
		historyCapacity(cfg.ChunkSize, len(cfg.Taps)),
		cfg.Factor,
		cfg.MixFrequency/cfg.SampleRate,
	)
}

// NewLMSCanceller creates a canceller with all weights at zero.
func NewLMSCanceller[F Float](cfg LMSConfig) (*LMSCanceller[F], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return engine.NewLMSCanceller(cfg.Taps, F(cfg.StepSize), cfg.InterfererFrequency, cfg.SampleRate)
}

// NewInstFreqEstimator creates an estimator with an unprimed carry.
func NewInstFreqEstimator[F Float](cfg InstFreqConfig) (*InstFreqEstimator[F], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return engine.NewInstFreq[F](chunkOrDefault(cfg.ChunkSize), cfg.SampleRate)
}

// Info describes a filter.
type Info struct {
	// Algorithm names the filter type.
	Algorithm string

	// Taps is the FIR or LMS length; Sections the biquad count.
	Taps     int
	Sections int

	// Decimation is the output-rate divisor (1 for non-decimating filters).
	Decimation int

	// SIMDType describes the instruction set used for dot products.
	SIMDType string
}

// GetInfo returns information about a filter created by this package. Other
// values yield Algorithm "unknown".
func GetInfo(f any) Info {
	info := Info{Algorithm: "unknown", Decimation: 1, SIMDType: cpu.Info()}
	switch v := f.(type) {
	case *FIR[float64]:
		info.Algorithm, info.Taps = "fir", v.NumTaps()
	case *FIR[float32]:
		info.Algorithm, info.Taps = "fir", v.NumTaps()
	case *BiquadCascade[float64]:
		info.Algorithm, info.Sections = "biquad", v.NumSections()
	case *BiquadCascade[float32]:
		info.Algorithm, info.Sections = "biquad", v.NumSections()
	case *Downmixer[float64]:
		info.Algorithm, info.Taps, info.Decimation = "downmix", v.NumTaps(), v.Factor()
	case *Downmixer[float32]:
		info.Algorithm, info.Taps, info.Decimation = "downmix", v.NumTaps(), v.Factor()
	case *LMSCanceller[float64]:
		info.Algorithm, info.Taps = "lms", v.NumTaps()
	case *LMSCanceller[float32]:
		info.Algorithm, info.Taps = "lms", v.NumTaps()
	case *InstFreqEstimator[float64], *InstFreqEstimator[float32]:
		info.Algorithm = "instfreq"
	}
	return info
}

func validTaps(taps []float64) error {
	for i, t := range taps {
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return fmt.Errorf("%w: coefficient %d is not finite", ErrInvalidConfig, i)
		}
	}
	return nil
}

func validRate(rate float64) error {
	if rate <= 0 || math.IsInf(rate, 0) || math.IsNaN(rate) {
		return fmt.Errorf("%w: sample rate must be positive, got %g", ErrInvalidConfig, rate)
	}
	return nil
}

func validChunkSize(n int) error {
	if n < 0 || n > maxChunkSize {
		return fmt.Errorf("%w: chunk size %d out of range [0, %d]", ErrInvalidConfig, n, maxChunkSize)
	}
	return nil
}

func chunkOrDefault(n int) int {
	if n == 0 {
		return DefaultChunkSize
	}
	return n
}

// historyCapacity covers the current chunk plus the taps-1 samples of the
// previous one that the convolution reaches back into.
func historyCapacity(chunk, taps int) int {
	return chunkOrDefault(chunk) + taps - 1
}

func convert[F Float](src []float64) []F {
	dst := make([]F, len(src))
	for i, v := range src {
		dst[i] = F(v)
	}
	return dst
}
