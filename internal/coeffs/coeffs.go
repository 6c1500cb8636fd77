// Package coeffs reads and writes the text coefficient files consumed by the
// filter tools.
//
// FIR files hold one decimal value per record, separated by whitespace or
// commas. Biquad files hold one second-order section per line as seven
// comma-separated values: inverse stage gain, b0, b1, b2, a0, a1, a2. a0 is
// read and ignored; sections are assumed normalized to a0 = 1.
//
// Loading never fails on a short file. The result reports how many records
// were requested and how many were found, and the caller decides whether a
// partial load is fatal.
package coeffs

import (
	"errors"
	"fmt"

	"github.com/tphakala/go-streamdsp/internal/engine"
)

var (
	// ErrPartialLoad reports a file holding fewer records than requested.
	ErrPartialLoad = errors.New("partial coefficient load")

	// ErrMalformedRecord reports a record that could not be parsed. Loading
	// stops at the first one.
	ErrMalformedRecord = errors.New("malformed coefficient record")
)

// FIRResult is the outcome of loading FIR taps.
type FIRResult struct {
	// Coeffs has Requested entries (Loaded when Requested is 0); missing
	// taps are zero.
	Coeffs []float64

	Requested int
	Loaded    int

	// Malformed is the parse error that stopped loading early, if any.
	Malformed error
}

// Partial reports whether fewer taps were found than requested.
func (r FIRResult) Partial() bool {
	return r.Requested > 0 && r.Loaded < r.Requested
}

// Err returns nil for a complete load, otherwise an error wrapping
// ErrPartialLoad (and the parse error when one stopped loading).
func (r FIRResult) Err() error {
	return loadErr(r.Partial(), r.Requested, r.Loaded, r.Malformed)
}

// SOSRow is one biquad file record.
type SOSRow struct {
	InvStageGain float64
	B0, B1, B2   float64
	A0, A1, A2   float64
}

// Coefficients folds the stage gain into the numerator. A0 is ignored.
func (r SOSRow) Coefficients() engine.BiquadCoefficients {
	return engine.NormalizeBiquad(r.InvStageGain, r.B0, r.B1, r.B2, r.A1, r.A2)
}

// BiquadResult is the outcome of loading biquad sections. Unlike FIR taps,
// missing sections are not padded.
type BiquadResult struct {
	Rows      []SOSRow
	Sections  []engine.BiquadCoefficients
	Requested int
	Loaded    int
	Malformed error
}

// Partial reports whether fewer sections were found than requested.
func (r BiquadResult) Partial() bool {
	return r.Requested > 0 && r.Loaded < r.Requested
}

// Err returns nil for a complete load, otherwise an error wrapping
// ErrPartialLoad.
func (r BiquadResult) Err() error {
	return loadErr(r.Partial(), r.Requested, r.Loaded, r.Malformed)
}

func loadErr(partial bool, requested, loaded int, malformed error) error {
	switch {
	case !partial && malformed == nil:
		return nil
	case !partial:
		return malformed
	case malformed != nil:
		return fmt.Errorf("%w: loaded %d of %d: %w", ErrPartialLoad, loaded, requested, malformed)
	default:
		return fmt.Errorf("%w: loaded %d of %d", ErrPartialLoad, loaded, requested)
	}
}
