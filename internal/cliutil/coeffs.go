package cliutil

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/tphakala/go-streamdsp/internal/coeffs"
	"github.com/tphakala/go-streamdsp/internal/engine"
	"github.com/tphakala/go-streamdsp/internal/simdops"
)

// LoadTaps loads FIR taps. A short or malformed file is logged and the
// missing taps stay zero, unless strict is set, in which case it is an error.
func LoadTaps[F simdops.Float](log *logrus.Entry, path string, want int, strict bool) ([]F, error) {
	res, err := coeffs.LoadFIRFile(path, want)
	if err != nil {
		return nil, err
	}

	fields := logrus.Fields{"path": path, "requested": res.Requested, "loaded": res.Loaded}
	if lerr := res.Err(); lerr != nil {
		if strict {
			return nil, fmt.Errorf("%s: %w", path, lerr)
		}
		log.WithFields(fields).WithError(lerr).Warn("coefficient file incomplete, continuing with zero taps")
	}
	if len(res.Coeffs) == 0 {
		return nil, fmt.Errorf("%s: %w: no coefficients", path, coeffs.ErrPartialLoad)
	}
	log.WithFields(fields).Debug("loaded FIR coefficients")

	return Convert[F](res.Coeffs), nil
}

// LoadSections loads biquad sections. Fewer sections than requested is
// always an error.
func LoadSections(log *logrus.Entry, path string, want int) ([]engine.BiquadCoefficients, error) {
	res, err := coeffs.LoadBiquadsFile(path, want)
	if err != nil {
		return nil, err
	}
	if lerr := res.Err(); lerr != nil {
		return nil, fmt.Errorf("%s: only %d of %d sections loaded: %w", path, res.Loaded, res.Requested, lerr)
	}
	if res.Loaded == 0 {
		return nil, fmt.Errorf("%s: %w: no sections", path, coeffs.ErrPartialLoad)
	}

	log.WithFields(logrus.Fields{"path": path, "sections": res.Loaded}).Debug("loaded biquad sections")
	return res.Sections, nil
}

// Convert copies float64 values into a slice of F.
func Convert[F simdops.Float](src []float64) []F {
	dst := make([]F, len(src))
	for i, v := range src {
		dst[i] = F(v)
	}
	return dst
}
