package coeffs

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/tphakala/go-streamdsp/internal/sampleio"
)

// LoadFIR reads up to want taps from r. want = 0 reads every record. The
// returned error is reserved for read failures; short and malformed files
// are reported through the result.
func LoadFIR(r io.Reader, want int) (FIRResult, error) {
	if want < 0 {
		return FIRResult{}, fmt.Errorf("%w: negative tap count %d", ErrMalformedRecord, want)
	}

	res := FIRResult{Requested: want}
	sc := bufio.NewScanner(r)
	sc.Split(sampleio.SplitFields)

	for want == 0 || len(res.Coeffs) < want {
		if !sc.Scan() {
			break
		}
		v, err := strconv.ParseFloat(sc.Text(), 64)
		if err != nil {
			res.Malformed = fmt.Errorf("%w: record %d: %w", ErrMalformedRecord, len(res.Coeffs)+1, err)
			break
		}
		res.Coeffs = append(res.Coeffs, v)
	}
	if err := sc.Err(); err != nil {
		return res, fmt.Errorf("reading FIR coefficients: %w", err)
	}

	res.Loaded = len(res.Coeffs)
	if want > res.Loaded {
		res.Coeffs = append(res.Coeffs, make([]float64, want-res.Loaded)...)
	}
	return res, nil
}

// LoadFIRFile is LoadFIR on the named file.
func LoadFIRFile(path string, want int) (FIRResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return FIRResult{}, fmt.Errorf("failed to open coefficient file: %w", err)
	}
	defer func() { _ = f.Close() }()

	res, err := LoadFIR(f, want)
	if err != nil {
		return res, fmt.Errorf("%s: %w", path, err)
	}
	return res, nil
}

// LoadBiquads reads up to want sections from r. want = 0 reads every line.
// Blank lines and lines starting with '#' are skipped.
func LoadBiquads(r io.Reader, want int) (BiquadResult, error) {
	if want < 0 {
		return BiquadResult{}, fmt.Errorf("%w: negative section count %d", ErrMalformedRecord, want)
	}

	res := BiquadResult{Requested: want}
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.FieldsPerRecord = sosFields
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	for want == 0 || len(res.Rows) < want {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if !errors.As(err, &perr) {
				return res, fmt.Errorf("reading biquad coefficients: %w", err)
			}
			res.Malformed = fmt.Errorf("%w: %w", ErrMalformedRecord, err)
			break
		}

		row, err := parseSOSRow(rec)
		if err != nil {
			line, _ := cr.FieldPos(0)
			res.Malformed = fmt.Errorf("%w: line %d: %w", ErrMalformedRecord, line, err)
			break
		}
		res.Rows = append(res.Rows, row)
		res.Sections = append(res.Sections, row.Coefficients())
	}

	res.Loaded = len(res.Rows)
	return res, nil
}

// LoadBiquadsFile is LoadBiquads on the named file.
func LoadBiquadsFile(path string, want int) (BiquadResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return BiquadResult{}, fmt.Errorf("failed to open coefficient file: %w", err)
	}
	defer func() { _ = f.Close() }()

	res, err := LoadBiquads(f, want)
	if err != nil {
		return res, fmt.Errorf("%s: %w", path, err)
	}
	return res, nil
}

func parseSOSRow(rec []string) (SOSRow, error) {
	var v [sosFields]float64
	for i, field := range rec {
		x, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return SOSRow{}, fmt.Errorf("column %d: %w", i+1, err)
		}
		v[i] = x
	}
	return SOSRow{
		InvStageGain: v[0],
		B0:           v[1], B1: v[2], B2: v[3],
		A0: v[4], A1: v[5], A2: v[6],
	}, nil
}
