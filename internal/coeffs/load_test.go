package coeffs

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFIR(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    int
		coeffs  []float64
		loaded  int
		partial bool
	}{
		{"exact", "0.5\n0.25\n0.125\n", 3, []float64{0.5, 0.25, 0.125}, 3, false},
		{"extra_records_ignored", "1\n2\n3\n4\n", 2, []float64{1, 2}, 2, false},
		{"short_file_zero_padded", "1\n2\n", 4, []float64{1, 2, 0, 0}, 2, true},
		{"load_all", "1, 2, 3\n4", 0, []float64{1, 2, 3, 4}, 4, false},
		{"empty_file", "", 3, []float64{0, 0, 0}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := LoadFIR(strings.NewReader(tt.in), tt.want)
			require.NoError(t, err)

			assert.Equal(t, tt.coeffs, res.Coeffs)
			assert.Equal(t, tt.want, res.Requested)
			assert.Equal(t, tt.loaded, res.Loaded)
			assert.Equal(t, tt.partial, res.Partial())
			if tt.partial {
				assert.ErrorIs(t, res.Err(), ErrPartialLoad)
			} else {
				assert.NoError(t, res.Err())
			}
		})
	}
}

func TestLoadFIR_MalformedStopsLoading(t *testing.T) {
	res, err := LoadFIR(strings.NewReader("1\n2\nnan?\n4\n"), 4)
	require.NoError(t, err)

	assert.Equal(t, []float64{1, 2, 0, 0}, res.Coeffs)
	assert.Equal(t, 2, res.Loaded)
	require.ErrorIs(t, res.Err(), ErrPartialLoad)
	require.ErrorIs(t, res.Err(), ErrMalformedRecord)
}

func TestLoadFIR_MalformedWhenLoadingAll(t *testing.T) {
	res, err := LoadFIR(strings.NewReader("1\nx\n"), 0)
	require.NoError(t, err)
	assert.False(t, res.Partial())
	require.ErrorIs(t, res.Err(), ErrMalformedRecord)
}

func TestLoadFIR_NegativeCount(t *testing.T) {
	_, err := LoadFIR(strings.NewReader("1"), -1)
	require.ErrorIs(t, err, ErrMalformedRecord)
}

func TestLoadFIRFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taps.csv")
	require.NoError(t, os.WriteFile(path, []byte("0.1\n0.2\n"), 0o600))

	res, err := LoadFIRFile(path, 2)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.1, 0.2}, res.Coeffs)

	_, err = LoadFIRFile(filepath.Join(t.TempDir(), "missing.csv"), 2)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadBiquads(t *testing.T) {
	in := "# gain,b0,b1,b2,a0,a1,a2\n" +
		"0.5,1,2,1,1,-0.5,0.25\n" +
		"\n" +
		"2, 1, 0, -1, 1, 0.1, 0.2\n"

	res, err := LoadBiquads(strings.NewReader(in), 2)
	require.NoError(t, err)
	require.NoError(t, res.Err())
	require.Len(t, res.Sections, 2)

	s := res.Sections[0]
	assert.Equal(t, 0.5, s.B0)
	assert.Equal(t, 1.0, s.B1)
	assert.Equal(t, 0.5, s.B2)
	assert.Equal(t, -0.5, s.A1, "feedback terms are not scaled")
	assert.Equal(t, 0.25, s.A2)

	s = res.Sections[1]
	assert.Equal(t, 2.0, s.B0)
	assert.Equal(t, 0.0, s.B1)
	assert.Equal(t, -2.0, s.B2)

	assert.Equal(t, 1.0, res.Rows[0].A0, "a0 is kept in the row")
}

func TestLoadBiquads_FewerRowsThanDeclared(t *testing.T) {
	res, err := LoadBiquads(strings.NewReader("1,1,0,0,1,0,0\n"), 3)
	require.NoError(t, err)

	assert.Len(t, res.Sections, 1, "sections are not padded")
	assert.Equal(t, 1, res.Loaded)
	assert.True(t, res.Partial())
	require.ErrorIs(t, res.Err(), ErrPartialLoad)
}

func TestLoadBiquads_Malformed(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"too_few_columns", "1,1,0,0,1,0\n"},
		{"too_many_columns", "1,1,0,0,1,0,0,9\n"},
		{"not_a_number", "1,1,zero,0,1,0,0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := LoadBiquads(strings.NewReader("1,1,0,0,1,0,0\n"+tt.in), 2)
			require.NoError(t, err)
			assert.Equal(t, 1, res.Loaded)
			require.ErrorIs(t, res.Err(), ErrMalformedRecord)
			require.ErrorIs(t, res.Err(), ErrPartialLoad)
		})
	}
}

func TestLoadBiquads_LoadAll(t *testing.T) {
	res, err := LoadBiquads(strings.NewReader("1,1,0,0,1,0,0\n1,1,0,0,1,0,0\n"), 0)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Loaded)
	assert.NoError(t, res.Err())
}

func TestWriteFIR_RoundTrip(t *testing.T) {
	taps := []float64{0.1, -0.25, 1e-9, 3}

	var buf bytes.Buffer
	require.NoError(t, WriteFIR(&buf, taps, -1))
	assert.Equal(t, "0.1\n-0.25\n1e-09\n3\n", buf.String())

	res, err := LoadFIR(&buf, 0)
	require.NoError(t, err)
	assert.Equal(t, taps, res.Coeffs)
}

func TestWriteBiquads_RoundTrip(t *testing.T) {
	rows := []SOSRow{
		{InvStageGain: 0.25, B0: 1, B1: 2, B2: 1, A0: 1, A1: -1.1, A2: 0.3},
		{InvStageGain: 0.5, B0: 1, B1: 1, A0: 1, A1: -0.5},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteBiquads(&buf, rows, -1))
	assert.Equal(t, "0.25,1,2,1,1,-1.1,0.3\n0.5,1,1,0,1,-0.5,0\n", buf.String())

	res, err := LoadBiquads(&buf, len(rows))
	require.NoError(t, err)
	require.NoError(t, res.Err())
	assert.Equal(t, rows, res.Rows)
	assert.Equal(t, rows[1].Coefficients(), res.Sections[1])
}
