package sampleio

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeWAV(t *testing.T, samples []float64, rate, bitDepth int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "in.wav")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	w, err := NewWAVWriter[float64](f, rate, bitDepth)
	require.NoError(t, err)
	require.NoError(t, w.WriteChunk(samples))
	require.NoError(t, w.Close())
	return path
}

func readWAV(t *testing.T, path string, chunk int) (*WAVReader[float64], []float64) {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	r, err := NewWAVReader[float64](f)
	require.NoError(t, err)

	var out []float64
	buf := make([]float64, chunk)
	for {
		n, err := r.ReadChunk(buf)
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		out = append(out, buf[:n]...)
	}
	return r, out
}

func TestWAV_RoundTrip(t *testing.T) {
	for _, bits := range []int{16, 24, 32} {
		t.Run(fmt.Sprintf("%d_bit", bits), func(t *testing.T) {
			scale, err := fullScale(bits)
			require.NoError(t, err)

			in := []float64{0, 0.5, -0.5, 0.25, -1, 100 / scale}
			path := writeWAV(t, in, 8000, bits)

			r, got := readWAV(t, path, 4)
			assert.Equal(t, 8000, r.SampleRate())
			assert.Equal(t, bits, r.BitDepth())
			require.Len(t, got, len(in))
			for i := range in {
				assert.InDelta(t, in[i], got[i], 1/scale, "sample %d", i)
			}
		})
	}
}

func TestWAVWriter_Clips(t *testing.T) {
	path := writeWAV(t, []float64{2, -2}, 8000, 16)
	_, got := readWAV(t, path, 8)
	require.Len(t, got, 2)
	assert.InDelta(t, 1.0, got[0], 1e-4)
	assert.InDelta(t, -1.0, got[1], 1e-4)
}

func TestNewWAVReader_RejectsStereo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stereo.wav")
	f, err := os.Create(path)
	require.NoError(t, err)

	enc := wav.NewEncoder(f, 8000, 16, 2, 1)
	require.NoError(t, enc.Write(&audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 2, SampleRate: 8000},
		Data:           []int{1, 2, 3, 4},
		SourceBitDepth: 16,
	}))
	require.NoError(t, enc.Close())
	require.NoError(t, f.Close())

	in, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = in.Close() }()

	_, err = NewWAVReader[float64](in)
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestNewWAVReader_RejectsText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "not.wav")
	require.NoError(t, os.WriteFile(path, []byte("1\n2\n3\n"), 0o600))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	_, err = NewWAVReader[float32](f)
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestNewWAVWriter_Errors(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "out.wav"))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	_, err = NewWAVWriter[float64](f, 8000, 8)
	require.ErrorIs(t, err, ErrUnsupportedFormat)
	_, err = NewWAVWriter[float64](f, 0, 16)
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}
