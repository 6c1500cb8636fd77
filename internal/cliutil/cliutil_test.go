package cliutil

import (
	"flag"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-streamdsp/internal/coeffs"
	"github.com/tphakala/go-streamdsp/internal/sampleio"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRegisterCommon(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	c := RegisterCommon(fs)
	require.NoError(t, fs.Parse([]string{"-chunk", "64", "-fast", "-format", "wav", "in", "out"}))

	assert.Equal(t, 64, c.ChunkSize)
	assert.True(t, c.Fast)
	require.NoError(t, c.Validate())

	args, err := Positional(fs, 2, "input output")
	require.NoError(t, err)
	assert.Equal(t, []string{"in", "out"}, args)

	_, err = Positional(fs, 3, "a b c")
	require.ErrorIs(t, err, ErrUsage)
}

func TestCommon_Validate(t *testing.T) {
	c := Common{ChunkSize: 0, Format: "auto"}
	require.ErrorIs(t, c.Validate(), ErrUsage)

	c = Common{ChunkSize: 8, Format: "mp3"}
	require.ErrorIs(t, c.Validate(), ErrUsage)
}

func TestFormat_Resolve(t *testing.T) {
	tests := []struct {
		format Format
		path   string
		want   Format
	}{
		{FormatAuto, "signal.wav", FormatWAV},
		{FormatAuto, "SIGNAL.WAV", FormatWAV},
		{FormatAuto, "signal.csv", FormatText},
		{FormatAuto, "signal", FormatText},
		{FormatText, "signal.wav", FormatText},
		{FormatWAV, "signal.txt", FormatWAV},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.format.Resolve(tt.path), "%s %s", tt.format, tt.path)
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("CSV")
	require.NoError(t, err)
	assert.Equal(t, FormatText, f)

	_, err = ParseFormat("flac")
	require.ErrorIs(t, err, ErrUsage)
}

func TestNewLogger(t *testing.T) {
	out, err := os.CreateTemp(t.TempDir(), "log")
	require.NoError(t, err)
	defer func() { _ = out.Close() }()

	logger, err := NewLogger("warn", out)
	require.NoError(t, err)
	assert.Equal(t, logrus.WarnLevel, logger.GetLevel())
	tf, ok := logger.Formatter.(*logrus.TextFormatter)
	require.True(t, ok)
	assert.True(t, tf.DisableColors, "files are not terminals")

	_, err = NewLogger("chatty", out)
	require.ErrorIs(t, err, ErrUsage)
}

func TestTextInputOutput(t *testing.T) {
	in := writeFile(t, "in.txt", "1\n2\n3\n")
	src, err := OpenInput[float64](in, FormatAuto)
	require.NoError(t, err)
	defer func() { _ = src.Close() }()
	assert.Equal(t, FormatText, src.Format())
	assert.Equal(t, 0, src.SampleRate())

	outPath := filepath.Join(t.TempDir(), "out.txt")
	out, err := CreateOutput[float64](outPath, OutputOptions{Precision: -1})
	require.NoError(t, err)

	buf := make([]float64, 8)
	n, err := src.ReadChunk(buf)
	require.NoError(t, err)
	require.NoError(t, out.WriteChunk(buf[:n]))
	require.NoError(t, out.Close())
	assert.NoError(t, src.Err())

	got, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, "1\n2\n3\n", string(got))
}

func TestWAVInputOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tone.wav")
	out, err := CreateOutput[float32](path, OutputOptions{SampleRate: 16000, BitDepth: 16})
	require.NoError(t, err)
	assert.Equal(t, FormatWAV, out.Format())
	require.NoError(t, out.WriteChunk([]float32{0.5, -0.5}))
	require.NoError(t, out.Close())

	in, err := OpenInput[float32](path, FormatAuto)
	require.NoError(t, err)
	defer func() { _ = in.Close() }()
	assert.Equal(t, 16000, in.SampleRate())

	buf := make([]float32, 4)
	n, err := in.ReadChunk(buf)
	require.NoError(t, err)
	require.Equal(t, 2, n)
	assert.InDelta(t, 0.5, buf[0], 1e-4)

	_, err = in.ReadChunk(buf)
	assert.Equal(t, io.EOF, err)
}

func TestCreateOutput_WAVNeedsRate(t *testing.T) {
	_, err := CreateOutput[float64](filepath.Join(t.TempDir(), "x.wav"), OutputOptions{BitDepth: 16})
	require.ErrorIs(t, err, ErrUsage)
}

func TestOpenInput_Errors(t *testing.T) {
	_, err := OpenInput[float64](filepath.Join(t.TempDir(), "missing.txt"), FormatAuto)
	require.ErrorIs(t, err, os.ErrNotExist)

	bogus := writeFile(t, "bogus.wav", "not a wav file at all")
	_, err = OpenInput[float64](bogus, FormatAuto)
	require.ErrorIs(t, err, sampleio.ErrUnsupportedFormat)
}

func TestOpenIQInput(t *testing.T) {
	path := writeFile(t, "iq.csv", "1,0\n0,1\n")
	in, err := OpenIQInput[float64](path, FormatAuto)
	require.NoError(t, err)
	defer func() { _ = in.Close() }()

	re := make([]float64, 4)
	im := make([]float64, 4)
	n, err := in.ReadIQ(re, im)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	_, err = OpenIQInput[float64]("iq.wav", FormatAuto)
	require.ErrorIs(t, err, sampleio.ErrUnsupportedFormat)
}

func TestLoadTaps(t *testing.T) {
	path := writeFile(t, "taps.txt", "0.5\n0.25\n")

	t.Run("complete", func(t *testing.T) {
		logger, hook := test.NewNullLogger()
		taps, err := LoadTaps[float32](logrus.NewEntry(logger), path, 2, false)
		require.NoError(t, err)
		assert.Equal(t, []float32{0.5, 0.25}, taps)
		assert.Empty(t, hook.AllEntries())
	})

	t.Run("partial_warns_and_pads", func(t *testing.T) {
		logger, hook := test.NewNullLogger()
		taps, err := LoadTaps[float64](logrus.NewEntry(logger), path, 4, false)
		require.NoError(t, err)
		assert.Equal(t, []float64{0.5, 0.25, 0, 0}, taps)

		require.Len(t, hook.AllEntries(), 1)
		e := hook.LastEntry()
		assert.Equal(t, logrus.WarnLevel, e.Level)
		assert.Equal(t, 4, e.Data["requested"])
		assert.Equal(t, 2, e.Data["loaded"])
	})

	t.Run("partial_strict_fails", func(t *testing.T) {
		logger, _ := test.NewNullLogger()
		_, err := LoadTaps[float64](logrus.NewEntry(logger), path, 4, true)
		require.ErrorIs(t, err, coeffs.ErrPartialLoad)
	})

	t.Run("empty_file", func(t *testing.T) {
		logger, _ := test.NewNullLogger()
		_, err := LoadTaps[float64](logrus.NewEntry(logger), writeFile(t, "empty.txt", ""), 0, false)
		require.ErrorIs(t, err, coeffs.ErrPartialLoad)
	})
}

func TestLoadSections(t *testing.T) {
	logger, _ := test.NewNullLogger()
	log := logrus.NewEntry(logger)
	path := writeFile(t, "sos.csv", "0.5,1,2,1,1,-0.2,0.1\n")

	s, err := LoadSections(log, path, 1)
	require.NoError(t, err)
	require.Len(t, s, 1)
	assert.Equal(t, 0.5, s[0].B0)

	_, err = LoadSections(log, path, 2)
	require.ErrorIs(t, err, coeffs.ErrPartialLoad, "a short biquad file is fatal")
}

func TestConvert(t *testing.T) {
	assert.Equal(t, []float32{1, 0.5}, Convert[float32]([]float64{1, 0.5}))
	assert.Empty(t, Convert[float64](nil))
}
