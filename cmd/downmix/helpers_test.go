package main

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-streamdsp"
	"github.com/tphakala/go-streamdsp/internal/cliutil"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func writeSamples(t *testing.T, dir, name string, samples []float64) string {
	t.Helper()
	var b strings.Builder
	for _, v := range samples {
		b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
		b.WriteByte('\n')
	}
	return writeFile(t, dir, name, b.String())
}

func readFloats(t *testing.T, path string) []float64 {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var out []float64
	for _, f := range strings.Fields(string(data)) {
		v, err := strconv.ParseFloat(f, 64)
		require.NoError(t, err)
		out = append(out, v)
	}
	return out
}

func newJob(dir string, chunk, rate, factor int) cliutil.Job {
	logger, _ := test.NewNullLogger()
	return cliutil.Job{
		Input:      filepath.Join(dir, "in.txt"),
		Output:     filepath.Join(dir, "out.txt"),
		Common:     &cliutil.Common{ChunkSize: chunk, Format: "auto", Precision: -1, BitDepth: 16},
		Logger:     logger.WithField("tool", toolName),
		SampleRate: rate,
		Decimation: factor,
	}
}

func TestOptions_Validate(t *testing.T) {
	require.ErrorIs(t, options{factor: 1}.validate(), cliutil.ErrUsage)
	require.ErrorIs(t, options{coeffPath: "c", factor: 0}.validate(), cliutil.ErrUsage)
	require.ErrorIs(t, options{coeffPath: "c", factor: 2, numTaps: -1}.validate(), cliutil.ErrUsage)
	require.NoError(t, options{coeffPath: "c", factor: 2}.validate())
}

func TestDownmixFile_MatchesLibrary(t *testing.T) {
	dir := t.TempDir()
	taps := []float64{0.25, 0.25, 0.25, 0.25}
	coeffPath := writeSamples(t, dir, "taps.txt", taps)

	input := make([]float64, 37)
	for i := range input {
		input[i] = math.Sin(0.3*float64(i)) + 0.1*float64(i%5)
	}
	writeSamples(t, dir, "in.txt", input)

	ref, err := streamdsp.NewDownmixer[float64](streamdsp.DownmixConfig{
		Taps: taps, Factor: 3, MixFrequency: 1000, SampleRate: 8000, ChunkSize: len(input),
	})
	require.NoError(t, err)
	want := make([]float64, ref.MaxOutputLen(len(input)))
	want = want[:ref.Process(want, input)]

	for _, chunk := range []int{1, 5, 64} {
		t.Run(fmt.Sprintf("chunk_%d", chunk), func(t *testing.T) {
			job := newJob(dir, chunk, 8000, 3)
			stats, err := downmixFile[float64](job, options{coeffPath: coeffPath, factor: 3, mixHz: 1000})
			require.NoError(t, err)
			assert.Equal(t, int64(len(want)), stats.SamplesOut)
			assert.InDeltaSlice(t, want, readFloats(t, job.Output), 1e-12)
		})
	}
}

func TestDownmixFile_DecimatesCount(t *testing.T) {
	dir := t.TempDir()
	coeffPath := writeFile(t, dir, "taps.txt", "1\n")
	writeSamples(t, dir, "in.txt", make([]float64, 10))

	job := newJob(dir, 4, 100, 4)
	stats, err := downmixFile[float32](job, options{coeffPath: coeffPath, factor: 4})
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.SamplesOut)
}

func TestDownmixFile_NeedsRate(t *testing.T) {
	dir := t.TempDir()
	coeffPath := writeFile(t, dir, "taps.txt", "1\n")
	writeFile(t, dir, "in.txt", "1\n")

	job := newJob(dir, 4, 0, 1)
	_, err := downmixFile[float64](job, options{coeffPath: coeffPath, factor: 1})
	require.ErrorIs(t, err, cliutil.ErrUsage)
}

func TestDownmixFile_MixAboveRate(t *testing.T) {
	dir := t.TempDir()
	coeffPath := writeFile(t, dir, "taps.txt", "1\n")
	writeFile(t, dir, "in.txt", "1\n")

	job := newJob(dir, 4, 1000, 1)
	_, err := downmixFile[float64](job, options{coeffPath: coeffPath, factor: 1, mixHz: 2000})
	require.ErrorIs(t, err, streamdsp.ErrInvalidConfig)
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	coeffPath := writeFile(t, dir, "taps.txt", "1\n")
	in := writeFile(t, dir, "in.txt", "1\n2\n3\n4\n5\n")
	out := filepath.Join(dir, "out.txt")

	// mix at 0 Hz: the oscillator is a constant 2, scaled by M = 2.
	require.NoError(t, run([]string{
		"-coeffs", coeffPath, "-factor", "2", "-rate", "100", "-log-level", "error", in, out,
	}))
	assert.InDeltaSlice(t, []float64{4, 12, 20}, readFloats(t, out), 1e-12)
}
