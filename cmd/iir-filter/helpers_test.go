package main

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-streamdsp/internal/cliutil"
	"github.com/tphakala/go-streamdsp/internal/coeffs"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func newJob(dir string, chunk int) cliutil.Job {
	logger, _ := test.NewNullLogger()
	return cliutil.Job{
		Input:  filepath.Join(dir, "in.txt"),
		Output: filepath.Join(dir, "out.txt"),
		Common: &cliutil.Common{ChunkSize: chunk, Format: "auto", Precision: -1, BitDepth: 16},
		Logger: logger.WithField("tool", toolName),
	}
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

func TestOptions_Validate(t *testing.T) {
	require.ErrorIs(t, options{}.validate(), cliutil.ErrUsage)
	require.ErrorIs(t, options{coeffPath: "c.csv", numSections: -2}.validate(), cliutil.ErrUsage)
	require.NoError(t, options{coeffPath: "c.csv", numSections: 1}.validate())
}

func TestFilterFile_OnePole(t *testing.T) {
	dir := t.TempDir()
	// y[n] = 0.5·x[n] + 0.5·y[n-1]
	coeffPath := writeFile(t, dir, "sos.csv", "0.5, 1, 0, 0, 1, -0.5, 0\n")
	writeFile(t, dir, "in.txt", "1\n0\n0\n0\n")

	for _, chunk := range []int{1, 3, 16} {
		job := newJob(dir, chunk)
		_, err := filterFile[float64](job, options{coeffPath: coeffPath, numSections: 1})
		require.NoError(t, err)
		assert.InDeltaSlice(t, []float64{0.5, 0.25, 0.125, 0.0625}, readFloats(t, job.Output), 1e-15)
	}
}

func TestFilterFile_TwoSectionsMatchProduct(t *testing.T) {
	dir := t.TempDir()
	coeffPath := writeFile(t, dir, "sos.csv",
		"1, 1, 0, 0, 1, -0.5, 0\n"+
			"2, 1, 0, 0, 1, 0, 0\n")
	writeFile(t, dir, "in.txt", "1\n0\n0\n")

	job := newJob(dir, 2)
	_, err := filterFile[float32](job, options{coeffPath: coeffPath})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{2, 1, 0.5}, readFloats(t, job.Output), 1e-6)
}

func TestFilterFile_PartialLoadIsFatal(t *testing.T) {
	dir := t.TempDir()
	coeffPath := writeFile(t, dir, "sos.csv", "1, 1, 0, 0, 1, 0, 0\n")
	writeFile(t, dir, "in.txt", "1\n")

	job := newJob(dir, 4)
	_, err := filterFile[float64](job, options{coeffPath: coeffPath, numSections: 3})
	require.ErrorIs(t, err, coeffs.ErrPartialLoad)

	_, statErr := os.Stat(job.Output)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	coeffPath := writeFile(t, dir, "sos.csv", "# gain b0 b1 b2 a0 a1 a2\n1, 0.5, 0.5, 0, 1, 0, 0\n")
	in := writeFile(t, dir, "in.txt", "2\n4\n6\n")
	out := filepath.Join(dir, "out.txt")

	require.NoError(t, run([]string{"-coeffs", coeffPath, "-log-level", "error", "-chunk", "2", in, out}))
	assert.InDeltaSlice(t, []float64{1, 3, 5}, readFloats(t, out), 1e-12)
}
