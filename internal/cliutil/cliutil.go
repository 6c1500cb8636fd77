// Package cliutil holds the plumbing shared by the filter tools: common
// flags, logger setup, picking a sample format from a path, opening sources
// and sinks, and the policy for short coefficient files.
package cliutil

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/tphakala/go-streamdsp/internal/driver"
)

// ErrUsage is returned for bad command lines.
var ErrUsage = errors.New("usage")

// Common is the flag set every streaming tool accepts.
type Common struct {
	ChunkSize int
	LogLevel  string
	Format    string
	Precision int
	BitDepth  int
	Fast      bool
}

// RegisterCommon adds the shared flags to fs.
func RegisterCommon(fs *flag.FlagSet) *Common {
	c := &Common{}
	fs.IntVar(&c.ChunkSize, "chunk", driver.DefaultChunkSize, "Samples per processing chunk")
	fs.StringVar(&c.LogLevel, "log-level", defaultLogLevel, "Log level: debug, info, warn, error")
	fs.StringVar(&c.Format, "format", "auto", "Sample format: auto, text, wav (auto picks by extension)")
	fs.IntVar(&c.Precision, "precision", -1, "Significant digits for text output (-1 = shortest exact)")
	fs.IntVar(&c.BitDepth, "bits", defaultBitDepth, "Bit depth for WAV output: 16, 24, 32")
	fs.BoolVar(&c.Fast, "fast", false, "Process in float32 instead of float64")
	return c
}

// Validate checks the shared flag values.
func (c *Common) Validate() error {
	if c.ChunkSize < 1 {
		return fmt.Errorf("%w: -chunk must be positive, got %d", ErrUsage, c.ChunkSize)
	}
	if _, err := ParseFormat(c.Format); err != nil {
		return err
	}
	return nil
}

// Positional returns exactly n positional arguments or a usage error.
func Positional(fs *flag.FlagSet, n int, names string) ([]string, error) {
	if fs.NArg() != n {
		return nil, fmt.Errorf("%w: expected %d arguments (%s), got %d", ErrUsage, n, names, fs.NArg())
	}
	return fs.Args(), nil
}

// Parse parses args into fs, validates the shared flags and returns a logger
// tagged with the tool name.
func Parse(fs *flag.FlagSet, c *Common, args []string) (*logrus.Entry, error) {
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	logger, err := NewLogger(c.LogLevel, os.Stderr)
	if err != nil {
		return nil, err
	}
	return logger.WithField("tool", fs.Name()), nil
}

// Report prints the one-line summary every tool ends with.
func Report(w io.Writer, stats driver.Stats, output string) {
	fmt.Fprintf(w, "Processed %d chunks (%d -> %d samples), wrote %s\n",
		stats.Chunks, stats.SamplesIn, stats.SamplesOut, output)
}
