package cliutil

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format is a sample file format.
type Format int

const (
	FormatAuto Format = iota
	FormatText
	FormatWAV
)

func (f Format) String() string {
	switch f {
	case FormatText:
		return "text"
	case FormatWAV:
		return "wav"
	default:
		return "auto"
	}
}

// ParseFormat maps a -format value to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return FormatAuto, nil
	case "text", "csv", "txt":
		return FormatText, nil
	case "wav":
		return FormatWAV, nil
	default:
		return FormatAuto, fmt.Errorf("%w: unknown format %q", ErrUsage, s)
	}
}

// Resolve returns f unless it is FormatAuto, in which case the path's
// extension decides: .wav is WAV, anything else text.
func (f Format) Resolve(path string) Format {
	if f != FormatAuto {
		return f
	}
	if strings.EqualFold(filepath.Ext(path), wavExtension) {
		return FormatWAV
	}
	return FormatText
}
