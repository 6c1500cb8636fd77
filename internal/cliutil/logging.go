package cliutil

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"golang.org/x/term"
)

// NewLogger returns a text logger on out at the named level. Colors are
// enabled only when out is a terminal.
func NewLogger(level string, out *os.File) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUsage, err)
	}

	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetLevel(lvl)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableColors: !term.IsTerminal(int(out.Fd())),
		FullTimestamp: true,
	})
	return logger, nil
}
