// Package logging builds the logrus logger shared by every command.
package logging

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/Miitto/gpx-separator/pkg/gpx"
)

// DefaultLevel is used when no level is configured.
const DefaultLevel = "warn"

// Levels lists the level names accepted by ParseLevel, most verbose first.
func Levels() []string {
	return []string{"trace", "debug", "info", "warn", "error", "fatal", "panic"}
}

// ParseLevel resolves a level name; empty means DefaultLevel.
func ParseLevel(level string) (logrus.Level, error) {
	if level == "" {
		level = DefaultLevel
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return lvl, nil
}

// New creates a text logger writing to w. Verbose forces the debug level.
// The logger is also installed for the core package.
func New(level string, verbose bool, w io.Writer) (*logrus.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	if verbose {
		lvl = logrus.DebugLevel
	}

	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetLevel(lvl)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})

	gpx.SetLogger(logger)
	return logger, nil
}
