// Package logger provides a configured zerolog logger.
package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// New returns a logger writing JSON lines to stderr. Unknown levels fall back
// to warn so that command output on stdout stays readable.
func New(serviceName string, level string) zerolog.Logger {
	return NewWithWriter(os.Stderr, serviceName, level)
}

func NewWithWriter(w io.Writer, serviceName string, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.WarnLevel
	}
	return zerolog.New(w).Level(lvl).With().
		Str("service", serviceName).
		Timestamp().
		Logger()
}
