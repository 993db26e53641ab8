package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New returns a console logger on stderr. debug forces the debug level.
func New(level string, debug bool) zerolog.Logger {
	return NewWithWriter(os.Stderr, level, debug)
}

func NewWithWriter(w io.Writer, level string, debug bool) zerolog.Logger {
	lvl := parseLevel(level)
	if debug {
		lvl = zerolog.DebugLevel
	}
	output := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.TimeOnly,
	}
	return zerolog.New(output).
		With().
		Timestamp().
		Logger().
		Level(lvl)
}

func parseLevel(raw string) zerolog.Level {
	if raw == "" {
		return zerolog.WarnLevel
	}
	level, err := zerolog.ParseLevel(strings.ToLower(raw))
	if err != nil {
		return zerolog.WarnLevel
	}
	return level
}
