// Package logging builds the leveled loggers used across butterfly.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/phuslu/log"
	"golang.org/x/term"
)

// Levels accepted by New, lowest first.
var Levels = []string{"trace", "debug", "info", "warn", "error"}

// New returns a logger that writes human readable lines to w. Unknown levels
// fall back to info.
func New(w io.Writer, level string) *log.Logger {
	return &log.Logger{
		Level: parseLevel(level),
		Writer: &log.ConsoleWriter{
			Writer:      w,
			ColorOutput: isTerminal(w),
			QuoteString: true,
		},
	}
}

// NewJSON returns a logger that writes one JSON object per line to w.
func NewJSON(w io.Writer, level string) *log.Logger {
	return &log.Logger{
		Level:  parseLevel(level),
		Writer: &log.IOWriter{Writer: w},
	}
}

// NewFormat returns a JSON logger for format "json" and a console logger
// otherwise.
func NewFormat(w io.Writer, level, format string) *log.Logger {
	if strings.EqualFold(format, "json") {
		return NewJSON(w, level)
	}

	return New(w, level)
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return NewJSON(io.Discard, "error")
}

func parseLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return log.TraceLevel
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return term.IsTerminal(int(f.Fd()))
}
