// Package logger builds the structured logger shared by the pipeline components.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// New constructs a text logger writing to stderr, so stdout stays reserved for the run summary.
// level is one of debug, info, warn, error; anything else means info.
func New(service, level string) *slog.Logger {
	return NewWithWriter(os.Stderr, service, level)
}

// NewWithWriter is New with an explicit destination
func NewWithWriter(w io.Writer, service, level string) *slog.Logger {
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: ParseLevel(level)})
	return slog.New(h).With("service", service)
}

// Discard returns a logger that drops every record
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ParseLevel maps a level name to a slog.Level
func ParseLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
