package core

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// DefaultLogger implements Logger by writing to stdout
type DefaultLogger struct{}

// Printf writes the formatted message to stdout
func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() Logger {
	return &DefaultLogger{}
}

// SlogLogger forwards Printf-style messages to a slog.Logger at a fixed level
type SlogLogger struct {
	logger *slog.Logger
	level  slog.Level
}

// NewSlogLogger wraps l so it can be handed to loaders and the renderer.
// A nil l discards everything.
func NewSlogLogger(l *slog.Logger, level slog.Level) Logger {
	if l == nil {
		return NopLogger()
	}
	return &SlogLogger{logger: l, level: level}
}

// Printf logs the formatted message with trailing newlines trimmed
func (sl *SlogLogger) Printf(format string, args ...interface{}) {
	msg := strings.TrimRight(fmt.Sprintf(format, args...), "\n")
	sl.logger.Log(context.Background(), sl.level, msg)
}

type nopLogger struct{}

func (nopLogger) Printf(string, ...interface{}) {}

// NopLogger returns a logger that discards all output
func NopLogger() Logger { return nopLogger{} }
