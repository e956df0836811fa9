// Package logger provides logging utilities for the cleaning tools.
package logger

import (
	"io"
	"log/slog"
	"strings"

	charmlog "github.com/charmbracelet/log"
)

// Logger provides structured logging functionality.
type Logger struct {
	internal *slog.Logger
	handler  *charmlog.Logger
}

// ParseLevel maps a level name to a charm log level. Unknown names give info.
func ParseLevel(level string) charmlog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return charmlog.DebugLevel
	case "info":
		return charmlog.InfoLevel
	case "warn":
		return charmlog.WarnLevel
	case "error":
		return charmlog.ErrorLevel
	default:
		return charmlog.InfoLevel
	}
}

// New creates a logger writing to w. jsonFormat switches from text to JSON lines.
func New(w io.Writer, level string, jsonFormat bool) *Logger {
	handler := charmlog.NewWithOptions(w, charmlog.Options{
		Level:           ParseLevel(level),
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
	})

	if jsonFormat {
		handler.SetFormatter(charmlog.JSONFormatter)
	}

	return &Logger{
		internal: slog.New(handler),
		handler:  handler,
	}
}

// SetLevel changes the minimum level. Loggers already derived with With keep theirs.
func (l *Logger) SetLevel(level string) {
	l.handler.SetLevel(ParseLevel(level))
}

// Info logs an info level message.
func (l *Logger) Info(msg string, args ...any) {
	l.internal.Info(msg, args...)
}

// Error logs an error level message.
func (l *Logger) Error(msg string, args ...any) {
	l.internal.Error(msg, args...)
}

// Debug logs a debug level message.
func (l *Logger) Debug(msg string, args ...any) {
	l.internal.Debug(msg, args...)
}

// Warn logs a warning level message.
func (l *Logger) Warn(msg string, args ...any) {
	l.internal.Warn(msg, args...)
}

// With creates a child logger with the given attributes.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{
		internal: l.internal.With(args...),
		handler:  l.handler,
	}
}
