// Package logging adapts go-logger to the small Logger contract used across
// the converter.
package logging

import "maps"

// Logger is the structured logger used by the converter and the CLI.
// Arguments after the message are key/value pairs.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	WithFields(fields map[string]any) Logger
}

// WithFields returns logger with a copy of fields attached. A nil logger or
// empty fields return logger unchanged.
func WithFields(logger Logger, fields map[string]any) Logger {
	if logger == nil || len(fields) == 0 {
		return logger
	}
	copied := make(map[string]any, len(fields))
	maps.Copy(copied, fields)
	return logger.WithFields(copied)
}

// Nop returns a logger that drops every entry.
func Nop() Logger {
	return nopLogger{}
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

func (n nopLogger) WithFields(map[string]any) Logger { return n }
