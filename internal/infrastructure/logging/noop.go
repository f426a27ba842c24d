package logging

import "context"

// NoOpLogger discards all log entries.
type NoOpLogger struct{}

// Debug implements Logger.
func (n *NoOpLogger) Debug(context.Context, string, ...interface{}) {}

// Info implements Logger.
func (n *NoOpLogger) Info(context.Context, string, ...interface{}) {}

// Warn implements Logger.
func (n *NoOpLogger) Warn(context.Context, string, ...interface{}) {}

// Error implements Logger.
func (n *NoOpLogger) Error(context.Context, string, ...interface{}) {}

// With implements Logger.
func (n *NoOpLogger) With(...interface{}) Logger { return n }

// NewNoOpLogger returns a Logger that discards all log entries.
func NewNoOpLogger() Logger {
	return &NoOpLogger{}
}
