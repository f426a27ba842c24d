package logger

import (
	"context"
	"io"
	"sort"
	"strings"

	cblog "github.com/charmbracelet/log"

	logginginfra "github.com/alonzeltser/fabricsim/internal/infrastructure/logging"
)

// Options describes logger configuration supplied at creation time.
type Options struct {
	Level         string
	HumanReadable bool
	Writer        io.Writer
	Layer         string
	Component     string
}

// Logger wraps the charmbracelet/log adapter with the simpler call-by-value
// API the simulator components use: Info/Debug/Warn/Error plus WithFields.
type Logger struct {
	base logginginfra.Logger
}

// New creates a configured Logger instance based on Options.
func New(opts Options) (*Logger, error) {
	layer := opts.Layer
	if layer == "" {
		layer = "core"
	}
	component := opts.Component
	if component == "" {
		component = "fabricsim"
	}

	infraOpts := logginginfra.Options{
		Writer:    opts.Writer,
		Level:     opts.Level,
		Layer:     layer,
		Component: component,
	}

	if !opts.HumanReadable {
		infraOpts.Formatter = cblog.JSONFormatter
	}

	base, err := logginginfra.New(infraOpts)
	if err != nil {
		return nil, err
	}

	return &Logger{base: base}, nil
}

// WrapBase adapts an already-constructed infrastructure logger (for
// instance a BufferedLogger backing --trace mode) to this package's
// simpler call-by-value API.
func WrapBase(base logginginfra.Logger) *Logger {
	return &Logger{base: base}
}

// WithFields returns a derived logger that always writes the supplied fields.
func (l *Logger) WithFields(fields map[string]any) *Logger {
	if l == nil || l.base == nil || len(fields) == 0 {
		return l
	}

	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	args := make([]interface{}, 0, len(fields)*2)
	for _, key := range keys {
		args = append(args, key, fields[key])
	}

	return &Logger{base: l.base.With(args...)}
}

// Info writes an informational log entry.
func (l *Logger) Info(msg string, fields ...any) {
	l.log(l.base.Info, msg, fields...)
}

// Debug writes a debug-level log entry if enabled.
func (l *Logger) Debug(msg string, fields ...any) {
	l.log(l.base.Debug, msg, fields...)
}

// Warn writes a warning level log entry.
func (l *Logger) Warn(msg string, fields ...any) {
	l.log(l.base.Warn, msg, fields...)
}

// Error writes an error log entry including the supplied error context.
func (l *Logger) Error(err error, msg string, fields ...any) {
	if l == nil || l.base == nil {
		return
	}
	if err != nil {
		fields = append(fields, "error", err)
	}
	l.base.Error(context.Background(), msg, fields...)
}

func (l *Logger) log(fn func(context.Context, string, ...interface{}), msg string, fields ...any) {
	if l == nil || l.base == nil || fn == nil {
		return
	}
	fn(context.Background(), strings.TrimSpace(msg), fields...)
}
