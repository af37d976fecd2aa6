package logging

import (
	"context"
	"log/slog"
	"sync"
)

var (
	defaultMu     sync.RWMutex
	defaultLogger = &Logger{}
)

// Init creates a Logger with New and installs it as the package default and
// as slog's default logger. The caller should Close it on shutdown.
func Init(cfg Config, opts ...Option) (*Logger, error) {
	l, err := New(cfg, opts...)
	if err != nil {
		return nil, err
	}
	SetDefault(l)
	return l, nil
}

// SetDefault makes l the package default and routes slog.Default through it.
// A nil l is ignored.
func SetDefault(l *Logger) {
	if l == nil {
		return
	}
	defaultMu.Lock()
	defaultLogger = l
	defaultMu.Unlock()

	slog.SetDefault(l.Slog())
}

// Default returns the package default Logger. Before Init it is an
// uninitialized Logger that prints to the console and reports
// ErrNotInitialized on stderr.
func Default() *Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// Debug logs a debug message using the default logger.
func Debug(message string) {
	Default().Debug(message)
}

// Info logs an informational message using the default logger.
func Info(message string) {
	Default().Info(message)
}

// Warning logs a warning using the default logger.
func Warning(message string, err error) {
	Default().Warning(message, err)
}

// Exception logs an error with its stack using the default logger.
func Exception(message string, err error) {
	Default().Exception(message, err)
}

// Critical logs using the default logger and exits with status 1.
func Critical(message string, err error) {
	Default().Critical(message, err)
}

type ctxKey struct{}

// NewContext returns a copy of ctx carrying l.
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext returns the Logger stored in ctx, or Default when there is none.
func FromContext(ctx context.Context) *Logger {
	if ctx != nil {
		if l, ok := ctx.Value(ctxKey{}).(*Logger); ok && l != nil {
			return l
		}
	}
	return Default()
}
