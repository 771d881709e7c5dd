package core

import (
	"log/slog"
	"sync/atomic"
)

// logger is the package-level logger used by pipefleet, stored as an atomic
// pointer to allow safe concurrent reads and writes. A nil value means no
// custom logger has been set.
var logger atomic.Pointer[slog.Logger]

// defaultLogger caches slog.Default() with the component attribute so it is
// not re-created on every Logger() call. SetLogger(nil) clears it, letting the
// next call pick up a changed slog.Default().
var defaultLogger atomic.Pointer[slog.Logger]

// Logger returns the current package-level logger. It is safe to call from
// multiple goroutines.
func Logger() *slog.Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	if l := defaultLogger.Load(); l != nil {
		return l
	}
	l := newDefaultLogger()
	if defaultLogger.CompareAndSwap(nil, l) {
		return l
	}
	if l2 := defaultLogger.Load(); l2 != nil {
		return l2
	}
	return l
}

// newDefaultLogger creates the default logger with the pipefleet component attribute.
func newDefaultLogger() *slog.Logger {
	return slog.Default().With("component", "pipefleet")
}

// SetLogger replaces the package-level logger used by pipefleet.
// If l is nil, the logger resets to slog.Default() with the component
// attribute, re-derived on the next Logger() call.
func SetLogger(l *slog.Logger) {
	logger.Store(l)
	defaultLogger.Store(nil)
}
