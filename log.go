package pipefleet

import (
	"log/slog"

	"github.com/giantswarm/pipefleet/internal/core"
)

// SetLogger replaces the package-level logger the coordinator side of
// pipefleet logs through. The provided logger should already have any
// desired attributes; pipefleet will not add additional attributes.
//
// If l is nil, the logger resets to the default: slog.Default() with a
// "component" attribute, re-derived on the next use and then cached. Call
// SetLogger(nil) after slog.SetDefault() to pick up changes.
//
// Worker processes do not use this logger. They log as text to their stderr
// (see WithWorkerOutput) at the level set by WithLogLevel.
//
// SetLogger is safe to call concurrently with running fleets, but a fleet
// that is already running may keep the previous logger.
func SetLogger(l *slog.Logger) {
	core.SetLogger(l)
}
