package pipefleet

import (
	"io"
	"log/slog"
	"time"
)

// ConfigSnapshot holds a copy of runConfig fields for test assertions.
// Exported only via export_test.go so that the _test package can verify
// option closures actually mutate the config without accessing internals.
type ConfigSnapshot struct {
	Executable     string
	Args           []string
	MaxPairs       int
	RecordsPerPair int
	ProducerDelay  time.Duration
	DelayJitter    float64
	WorkerLogLevel slog.Level
	Stdout         io.Writer
	Stderr         io.Writer
	LockFile       string
}

// ApplyOptionsForTesting creates a default runConfig, applies the given
// options, and returns a ConfigSnapshot of the result.
func ApplyOptionsForTesting(opts ...Option) ConfigSnapshot {
	cfg := applyOptions(opts)

	return ConfigSnapshot{
		Executable:     cfg.Executable,
		Args:           cfg.Args,
		MaxPairs:       cfg.MaxPairs,
		RecordsPerPair: cfg.RecordsPerPair,
		ProducerDelay:  cfg.ProducerDelay,
		DelayJitter:    cfg.DelayJitter,
		WorkerLogLevel: cfg.WorkerLogLevel,
		Stdout:         cfg.Stdout,
		Stderr:         cfg.Stderr,
		LockFile:       cfg.LockFile,
	}
}
