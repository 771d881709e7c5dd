package pipefleet

import (
	"github.com/giantswarm/pipefleet/internal/channel"
	"github.com/giantswarm/pipefleet/internal/core"
	"github.com/giantswarm/pipefleet/internal/process"
	"github.com/giantswarm/pipefleet/internal/worker"
)

// Sentinel errors for error inspection with errors.Is.
// These are immutable constants safe for use in wrapped error chain comparison.
const (
	// ErrResource is returned when a pipe cannot be created, typically because
	// the process is out of file descriptors. The OS error stays in the chain.
	ErrResource = channel.ErrResource

	// ErrSpawn is returned when the OS refuses to create a worker process.
	ErrSpawn = process.ErrSpawn

	// ErrTransfer is what a worker fails with when a record cannot be written
	// or is read only in part. It never reaches the coordinator as an error;
	// the worker exits with a non-zero status instead.
	ErrTransfer = channel.ErrTransfer

	// ErrInvalidConfig is returned when a run is rejected before anything is
	// created, for example when too many pairs are requested.
	ErrInvalidConfig = core.ErrInvalidConfig

	// ErrNotWorker is reported by a process whose worker environment is
	// present but malformed.
	ErrNotWorker = worker.ErrNotWorker

	// ErrWorkerFailed matches every entry of Report.Err.
	ErrWorkerFailed = core.ErrWorkerFailed
)
