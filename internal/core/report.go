package core

import (
	"fmt"

	utilerrors "k8s.io/apimachinery/pkg/util/errors"

	"github.com/giantswarm/pipefleet/internal/process"
	"github.com/giantswarm/pipefleet/internal/sentinel"
)

// ErrWorkerFailed matches every entry of Report.Err: a worker that did not
// exit with status 0.
const ErrWorkerFailed = sentinel.Error("worker did not exit cleanly")

// Result pairs a worker with how it terminated.
type Result struct {
	Worker  Worker
	Outcome process.Outcome
}

// Report lists the outcome of every reaped worker, in spawn order.
type Report struct {
	Results []Result
}

// Succeeded reports whether every worker exited with status 0.
func (r *Report) Succeeded() bool {
	return r.Err() == nil
}

// Err aggregates one error per worker that did not exit with status 0, or
// returns nil if all did. Each entry matches ErrWorkerFailed.
func (r *Report) Err() error {
	if r == nil {
		return nil
	}
	var errs []error
	for _, res := range r.Results {
		if !res.Outcome.Success() {
			errs = append(errs, fmt.Errorf("%s: %w: %s", &res.Worker, ErrWorkerFailed, res.Outcome))
		}
	}
	return utilerrors.NewAggregate(errs)
}
