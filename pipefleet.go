package pipefleet

import (
	"context"
	"fmt"
	"os"

	"github.com/giantswarm/pipefleet/internal/core"
	"github.com/giantswarm/pipefleet/internal/process"
	"github.com/giantswarm/pipefleet/internal/runlock"
	"github.com/giantswarm/pipefleet/internal/worker"
)

// Report lists how every spawned worker terminated, in spawn order.
type Report = core.Report

// Result is one entry of a Report.
type Result = core.Result

// Worker describes one spawned worker process.
type Worker = core.Worker

// Outcome is how a worker process terminated.
type Outcome = process.Outcome

// Role selects what a worker process does with its pipe end.
type Role = worker.Role

// Worker roles.
const (
	RoleProducer = worker.RoleProducer
	RoleConsumer = worker.RoleConsumer
)

// ServeWorker turns the current process into a worker if it was started as
// one by a fleet, and never returns in that case. Otherwise it returns
// immediately. Call it first thing in main and in TestMain of any package
// that runs fleets.
func ServeWorker() {
	worker.ServeIfRequested()
}

// RunBasic runs a single pair: a producer sending 1 through 5 and a consumer
// reporting as pair 0.
//
// The returned Report covers every spawned worker. The error reports pipe or
// process creation failures only; use Report.Err to check the workers.
func RunBasic(opts ...Option) (*Report, error) {
	cfg := applyOptions(opts)
	return run(cfg, core.BasicPlan())
}

// RunPairs runs n pairs. Pair i sends i*K+1 through i*K+K, where K is the
// number of records per pair, and its consumer reports as pair i+1.
//
// n must be between 1 and the maximum number of pairs (see WithMaxPairs);
// otherwise RunPairs returns an error matching ErrInvalidConfig without
// creating anything.
func RunPairs(n int, opts ...Option) (*Report, error) {
	cfg := applyOptions(opts)
	if n < 1 || n > cfg.MaxPairs {
		return nil, fmt.Errorf("%w: number of pairs must be between 1 and %d, got %d", ErrInvalidConfig, cfg.MaxPairs, n)
	}
	return run(cfg, core.MultiPairPlan(n, cfg.RecordsPerPair))
}

func applyOptions(opts []Option) runConfig {
	cfg := defaultRunConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// run resolves the remaining defaults of cfg and runs plan on a new Fleet.
func run(cfg runConfig, plan core.Plan) (*Report, error) {
	if cfg.Executable == "" {
		exe, err := os.Executable()
		if err != nil {
			return nil, fmt.Errorf("resolve worker executable: %w", err)
		}
		cfg.Executable = exe
	}
	// Options reject every value that is invalid on its own; combinations
	// (such as a record range overflowing int32) are caught here.
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	log := core.Logger()
	if cfg.LockFile != "" {
		lock, err := runlock.Acquire(context.Background(), cfg.LockFile, log)
		if err != nil {
			return nil, err
		}
		defer lock.Release()
	}

	fleet := core.NewFleet(core.NewFleetParams{Config: cfg.FleetConfig, Logger: log})
	return fleet.Run(plan)
}
