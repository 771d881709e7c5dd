package core

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/giantswarm/pipefleet/internal/channel"
	"github.com/giantswarm/pipefleet/internal/process"
	"github.com/giantswarm/pipefleet/internal/worker"
)

// OutputFunc chooses the stdout and stderr a worker inherits.
type OutputFunc func(env worker.Env) (stdout, stderr io.Writer)

// NewFleetParams holds the parameters for NewFleet.
type NewFleetParams struct {
	Config FleetConfig

	// Logger (optional, defaults to Logger())
	Logger *slog.Logger

	// Pipe, Start and Output replace how channels are created, how worker
	// processes are started and where their output goes. Nil uses os.Pipe,
	// (*exec.Cmd).Start and Config.Stdout/Config.Stderr.
	Pipe   channel.PipeFunc
	Start  process.Starter
	Output OutputFunc

	// Environ is the base environment handed to workers. Nil uses os.Environ.
	Environ func() []string
}

// Fleet spawns producer/consumer pairs and reaps them.
//
// A Fleet holds no per-run state and is safe for concurrent use: every Run
// owns the channels and workers it creates.
type Fleet struct {
	cfg     FleetConfig
	log     *slog.Logger
	pipe    channel.PipeFunc
	start   process.Starter
	output  OutputFunc
	environ func() []string
}

// NewFleet creates a Fleet. It performs no I/O.
//
// Panics if p.Config.Validate() reports any errors; invalid configuration is
// a programmer error, similar to regexp.MustCompile.
func NewFleet(p NewFleetParams) *Fleet {
	if err := p.Config.Validate(); err != nil {
		panic(fmt.Sprintf("pipefleet: invalid fleet config: %v", err))
	}

	f := &Fleet{
		cfg:     p.Config,
		log:     p.Logger,
		pipe:    p.Pipe,
		start:   p.Start,
		output:  p.Output,
		environ: p.Environ,
	}
	if f.log == nil {
		f.log = Logger()
	}
	if f.output == nil {
		stdout, stderr := p.Config.Stdout, p.Config.Stderr
		if stdout == nil {
			stdout = os.Stdout
		}
		if stderr == nil {
			stderr = os.Stderr
		}
		f.output = func(worker.Env) (io.Writer, io.Writer) { return stdout, stderr }
	}
	if f.environ == nil {
		f.environ = os.Environ
	}
	return f
}

// Run spawns the pairs of plan in order and reaps every worker it spawned.
//
// If a pair cannot be spawned, no further pairs are attempted; the workers
// already spawned, including a partial pair's producer, are still reaped
// before Run returns the error. The returned Report therefore always covers
// every worker that was spawned, and is nil only when plan was rejected
// before anything was created (ErrInvalidConfig).
//
// The error reports spawning only. A worker that ran and failed shows up as
// its Outcome in the Report; see Report.Err.
func (f *Fleet) Run(plan Plan) (*Report, error) {
	if err := validatePlan(f.cfg, plan); err != nil {
		return nil, err
	}

	f.log.Info("spawning pairs", "pairs", len(plan))

	workers := make([]*Worker, 0, 2*len(plan))
	var spawnErr error
	for _, spec := range plan {
		spawned, err := f.spawnPair(spec)
		workers = append(workers, spawned...)
		if err != nil {
			spawnErr = fmt.Errorf("spawn pair %d: %w", spec.Index, err)
			f.log.Error("aborting fleet; reaping workers spawned so far",
				"pair", spec.Index, "spawned", len(workers), "error", err)
			break
		}
	}

	report := Reap(workers, f.log)
	if spawnErr != nil {
		return report, spawnErr
	}

	f.log.Info("all pairs completed", "pairs", len(plan), "workers", len(report.Results))
	return report, nil
}
