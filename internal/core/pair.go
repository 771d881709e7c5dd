package core

import (
	"errors"
	"fmt"
	"os"

	"github.com/giantswarm/pipefleet/internal/channel"
	"github.com/giantswarm/pipefleet/internal/process"
	"github.com/giantswarm/pipefleet/internal/worker"
)

// pairState is the progress of spawning one pair.
type pairState int

const (
	pairInit pairState = iota
	pairChannelCreated
	pairProducerSpawned
	pairConsumerSpawned
	pairDone
	pairFailed
)

// String returns the name of the state.
func (s pairState) String() string {
	switch s {
	case pairInit:
		return "init"
	case pairChannelCreated:
		return "channel-created"
	case pairProducerSpawned:
		return "producer-spawned"
	case pairConsumerSpawned:
		return "consumer-spawned"
	case pairDone:
		return "done"
	case pairFailed:
		return "failed"
	default:
		return fmt.Sprintf("pairState(%d)", int(s))
	}
}

// Worker is the descriptor of one spawned worker process. The Fleet that
// spawned it is its only owner until the Reaper has waited on it.
type Worker struct {
	Pid  int
	Role worker.Role
	Pair int // Index of the pair within its Plan

	child *process.Child
}

// String identifies the worker in logs and errors.
func (w *Worker) String() string {
	return fmt.Sprintf("%s %d (pid %d)", w.Role, w.Pair, w.Pid)
}

// spawnPair creates one channel, spawns the producer on its write end and
// then the consumer on its read end, and releases the coordinator's copies of
// both ends.
//
// The returned workers are every process spawned for this pair, also on
// failure: if the consumer cannot be spawned the producer is already running
// and the caller must reap it. Both channel ends are closed in this process
// on every path.
func (f *Fleet) spawnPair(spec PairSpec) ([]*Worker, error) {
	state := pairInit
	advance := func(next pairState) {
		f.log.Debug("pair state", "pair", spec.Index, "from", state, "to", next)
		state = next
	}

	ch, err := channel.NewWithPipe(f.pipe)
	if err != nil {
		advance(pairFailed)
		return nil, err
	}
	advance(pairChannelCreated)

	producer, err := f.spawnWorker(spec, f.producerEnv(spec), ch.WriteEnd())
	if err != nil {
		advance(pairFailed)
		return nil, errors.Join(err, f.releaseChannel(spec, ch))
	}
	advance(pairProducerSpawned)

	consumer, err := f.spawnWorker(spec, f.consumerEnv(spec), ch.ReadEnd())
	if err != nil {
		advance(pairFailed)
		return []*Worker{producer}, errors.Join(err, f.releaseChannel(spec, ch))
	}
	advance(pairConsumerSpawned)

	// The children hold their own copies now. Until these are closed the
	// consumer can never observe end-of-stream.
	if err := f.releaseChannel(spec, ch); err != nil {
		f.log.Warn("pair spawned but channel release failed", "pair", spec.Index, "error", err)
	}
	advance(pairDone)

	return []*Worker{producer, consumer}, nil
}

// releaseChannel closes the coordinator's copies of both ends of ch.
func (f *Fleet) releaseChannel(spec PairSpec, ch *channel.Channel) error {
	if err := ch.Close(); err != nil {
		return fmt.Errorf("release channel of pair %d: %w", spec.Index, err)
	}
	return nil
}

// spawnWorker starts one worker process holding end as its only channel
// descriptor.
func (f *Fleet) spawnWorker(spec PairSpec, env worker.Env, end *os.File) (*Worker, error) {
	stdout, stderr := f.output(env)
	child, err := process.Spawn(process.Config{
		Name:       fmt.Sprintf("%s/%d", env.Role, spec.Index),
		Path:       f.cfg.Executable,
		Args:       f.cfg.Args,
		Env:        worker.MergeEnviron(f.environ(), env),
		ExtraFiles: []*os.File{end},
		Stdout:     stdout,
		Stderr:     stderr,
		Start:      f.start,
		Logger:     f.log,
	})
	if err != nil {
		f.log.Error("worker spawn failed", "role", env.Role.String(), "pair", spec.Index, "error", err)
		return nil, err
	}

	w := &Worker{Pid: child.Pid(), Role: env.Role, Pair: spec.Index, child: child}
	f.log.Info("worker spawned", "role", w.Role.String(), "pair", w.Pair, "pid", w.Pid)
	return w, nil
}

func (f *Fleet) producerEnv(spec PairSpec) worker.Env {
	return worker.Env{
		Role:     worker.RoleProducer,
		Pair:     spec.Index,
		Start:    spec.Start,
		Count:    f.cfg.RecordsPerPair,
		Delay:    f.cfg.ProducerDelay,
		Jitter:   f.cfg.DelayJitter,
		LogLevel: f.cfg.WorkerLogLevel,
	}
}

func (f *Fleet) consumerEnv(spec PairSpec) worker.Env {
	return worker.Env{
		Role:     worker.RoleConsumer,
		Pair:     spec.Index,
		PairID:   spec.ConsumerID,
		LogLevel: f.cfg.WorkerLogLevel,
	}
}
