package worker

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/giantswarm/pipefleet/internal/sentinel"
)

// ErrNotWorker is returned by Lookup when the worker environment is present
// but cannot be decoded into a runnable Env.
const ErrNotWorker = sentinel.Error("invalid worker environment")

// EnvPrefix is the prefix of every environment variable that describes a
// worker to a spawned process.
const EnvPrefix = "PIPEFLEET_WORKER"

// roleKey is the variable whose presence marks a process as a worker.
const roleKey = EnvPrefix + "_ROLE"

// ChannelFD is the descriptor number under which a worker receives its
// channel end: the first entry of exec.Cmd.ExtraFiles.
const ChannelFD = 3

// Env is the role-tagged parameter set a coordinator hands to a worker
// process through its environment. Only the fields of the selected Role are
// meaningful: Start, Count, Delay and Jitter for producers, PairID for
// consumers.
type Env struct {
	Role     Role          `envconfig:"ROLE" required:"true"`
	Pair     int           `envconfig:"PAIR"`
	Start    int32         `envconfig:"START"`
	Count    int           `envconfig:"COUNT" default:"5"`
	Delay    time.Duration `envconfig:"DELAY" default:"100ms"`
	Jitter   float64       `envconfig:"JITTER" default:"0.5"`
	PairID   int           `envconfig:"PAIR_ID"`
	LogLevel slog.Level    `envconfig:"LOG_LEVEL" default:"INFO"`
}

// Validate reports every invalid field of e.
func (e Env) Validate() error {
	var errs []error

	if !e.Role.IsValid() {
		errs = append(errs, fmt.Errorf("invalid role: %v", e.Role))
	}
	if e.Role == RoleProducer && e.Count <= 0 {
		errs = append(errs, fmt.Errorf("count must be greater than 0, got %d", e.Count))
	}
	if e.Delay < 0 {
		errs = append(errs, fmt.Errorf("delay must not be negative, got %s", e.Delay))
	}
	if e.Jitter < 0 {
		errs = append(errs, fmt.Errorf("jitter must not be negative, got %v", e.Jitter))
	}

	return errors.Join(errs...)
}

// Producer returns the producer parameters carried by e.
func (e Env) Producer() ProducerParams {
	return ProducerParams{
		Start:  e.Start,
		Count:  e.Count,
		Delay:  e.Delay,
		Jitter: e.Jitter,
	}
}

// Environ encodes e as KEY=VALUE pairs that Lookup decodes back.
func (e Env) Environ() []string {
	return []string{
		EnvPrefix + "_ROLE=" + e.Role.String(),
		EnvPrefix + "_PAIR=" + strconv.Itoa(e.Pair),
		EnvPrefix + "_START=" + strconv.FormatInt(int64(e.Start), 10),
		EnvPrefix + "_COUNT=" + strconv.Itoa(e.Count),
		EnvPrefix + "_DELAY=" + e.Delay.String(),
		EnvPrefix + "_JITTER=" + strconv.FormatFloat(e.Jitter, 'g', -1, 64),
		EnvPrefix + "_PAIR_ID=" + strconv.Itoa(e.PairID),
		EnvPrefix + "_LOG_LEVEL=" + e.LogLevel.String(),
	}
}

// MergeEnviron returns base with any inherited worker variables removed and
// the variables of e appended. A coordinator that is itself running under a
// worker environment must not leak it into the children it spawns.
func MergeEnviron(base []string, e Env) []string {
	out := make([]string, 0, len(base)+8)
	for _, kv := range base {
		if strings.HasPrefix(kv, EnvPrefix+"_") {
			continue
		}
		out = append(out, kv)
	}
	return append(out, e.Environ()...)
}

// Lookup decodes the worker environment of the current process. ok is false
// when the process was not started as a worker. A present but malformed
// environment yields ok=true and an error matching ErrNotWorker.
func Lookup() (env Env, ok bool, err error) {
	if _, present := os.LookupEnv(roleKey); !present {
		return Env{}, false, nil
	}
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return Env{}, true, fmt.Errorf("%w: %w", ErrNotWorker, err)
	}
	if err := env.Validate(); err != nil {
		return Env{}, true, fmt.Errorf("%w: %w", ErrNotWorker, err)
	}
	return env, true, nil
}
