package worker

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Worker process exit statuses.
const (
	ExitSuccess = 0
	ExitFailure = 1
)

// Run executes the role selected by env against its channel end and returns
// the exit status the worker process should terminate with. The end is closed
// before Run returns, whatever the outcome.
func Run(env Env, end io.ReadWriteCloser, log *slog.Logger) int {
	if log == nil {
		log = slog.Default()
	}
	if err := run(env, end, log); err != nil {
		log.Error("worker failed", "error", err)
		return ExitFailure
	}
	return ExitSuccess
}

func run(env Env, end io.ReadWriteCloser, log *slog.Logger) error {
	var err error
	switch env.Role {
	case RoleProducer:
		err = Produce(end, env.Producer(), log)
	case RoleConsumer:
		_, err = Consume(end, env.PairID, log)
	default:
		err = fmt.Errorf("run worker: unknown role %v", env.Role)
	}

	if closeErr := end.Close(); closeErr != nil {
		err = errors.Join(err, fmt.Errorf("close %s end: %w", env.Role, closeErr))
	}
	return err
}

// NewLogger returns the logger a worker process reports through: text
// records on w at env.LogLevel, tagged with the role, pid and pair index.
func NewLogger(env Env, w io.Writer) *slog.Logger {
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: env.LogLevel})
	return slog.New(h).With(
		"role", env.Role.String(),
		"pid", os.Getpid(),
		"pair", env.Pair,
	)
}

// ServeIfRequested turns the current process into a worker when its
// environment carries a worker role: it runs the role against ChannelFD and
// exits with the role's status, never returning. Otherwise it returns
// immediately.
//
// Every binary that spawns workers must call it before doing anything else,
// typically first thing in main or TestMain.
func ServeIfRequested() {
	env, ok, err := Lookup()
	if !ok {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "pipefleet worker: %v\n", err)
		os.Exit(ExitFailure)
	}

	end := os.NewFile(ChannelFD, "pipefleet-channel")
	os.Exit(Run(env, end, NewLogger(env, os.Stderr)))
}
