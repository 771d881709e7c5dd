package process

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"

	"github.com/giantswarm/pipefleet/internal/sentinel"
)

// ErrSpawn is returned when the OS refuses to create a worker process.
const ErrSpawn = sentinel.Error("process spawn failed")

// ErrEmptyPath is returned by Spawn when Config.Path is empty.
const ErrEmptyPath = sentinel.Error("executable path must not be empty")

// Starter starts a prepared command. (*exec.Cmd).Start is the production
// implementation; tests substitute one that fails on demand.
type Starter func(cmd *exec.Cmd) error

// Config describes one child process.
type Config struct {
	Name       string     // For logging (e.g., "producer/0")
	Path       string     // Executable to run; workers re-execute the current binary
	Args       []string   // Arguments after argv[0]
	Env        []string   // Full environment of the child
	ExtraFiles []*os.File // Inherited as fd 3, 4, ...; nothing else is inherited
	Stdout     io.Writer
	Stderr     io.Writer

	// Start overrides how the command is started. Nil uses (*exec.Cmd).Start.
	Start Starter

	// Logger (optional, defaults to slog.Default())
	Logger *slog.Logger
}

// Child is a spawned process that has not been reaped yet, or has been reaped
// exactly once.
//
// Child is not safe for concurrent use; the coordinator that spawned it is
// the only caller of Wait.
type Child struct {
	cmd     *exec.Cmd
	name    string
	log     *slog.Logger
	waited  bool
	outcome Outcome
}

// Spawn starts a child process described by cfg.
//
// Only cfg.ExtraFiles cross into the child. Every other descriptor of the
// calling process is close-on-exec, so the child never holds a copy of a
// channel end it was not given.
//
// On failure no process exists and the error matches ErrSpawn. Spawn never
// retries.
func Spawn(cfg Config) (*Child, error) {
	if cfg.Path == "" {
		return nil, ErrEmptyPath
	}
	name := cfg.Name
	if name == "" {
		name = cfg.Path
	}
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	start := cfg.Start
	if start == nil {
		start = (*exec.Cmd).Start
	}

	cmd := exec.Command(cfg.Path, cfg.Args...)
	cmd.Env = cfg.Env
	cmd.ExtraFiles = cfg.ExtraFiles
	cmd.Stdout = cfg.Stdout
	cmd.Stderr = cfg.Stderr
	configureSysProcAttr(cmd)

	if err := start(cmd); err != nil {
		return nil, fmt.Errorf("start %s: %w: %w", name, ErrSpawn, err)
	}
	return &Child{cmd: cmd, name: name, log: log}, nil
}

// Name returns the name the child was spawned with.
func (c *Child) Name() string {
	return c.name
}

// Pid returns the OS process identity of the child, or 0 if the command was
// never actually started.
func (c *Child) Pid() int {
	if c.cmd.Process == nil {
		return 0
	}
	return c.cmd.Process.Pid
}

// Wait blocks until the child terminates and returns how it terminated.
//
// cmd.Wait is called at most once per child; later calls return the outcome
// recorded by the first one.
func (c *Child) Wait() Outcome {
	if c.waited {
		return c.outcome
	}
	err := c.cmd.Wait()
	c.waited = true
	c.outcome = classify(c.cmd.ProcessState, err)
	if c.outcome.Kind == OutcomeUnknown {
		c.log.Debug("child termination could not be classified",
			"process", c.name, "pid", c.Pid(), "error", err)
	}
	return c.outcome
}
