package pipefleet

import (
	"fmt"
	"io"
	"log/slog"
	"time"
)

// requirePositive panics if v <= 0 with a descriptive message.
func requirePositive(name string, v int) {
	if v <= 0 {
		panic(fmt.Sprintf("pipefleet: %s must be greater than 0, got %v", name, v))
	}
}

// requireNonNegative panics if v < 0 with a descriptive message.
func requireNonNegative[T float64 | time.Duration](name string, v T) {
	if v < 0 {
		panic(fmt.Sprintf("pipefleet: %s must not be negative, got %v", name, v))
	}
}

// requireNonEmpty panics if s is empty with a descriptive message.
func requireNonEmpty(name, s string) {
	if s == "" {
		panic(fmt.Sprintf("pipefleet: %s must not be empty", name))
	}
}

// Option configures a single RunBasic or RunPairs call.
//
// Several With* functions panic on invalid input (zero counts, empty paths,
// negative durations). Option values are typically constants, so an invalid
// value is a programmer error, the same contract as [regexp.MustCompile].
// The number of pairs passed to RunPairs is runtime input and is validated
// with an error instead.
type Option func(*runConfig)

// WithMaxPairs sets the largest number of pairs RunPairs accepts.
//
// Default: 5.
//
// Panics if n <= 0.
func WithMaxPairs(n int) Option {
	requirePositive("max pairs", n)
	return func(c *runConfig) {
		c.MaxPairs = n
	}
}

// WithRecordsPerPair sets how many integers each producer sends. Pair i of
// RunPairs sends i*n+1 through i*n+n.
//
// Default: 5.
//
// Panics if n <= 0.
func WithRecordsPerPair(n int) Option {
	requirePositive("records per pair", n)
	return func(c *runConfig) {
		c.RecordsPerPair = n
	}
}

// WithProducerDelay sets the base pause between two producer writes. Zero
// disables pausing.
//
// Default: 100ms.
//
// Panics if d < 0.
func WithProducerDelay(d time.Duration) Option {
	requireNonNegative("producer delay", d)
	return func(c *runConfig) {
		c.ProducerDelay = d
	}
}

// WithDelayJitter sets the random extension of each producer pause as a
// fraction of the producer delay. Zero makes every pause exactly the
// producer delay.
//
// Default: 0.5.
//
// Panics if factor < 0.
func WithDelayJitter(factor float64) Option {
	requireNonNegative("delay jitter", factor)
	return func(c *runConfig) {
		c.DelayJitter = factor
	}
}

// WithExecutable sets the binary re-executed as every worker, and the
// arguments it receives. The binary must call ServeWorker first thing.
//
// Default: the current executable (os.Executable), without arguments.
//
// Panics if path is empty.
func WithExecutable(path string, args ...string) Option {
	requireNonEmpty("worker executable", path)
	return func(c *runConfig) {
		c.Executable = path
		c.Args = args
	}
}

// WithWorkerOutput sets where workers write their stdout and stderr, which
// carries their logs. A nil writer keeps the coordinator's own stream.
//
// When one writer is shared between several workers it must be safe for
// concurrent use; os.File is.
func WithWorkerOutput(stdout, stderr io.Writer) Option {
	return func(c *runConfig) {
		c.Stdout = stdout
		c.Stderr = stderr
	}
}

// WithLogLevel sets the minimum level worker processes log at. The
// coordinator's own logging is configured with SetLogger.
//
// Default: slog.LevelInfo.
func WithLogLevel(level slog.Level) Option {
	return func(c *runConfig) {
		c.WorkerLogLevel = level
	}
}

// WithRunLock makes the run hold an exclusive lock on the file at path from
// before the first pair is spawned until the last worker has been reaped.
// Concurrent runs using the same path, in this or other processes, execute
// one after another. Missing parent directories are created and the file is
// left in place.
//
// Default: no lock.
//
// Panics if path is empty.
func WithRunLock(path string) Option {
	requireNonEmpty("run lock path", path)
	return func(c *runConfig) {
		c.LockFile = path
	}
}
