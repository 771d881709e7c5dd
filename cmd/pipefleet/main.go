// Command pipefleet runs producer/consumer worker pairs connected by pipes
// and reports how every worker terminated.
//
// Without flags it runs a single pair. With -pairs N it runs N pairs, pair i
// sending i*5+1 through i*5+5 to a consumer reporting as pair i+1.
//
// Exit status is 0 when every pair was spawned and every worker exited with
// status 0, 2 on invalid flags, and 1 otherwise.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/giantswarm/pipefleet"
)

const (
	exitOK    = 0
	exitFail  = 1
	exitUsage = 2
)

func main() {
	// Re-executed copies of this binary become workers here.
	pipefleet.ServeWorker()

	os.Exit(run(os.Args[1:], os.Stderr))
}

func run(args []string, stderr io.Writer) int {
	fs := flag.NewFlagSet("pipefleet", flag.ContinueOnError)
	fs.SetOutput(stderr)

	pairs := fs.Int("pairs", 0, "Number of producer/consumer pairs (0 runs the single-pair demo)")
	maxPairs := fs.Int("max-pairs", pipefleet.DefaultMaxPairs, "Largest accepted value of -pairs")
	delay := fs.Duration("delay", pipefleet.DefaultProducerDelay, "Base pause between two producer writes")
	jitter := fs.Float64("jitter", pipefleet.DefaultDelayJitter, "Random extension of each pause, as a fraction of -delay")
	lockFile := fs.String("lock-file", "", "Hold an exclusive lock on this file for the whole run (optional)")
	logLevel := pipefleet.DefaultLogLevel
	fs.TextVar(&logLevel, "log-level", pipefleet.DefaultLogLevel, "Log level: DEBUG, INFO, WARN, ERROR")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	if err := validateFlags(*pairs, *maxPairs, *delay, *jitter); err != nil {
		fmt.Fprintf(stderr, "pipefleet: %v\n", err)
		fs.Usage()
		return exitUsage
	}

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: logLevel}))
	pipefleet.SetLogger(logger.With("component", "pipefleet"))

	opts := []pipefleet.Option{
		pipefleet.WithMaxPairs(*maxPairs),
		pipefleet.WithProducerDelay(*delay),
		pipefleet.WithDelayJitter(*jitter),
		pipefleet.WithLogLevel(logLevel),
	}
	if *lockFile != "" {
		opts = append(opts, pipefleet.WithRunLock(*lockFile))
	}

	var (
		report *pipefleet.Report
		err    error
	)
	if *pairs == 0 {
		report, err = pipefleet.RunBasic(opts...)
	} else {
		report, err = pipefleet.RunPairs(*pairs, opts...)
	}
	if err != nil {
		logger.Error("fleet failed", "error", err)
		return exitFail
	}
	if err := report.Err(); err != nil {
		logger.Error("workers failed", "error", err)
		return exitFail
	}

	logger.Info("all workers exited cleanly", "workers", len(report.Results))
	return exitOK
}

func validateFlags(pairs, maxPairs int, delay time.Duration, jitter float64) error {
	var errs []error
	if pairs < 0 {
		errs = append(errs, fmt.Errorf("-pairs must not be negative, got %d", pairs))
	}
	if maxPairs <= 0 {
		errs = append(errs, fmt.Errorf("-max-pairs must be greater than 0, got %d", maxPairs))
	}
	if delay < 0 {
		errs = append(errs, fmt.Errorf("-delay must not be negative, got %s", delay))
	}
	if jitter < 0 {
		errs = append(errs, fmt.Errorf("-jitter must not be negative, got %v", jitter))
	}
	return errors.Join(errs...)
}
