package core

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"time"

	"github.com/giantswarm/pipefleet/internal/sentinel"
)

// ErrInvalidConfig is returned when a fleet configuration or plan is rejected
// before any channel or process is created.
const ErrInvalidConfig = sentinel.Error("invalid configuration")

// FleetConfig holds configuration for a Fleet.
//
// All fields are immutable after construction via NewFleet, which lets a
// single Fleet run several plans concurrently.
type FleetConfig struct {
	// Executable is the binary re-executed as every worker. It must call the
	// worker hook before anything else.
	Executable string

	// Args are passed to each worker after argv[0].
	Args []string

	// MaxPairs caps the number of pairs one Run may spawn, so the number of
	// tracked worker identities is bounded at 2*MaxPairs.
	MaxPairs int

	// RecordsPerPair is how many records each producer emits (K).
	RecordsPerPair int

	// ProducerDelay is the base pause between two producer writes; zero
	// disables pausing. DelayJitter widens each pause to
	// [ProducerDelay, ProducerDelay*(1+DelayJitter)).
	ProducerDelay time.Duration
	DelayJitter   float64

	// WorkerLogLevel is the minimum level workers log at.
	WorkerLogLevel slog.Level

	// Stdout and Stderr are inherited by every worker. Nil uses the
	// coordinator's own os.Stdout and os.Stderr.
	Stdout io.Writer
	Stderr io.Writer
}

// Validate checks all FleetConfig invariants and returns an error describing
// every violation found, joined with errors.Join.
func (c FleetConfig) Validate() error {
	var errs []error

	if c.Executable == "" {
		errs = append(errs, errors.New("worker executable must not be empty"))
	}
	if c.MaxPairs <= 0 {
		errs = append(errs, fmt.Errorf("max pairs must be greater than 0, got %d", c.MaxPairs))
	}
	if c.RecordsPerPair <= 0 {
		errs = append(errs, fmt.Errorf("records per pair must be greater than 0, got %d", c.RecordsPerPair))
	}
	if c.MaxPairs > 0 && c.RecordsPerPair > 0 && int64(c.MaxPairs)*int64(c.RecordsPerPair) > math.MaxInt32 {
		errs = append(errs, fmt.Errorf("max pairs %d times records per pair %d overflows a record", c.MaxPairs, c.RecordsPerPair))
	}
	if c.ProducerDelay < 0 {
		errs = append(errs, fmt.Errorf("producer delay must not be negative, got %s", c.ProducerDelay))
	}
	if c.DelayJitter < 0 {
		errs = append(errs, fmt.Errorf("delay jitter must not be negative, got %v", c.DelayJitter))
	}

	return errors.Join(errs...)
}

// PairSpec is the assignment of one pair within a Plan.
type PairSpec struct {
	Index      int   // Position in the plan; pairs are spawned in increasing Index order
	Start      int32 // First value the producer emits
	ConsumerID int   // Identity the consumer reports under
}

// Plan is the ordered list of pairs one Run spawns.
type Plan []PairSpec

// BasicPlan returns the single-pair plan: producer starting at 1, consumer
// reporting as pair 0.
func BasicPlan() Plan {
	return Plan{{Index: 0, Start: 1, ConsumerID: 0}}
}

// MultiPairPlan returns n pairs where pair i produces the k values starting
// at i*k+1 and its consumer reports as pair i+1.
func MultiPairPlan(n, k int) Plan {
	plan := make(Plan, 0, max(n, 0))
	for i := range n {
		plan = append(plan, PairSpec{
			Index:      i,
			Start:      int32(i*k + 1), //nolint:gosec // G115: bounded by FleetConfig.Validate
			ConsumerID: i + 1,
		})
	}
	return plan
}

// validatePlan rejects plans a Fleet with cfg must not run.
func validatePlan(cfg FleetConfig, plan Plan) error {
	if len(plan) == 0 {
		return fmt.Errorf("%w: plan must contain at least one pair", ErrInvalidConfig)
	}
	if len(plan) > cfg.MaxPairs {
		return fmt.Errorf("%w: %d pairs requested, at most %d allowed", ErrInvalidConfig, len(plan), cfg.MaxPairs)
	}
	return nil
}
