package pipefleet

import "github.com/giantswarm/pipefleet/internal/core"

// runConfig holds configuration for one RunBasic or RunPairs call. It embeds
// core.FleetConfig, keeping internal/core types out of the public API
// signature while avoiding field-by-field duplication.
type runConfig struct {
	core.FleetConfig

	// LockFile, when set, serializes whole runs across processes.
	LockFile string
}

// defaultRunConfig returns a runConfig populated with all default values.
// The worker executable is resolved at run time when left empty.
func defaultRunConfig() runConfig {
	return runConfig{FleetConfig: core.FleetConfig{
		MaxPairs:       DefaultMaxPairs,
		RecordsPerPair: DefaultRecordsPerPair,
		ProducerDelay:  DefaultProducerDelay,
		DelayJitter:    DefaultDelayJitter,
		WorkerLogLevel: DefaultLogLevel,
	}}
}
