// Package core provides the internal implementation of pipefleet.
// It contains the Fleet coordinator (runs a Plan of producer/consumer pairs
// and always reaps every worker it spawned, on success and failure alike),
// the per-pair spawner state machine that creates a channel and the two
// workers bound to its ends, and the Reaper that waits on workers in spawn
// order and classifies each termination.
package core
