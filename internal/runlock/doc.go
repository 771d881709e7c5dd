// Package runlock serializes whole coordinator runs across processes with an
// exclusive advisory lock on a file.
//
// Fleets never need it for correctness. It exists so that two invocations
// sharing a terminal do not interleave their worker output. The lock file is
// left on disk after Release.
package runlock
