// Package channel wraps a kernel pipe as a one-way channel between two
// processes and defines the fixed-width record carried over it.
//
// A Channel is created in the coordinator before a pair of workers is spawned.
// Each worker receives only the end its role uses (the other end is
// close-on-exec and never reaches the child), and the coordinator closes both
// of its own copies once the pair is running. End-of-stream reaches the reader
// only after every copy of the write end is closed.
package channel
