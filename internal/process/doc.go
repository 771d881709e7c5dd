// Package process spawns worker processes and observes how they terminate.
//
// Spawn starts one child with its channel end attached, Child.Wait reaps it
// exactly once, and the resulting Outcome classifies the termination as a
// normal exit with a status code, a kill by signal, or unknown. Nothing in
// this package signals or kills a child.
package process
