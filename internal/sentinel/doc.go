// Package sentinel provides an immutable error type for sentinel error declarations.
//
// Every error category pipefleet exposes (resource exhaustion, spawn failure,
// transfer failure, invalid configuration) is declared as a const of type
// Error so that no caller can reassign it, while errors.Is keeps working
// through wrapped chains.
package sentinel
