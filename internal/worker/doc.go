// Package worker implements the two worker roles, Producer and Consumer, and
// the runtime that executes one of them as the body of a spawned process.
//
// The role bodies (Produce, Consume) are plain functions over an io.Writer or
// io.Reader and return an error; they never exit the process. Run maps a
// role's result onto a process exit status, and ServeIfRequested is the hook
// a binary calls at startup to turn itself into a worker when its environment
// says so.
package worker
