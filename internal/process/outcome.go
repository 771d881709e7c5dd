package process

import (
	"fmt"
	"os"
	"syscall"
)

// OutcomeKind classifies how a child terminated.
type OutcomeKind int

const (
	// OutcomeUnknown means no exit status could be obtained.
	OutcomeUnknown OutcomeKind = iota
	// OutcomeExited means the child exited normally with a status code.
	OutcomeExited
	// OutcomeSignaled means the child was terminated by a signal.
	OutcomeSignaled
)

// String returns the name of the kind.
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeUnknown:
		return "unknown"
	case OutcomeExited:
		return "exited"
	case OutcomeSignaled:
		return "signaled"
	default:
		return fmt.Sprintf("OutcomeKind(%d)", int(k))
	}
}

// Outcome is the termination of one child: Exited(Code), Signaled(Signal) or
// Unknown. Err carries the wait error for Unknown outcomes only.
type Outcome struct {
	Kind   OutcomeKind
	Code   int
	Signal syscall.Signal
	Err    error
}

// Exited returns the outcome of a normal exit with status code.
func Exited(code int) Outcome {
	return Outcome{Kind: OutcomeExited, Code: code}
}

// Signaled returns the outcome of a termination by sig.
func Signaled(sig syscall.Signal) Outcome {
	return Outcome{Kind: OutcomeSignaled, Signal: sig}
}

// Unknown returns an outcome for a child whose status could not be read.
func Unknown(err error) Outcome {
	return Outcome{Kind: OutcomeUnknown, Err: err}
}

// Success reports whether the child exited normally with status 0.
func (o Outcome) Success() bool {
	return o.Kind == OutcomeExited && o.Code == 0
}

// String describes the outcome for logs.
func (o Outcome) String() string {
	switch o.Kind {
	case OutcomeExited:
		return fmt.Sprintf("exited with status %d", o.Code)
	case OutcomeSignaled:
		return fmt.Sprintf("terminated by signal %d (%s)", int(o.Signal), o.Signal)
	default:
		if o.Err != nil {
			return "unknown: " + o.Err.Error()
		}
		return "unknown"
	}
}

// classify interprets the state left by cmd.Wait. A non-zero exit and a
// signal both surface from cmd.Wait as *exec.ExitError; the wait status in
// state tells them apart, so waitErr only matters when no status exists.
func classify(state *os.ProcessState, waitErr error) Outcome {
	if state == nil {
		return Unknown(waitErr)
	}
	if status, ok := state.Sys().(syscall.WaitStatus); ok {
		switch {
		case status.Exited():
			return Exited(status.ExitStatus())
		case status.Signaled():
			return Signaled(status.Signal())
		default:
			return Unknown(waitErr)
		}
	}
	if state.Exited() {
		return Exited(state.ExitCode())
	}
	return Unknown(waitErr)
}
