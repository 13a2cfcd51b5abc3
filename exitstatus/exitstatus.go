// Package exitstatus defines the result of a completed command invocation.
package exitstatus

import (
	"context"
	"fmt"
)

// Waiter is the "inner future" of the spawn contract (§4.5/§9): once the
// outer, environment-mutating phase of a spawn has run, the remaining work
// is captured in a Waiter that needs nothing but a context to produce the
// final ExitStatus. Dropping/cancelling via ctx must never leave dangling
// environment state — only the outer phase touches the environment.
type Waiter func(ctx context.Context) ExitStatus

// Kind distinguishes a normal exit code from a termination by signal.
type Kind int

const (
	// KindCode means the process ran to completion and reported Code.
	KindCode Kind = iota
	// KindSignal means the process was terminated by the given signal number.
	KindSignal
)

// ExitStatus is the outcome of a spawned command: either a POSIX exit code
// or the signal number that terminated it.
type ExitStatus struct {
	kind  Kind
	value int32
}

// Code constructs an ExitStatus from a process exit code.
func Code(code int32) ExitStatus {
	return ExitStatus{kind: KindCode, value: code}
}

// Signal constructs an ExitStatus representing termination by signal.
func Signal(signal int32) ExitStatus {
	return ExitStatus{kind: KindSignal, value: signal}
}

// Success reports whether the status is Code(0).
func (s ExitStatus) Success() bool {
	return s.kind == KindCode && s.value == 0
}

// IsSignal reports whether the status represents a signal termination.
func (s ExitStatus) IsSignal() bool {
	return s.kind == KindSignal
}

// Value returns the numeric code (the signal number, if IsSignal).
func (s ExitStatus) Value() int32 {
	return s.value
}

func (s ExitStatus) String() string {
	if s.kind == KindSignal {
		return fmt.Sprintf("signal(%d)", s.value)
	}
	return fmt.Sprintf("%d", s.value)
}

// Well-known exit codes, per POSIX convention and §3 of the spec.
const (
	Success            int32 = 0
	Error              int32 = 1
	CmdNotExecutable   int32 = 126
	CmdNotFound        int32 = 127
)

// Convenience constructors for the well-known codes.
var (
	SUCCESS              = Code(Success)
	ERROR                = Code(Error)
	CMD_NOT_EXECUTABLE   = Code(CmdNotExecutable)
	CMD_NOT_FOUND        = Code(CmdNotFound)
)
