// Package spawn implements the execution combinators of §4.5: the two-phase
// Spawn contract (a synchronous, environment-mutating outer phase that
// returns an environment-free Waiter for the blocking remainder) composed
// into sequences, and/or lists, conditionals, loops, case, subshells,
// substitution, function calls, simple commands, and pipelines.
package spawn

import (
	"context"

	"github.com/ipetkov/conch-runtime-go/env"
	"github.com/ipetkov/conch-runtime-go/exitstatus"
)

// Command is the execution core's unit of spawnable work: the same
// contract env.FuncBody callers (a function call) and structural
// combinators alike implement.
type Command = env.FuncBody

// runToCompletion spawns cmd and immediately awaits its Waiter. Most
// compound commands (sequence, and/or, if, loops, case) need their
// children's final status before they can decide what runs next, so they
// collapse the two-phase contract into one blocking call; only pipeline
// genuinely needs the phases kept apart so every stage starts before any
// of them is awaited.
func runToCompletion(ctx context.Context, e env.Environment, cmd Command) (exitstatus.ExitStatus, error) {
	waiter, err := cmd.Spawn(ctx, e)
	if err != nil {
		return exitstatus.ExitStatus{}, err
	}
	return waiter(ctx), nil
}

// done wraps an already-computed status as a trivial Waiter, for
// combinators whose outer phase does all the work eagerly.
func done(status exitstatus.ExitStatus) exitstatus.Waiter {
	return func(context.Context) exitstatus.ExitStatus { return status }
}
