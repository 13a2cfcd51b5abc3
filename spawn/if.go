package spawn

import (
	"context"

	"github.com/ipetkov/conch-runtime-go/env"
	"github.com/ipetkov/conch-runtime-go/exitstatus"
)

// Guard is one `if`/`elif` arm: Cond is run, and Body runs only if Cond
// succeeded.
type Guard struct {
	Cond Command
	Body Command
}

// If runs each Guard in order, executing the first whose Cond succeeds; if
// none do, Else runs (nil means no `else` clause, yielding success).
type If struct {
	Arms []Guard
	Else Command
}

func (n If) Spawn(ctx context.Context, e env.Environment) (exitstatus.Waiter, error) {
	for _, arm := range n.Arms {
		condStatus, err := runChild(ctx, e, arm.Cond)
		if err != nil {
			return nil, err
		}
		if condStatus.Success() {
			status, err := runChild(ctx, e, arm.Body)
			if err != nil {
				return nil, err
			}
			e.SetLastStatus(status)
			return done(status), nil
		}
	}
	if n.Else != nil {
		status, err := runChild(ctx, e, n.Else)
		if err != nil {
			return nil, err
		}
		e.SetLastStatus(status)
		return done(status), nil
	}
	e.SetLastStatus(exitstatus.SUCCESS)
	return done(exitstatus.SUCCESS), nil
}
