package spawn

import (
	"context"

	"github.com/ipetkov/conch-runtime-go/env"
	"github.com/ipetkov/conch-runtime-go/exitstatus"
)

// Sequence runs each command in turn, discarding every status but the
// last, per §4.5. A fatal error in any command stops the sequence early.
type Sequence []Command

func (s Sequence) Spawn(ctx context.Context, e env.Environment) (exitstatus.Waiter, error) {
	var last exitstatus.ExitStatus = exitstatus.SUCCESS
	for _, cmd := range s {
		status, err := runChild(ctx, e, cmd)
		if err != nil {
			return nil, err
		}
		last = status
		e.SetLastStatus(last)
	}
	return done(last), nil
}
