package spawn

import (
	"context"

	"github.com/ipetkov/conch-runtime-go/env"
	"github.com/ipetkov/conch-runtime-go/exitstatus"
)

// LoopKind distinguishes `while` from `until`.
type LoopKind int

const (
	While LoopKind = iota
	Until
)

// Loop runs Guard before every iteration, continuing while (While) or until
// (Until) it succeeds, running Body each time Guard permits it, per §4.5.
type Loop struct {
	Kind  LoopKind
	Guard Command
	Body  Command
}

// isEmptySequence reports whether cmd is a Sequence with no commands, the
// only shape the core can statically know does nothing — used to short-
// circuit a `while :; do :; done`-style spin per §4.5's "empty guard AND
// empty body" boundary case.
func isEmptySequence(cmd Command) bool {
	seq, ok := cmd.(Sequence)
	return ok && len(seq) == 0
}

func (n Loop) Spawn(ctx context.Context, e env.Environment) (exitstatus.Waiter, error) {
	if isEmptySequence(n.Guard) && isEmptySequence(n.Body) {
		e.SetLastStatus(exitstatus.SUCCESS)
		return done(exitstatus.SUCCESS), nil
	}

	last := exitstatus.SUCCESS
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		guardStatus, err := runChild(ctx, e, n.Guard)
		if err != nil {
			return nil, err
		}
		keepGoing := guardStatus.Success()
		if n.Kind == Until {
			keepGoing = !keepGoing
		}
		if !keepGoing {
			break
		}
		last, err = runChild(ctx, e, n.Body)
		if err != nil {
			return nil, err
		}
		e.SetLastStatus(last)
	}
	return done(last), nil
}
