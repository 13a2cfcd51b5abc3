package spawn

import (
	"context"

	"github.com/ipetkov/conch-runtime-go/env"
	"github.com/ipetkov/conch-runtime-go/exitstatus"
)

// AndOrOp is the connector between two commands in an and/or list.
type AndOrOp int

const (
	// And is `&&`: run the next command only if the previous succeeded.
	And AndOrOp = iota
	// Or is `||`: run the next command only if the previous failed.
	Or
)

// AndOrLink pairs a connector with the command it guards.
type AndOrLink struct {
	Op  AndOrOp
	Cmd Command
}

// AndOrList runs First, then each link in turn, short-circuiting per its
// Op against the previous command's status, per §4.5.
type AndOrList struct {
	First Command
	Rest  []AndOrLink
}

func (l AndOrList) Spawn(ctx context.Context, e env.Environment) (exitstatus.Waiter, error) {
	status, err := runChild(ctx, e, l.First)
	if err != nil {
		return nil, err
	}
	e.SetLastStatus(status)

	for _, link := range l.Rest {
		run := (link.Op == And && status.Success()) || (link.Op == Or && !status.Success())
		if !run {
			continue
		}
		status, err = runChild(ctx, e, link.Cmd)
		if err != nil {
			return nil, err
		}
		e.SetLastStatus(status)
	}
	return done(status), nil
}
