package spawn

import (
	"context"

	"github.com/ipetkov/conch-runtime-go/core/shellerr"
	"github.com/ipetkov/conch-runtime-go/env"
	"github.com/ipetkov/conch-runtime-go/exitstatus"
)

// FunctionCall invokes a previously defined shell function by name with a
// fresh set of positional parameters (§4.5): the body sees Args as $1.. and
// the caller's own positional parameters are restored once it returns,
// regardless of how it returns.
type FunctionCall struct {
	Name string
	Args []string
}

func (n FunctionCall) Spawn(ctx context.Context, e env.Environment) (exitstatus.Waiter, error) {
	body, ok := e.Func(n.Name)
	if !ok {
		return nil, shellerr.Command("function not found", n.Name, nil)
	}

	old := e.SetArgs(n.Args)
	e.PushFrame()
	defer func() {
		e.PopFrame()
		e.SetArgs(old)
	}()

	waiter, err := body.Spawn(ctx, e)
	if err != nil {
		return nil, err
	}
	status := waiter(ctx)
	return done(status), nil
}
