package spawn

import (
	"context"

	"github.com/ipetkov/conch-runtime-go/core/shellerr"
	"github.com/ipetkov/conch-runtime-go/env"
	"github.com/ipetkov/conch-runtime-go/exitstatus"
)

// runChild runs cmd to completion and classifies any error per §7: a fatal
// error propagates to abort the enclosing compound command; a non-fatal
// one is reported asynchronously and downgraded to a failure exit status so
// execution can continue (e.g. a redirect that cannot open its file, after
// which the next command in a sequence still runs).
func runChild(ctx context.Context, e env.Environment, cmd Command) (exitstatus.ExitStatus, error) {
	status, err := runToCompletion(ctx, e, cmd)
	if err == nil {
		return status, nil
	}
	if shellerr.IsFatal(err) {
		return exitstatus.ExitStatus{}, err
	}
	e.ReportFailure(ctx, err)
	return exitstatus.ERROR, nil
}
