package spawn

import (
	"context"
	"log/slog"
	"strconv"
	"sync/atomic"

	"github.com/ipetkov/conch-runtime-go/core/trace"
	"github.com/ipetkov/conch-runtime-go/env"
	"github.com/ipetkov/conch-runtime-go/exitstatus"
)

var subshellCounter atomic.Int64

// Subshell runs Inner against a fresh sub-environment: variable, function,
// positional-parameter, file descriptor, and working-directory changes
// Inner makes are never observed by the caller (§8 "sub-environment
// isolation").
type Subshell struct {
	Inner Command
}

func (n Subshell) Spawn(ctx context.Context, e env.Environment) (exitstatus.Waiter, error) {
	seq := subshellCounter.Add(1)
	id := trace.ID("subshell:" + strconv.FormatInt(seq, 10) + ":" + strconv.Itoa(e.FrameDepth()))
	slog.Debug("subshell spawn", "trace", id, "frame", e.FrameDepth())

	sub := e.SubEnv()
	status, err := runChild(ctx, sub, n.Inner)
	if err != nil {
		slog.Debug("subshell failed", "trace", id, "error", err)
		return nil, err
	}
	slog.Debug("subshell done", "trace", id, "status", status.String())
	e.SetLastStatus(status)
	return done(status), nil
}
