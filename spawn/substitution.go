package spawn

import (
	"context"
	"log/slog"
	"strconv"
	"sync/atomic"

	"github.com/ipetkov/conch-runtime-go/core/trace"
	"github.com/ipetkov/conch-runtime-go/env"
)

var substitutionCounter atomic.Int64

// Substitution implements word.CommandRunner for `$(cmds)`/backtick
// command substitution: Inner runs in an isolated sub-environment with its
// standard output redirected into a pipe, and RunCaptured returns
// everything written to that pipe before Inner's Waiter completes (§4.4,
// §8 "sub-environment isolation").
type Substitution struct {
	Inner Command
}

func (s Substitution) RunCaptured(ctx context.Context, e env.Environment) (string, error) {
	seq := substitutionCounter.Add(1)
	id := trace.ID("subst:" + strconv.FormatInt(seq, 10))
	slog.Debug("command substitution start", "trace", id)
	defer slog.Debug("command substitution done", "trace", id)

	sub := e.SubEnv()
	pipe, err := sub.OpenPipe()
	if err != nil {
		return "", err
	}

	r := env.NewRestorer(sub)
	r.SetFileDesc(1, env.FdEntry{Handle: pipe.Writer, Perms: env.Write})

	type readResult struct {
		data []byte
		err  error
	}
	readDone := make(chan readResult, 1)
	go func() {
		data, err := sub.ReadAll(ctx, pipe.Reader)
		readDone <- readResult{data, err}
	}()

	waiter, err := s.Inner.Spawn(ctx, r)
	if err != nil {
		_ = pipe.Writer.Close()
		_ = pipe.Reader.Close()
		<-readDone
		return "", err
	}
	status := waiter(ctx)
	sub.SetLastStatus(status)
	// Our reference to the write end is the last one still held once Inner
	// has finished writing through it; closing it lets the reader goroutine
	// observe EOF.
	_ = pipe.Writer.Close()

	res := <-readDone
	r.Close()
	if res.err != nil {
		return "", res.err
	}
	return string(res.data), nil
}
