package spawn

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/ipetkov/conch-runtime-go/env"
	"github.com/ipetkov/conch-runtime-go/exitstatus"
)

// Pipeline connects each adjacent pair of Stages with a pipe (stage i's
// stdout feeds stage i+1's stdin) and runs every stage concurrently, per
// §4.5: the outer phase starts every stage (so none can deadlock waiting
// for a sibling that hasn't been launched yet) before the combined Waiter
// blocks on all of them via errgroup, reporting the last stage's status as
// the pipeline's own (the POSIX default; `pipefail` is not modeled). Invert
// is the leading `!` that flips SUCCESS/ERROR on the reported status.
type Pipeline struct {
	Invert bool
	Stages []Command
}

func (p Pipeline) Spawn(ctx context.Context, e env.Environment) (exitstatus.Waiter, error) {
	if len(p.Stages) == 0 {
		status := invertStatus(p.Invert, exitstatus.SUCCESS)
		e.SetLastStatus(status)
		return done(status), nil
	}

	if len(p.Stages) == 1 {
		waiter, err := p.Stages[0].Spawn(ctx, e)
		if err != nil {
			return nil, err
		}
		if !p.Invert {
			return waiter, nil
		}
		return func(ctx context.Context) exitstatus.ExitStatus {
			status := invertStatus(true, waiter(ctx))
			e.SetLastStatus(status)
			return status
		}, nil
	}

	stageEnvs := make([]env.Environment, len(p.Stages))
	for i := range p.Stages {
		stageEnvs[i] = e.SubEnv()
	}

	for i := 0; i < len(p.Stages)-1; i++ {
		pipe, err := e.OpenPipe()
		if err != nil {
			return nil, err
		}
		r := env.NewRestorer(stageEnvs[i])
		r.SetFileDesc(1, env.FdEntry{Handle: pipe.Writer, Perms: env.Write})
		r.ClearRedirects()
		stageEnvs[i] = r

		rNext := env.NewRestorer(stageEnvs[i+1])
		rNext.SetFileDesc(0, env.FdEntry{Handle: pipe.Reader, Perms: env.Read})
		rNext.ClearRedirects()
		stageEnvs[i+1] = rNext
	}

	waiters := make([]exitstatus.Waiter, len(p.Stages))
	for i, stage := range p.Stages {
		w, err := stage.Spawn(ctx, stageEnvs[i])
		if err != nil {
			return nil, err
		}
		waiters[i] = w
	}

	invert := p.Invert
	return func(ctx context.Context) exitstatus.ExitStatus {
		statuses := make([]exitstatus.ExitStatus, len(waiters))
		g, gctx := errgroup.WithContext(ctx)
		for i, w := range waiters {
			i, w := i, w
			g.Go(func() error {
				statuses[i] = w(gctx)
				return nil
			})
		}
		_ = g.Wait()
		last := invertStatus(invert, statuses[len(statuses)-1])
		e.SetLastStatus(last)
		return last
	}, nil
}

func invertStatus(invert bool, status exitstatus.ExitStatus) exitstatus.ExitStatus {
	if !invert {
		return status
	}
	if status.Success() {
		return exitstatus.ERROR
	}
	return exitstatus.SUCCESS
}
