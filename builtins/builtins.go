// Package builtins implements the peripheral shell builtins needed to
// exercise the execution core end-to-end: cd, pwd, echo, shift, `:`, true,
// and false (§1 notes argument parsing and output formatting for builtins
// are peripheral to the core; SPEC_FULL.md's supplemented behavior still
// wants them runnable for realistic test scenarios).
package builtins

import (
	"context"
	"os"
	"strconv"
	"strings"

	"github.com/ipetkov/conch-runtime-go/core/shellerr"
	"github.com/ipetkov/conch-runtime-go/env"
	"github.com/ipetkov/conch-runtime-go/exitstatus"
)

// Registry is the default, fixed builtin set. It implements env.Builtins.
type Registry struct{}

var table = map[string]env.Builtin{
	"cd":    cdBuiltin{},
	"pwd":   pwdBuiltin{},
	"echo":  echoBuiltin{},
	"shift": shiftBuiltin{},
	":":     noopBuiltin{},
	"true":  trueBuiltin{},
	"false": falseBuiltin{},
}

func (Registry) Builtin(name string) (env.Builtin, bool) {
	b, ok := table[name]
	return b, ok
}

func succeed(status exitstatus.ExitStatus) (exitstatus.Waiter, error) {
	return func(context.Context) exitstatus.ExitStatus { return status }, nil
}

type trueBuiltin struct{}

func (trueBuiltin) Run(context.Context, []string, *env.Restorer) (exitstatus.Waiter, error) {
	return succeed(exitstatus.SUCCESS)
}

type falseBuiltin struct{}

func (falseBuiltin) Run(context.Context, []string, *env.Restorer) (exitstatus.Waiter, error) {
	return succeed(exitstatus.ERROR)
}

type noopBuiltin struct{}

func (noopBuiltin) Run(context.Context, []string, *env.Restorer) (exitstatus.Waiter, error) {
	return succeed(exitstatus.SUCCESS)
}

// echoBuiltin writes its arguments, space-joined, followed by a newline, to
// fd 1. It does not interpret backslash escapes (the XSI `-e` extension is
// out of scope).
type echoBuiltin struct{}

func (echoBuiltin) Run(ctx context.Context, args []string, r *env.Restorer) (exitstatus.Waiter, error) {
	entry, ok := r.FileDesc(1)
	if !ok {
		return succeed(exitstatus.SUCCESS)
	}
	out := strings.Join(args, " ") + "\n"
	if err := r.WriteAll(ctx, entry.Handle, []byte(out)); err != nil {
		return nil, shellerr.RedirectIO("write", "", err)
	}
	return succeed(exitstatus.SUCCESS)
}

// pwdBuiltin writes the current working directory followed by a newline.
type pwdBuiltin struct{}

func (pwdBuiltin) Run(ctx context.Context, _ []string, r *env.Restorer) (exitstatus.Waiter, error) {
	entry, ok := r.FileDesc(1)
	if !ok {
		return succeed(exitstatus.SUCCESS)
	}
	if err := r.WriteAll(ctx, entry.Handle, []byte(r.Cwd()+"\n")); err != nil {
		return nil, shellerr.RedirectIO("write", "", err)
	}
	return succeed(exitstatus.SUCCESS)
}

// cdBuiltin changes the restorer's (and so the enclosing shell's, since cd's
// effects are never local to one command) working directory, honoring
// $CDPATH and `cd -` per SPEC_FULL.md's supplemented behavior. A target
// that is not an existing directory is an error; after `cd -` or a $CDPATH
// match the new directory is written to fd 1.
type cdBuiltin struct{}

func (cdBuiltin) Run(ctx context.Context, args []string, r *env.Restorer) (exitstatus.Waiter, error) {
	var target string
	switch len(args) {
	case 0:
		home, ok := r.Var(env.HomeVar)
		if !ok {
			return nil, shellerr.Command("cd", "", nil)
		}
		target = home
	case 1:
		if args[0] == "-" {
			oldpwd, ok := r.Var(env.OldPwdVar)
			if !ok {
				return nil, shellerr.Command("cd", "-", nil)
			}
			target = oldpwd
		} else {
			target = args[0]
		}
	default:
		return nil, shellerr.Command("cd", "", nil)
	}

	cdPath, _ := r.Var(env.CdPathVar)
	resolved, usedCdPath := env.ResolveCdTarget(r.Cwd(), target, cdPath, dirExists)
	if !dirExists(resolved) {
		return nil, shellerr.Command("cd", resolved, os.ErrNotExist)
	}

	oldCwd := r.Cwd()
	if err := r.ChangeCwd(resolved); err != nil {
		return nil, shellerr.RedirectIO("cd", resolved, err)
	}
	r.SetVar(env.OldPwdVar, oldCwd)
	r.SetVar(env.PwdVar, resolved)
	r.ClearVars()
	if usedCdPath || (len(args) == 1 && args[0] == "-") {
		if entry, ok := r.FileDesc(1); ok {
			if err := r.WriteAll(ctx, entry.Handle, []byte(resolved+"\n")); err != nil {
				return nil, shellerr.RedirectIO("write", "", err)
			}
		}
	}
	return succeed(exitstatus.SUCCESS)
}

func dirExists(path string) bool {
	// A minimal, side-effect-free existence check; a nonexistent or
	// non-directory candidate is simply skipped in $CDPATH search order.
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// shiftBuiltin implements `shift [n]`.
type shiftBuiltin struct{}

func (shiftBuiltin) Run(_ context.Context, args []string, r *env.Restorer) (exitstatus.Waiter, error) {
	n := 1
	if len(args) == 1 {
		parsed, err := strconv.Atoi(args[0])
		if err != nil || parsed < 0 {
			return nil, shellerr.Command("shift", args[0], nil)
		}
		n = parsed
	} else if len(args) > 1 {
		return nil, shellerr.Command("shift", "", nil)
	}
	if n > r.ArgsLen() {
		return nil, shellerr.Command("shift", "", nil)
	}
	r.ShiftArgs(n)
	return succeed(exitstatus.SUCCESS)
}
