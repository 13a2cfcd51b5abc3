package spawn

import (
	"context"
	"os"
	"path/filepath"
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/ipetkov/conch-runtime-go/core/shellerr"
	"github.com/ipetkov/conch-runtime-go/env"
	"github.com/ipetkov/conch-runtime-go/exitstatus"
	"github.com/ipetkov/conch-runtime-go/fields"
	"github.com/ipetkov/conch-runtime-go/redirect"
	"github.com/ipetkov/conch-runtime-go/word"
)

// Assignment is one `name=word` prefix on a simple command.
type Assignment struct {
	Name  string
	Value word.Word
}

// SimpleCommand is the most intricate combinator (§4.5): it applies local
// redirects and assignments through a Restorer, then dispatches to a shell
// function, a builtin, or a resolved executable, classifying dispatch
// failure into the well-known 126/127 exit codes. Redirects and
// assignments persist past the command only when there is no command word
// at all (a bare `FOO=bar` assignment-only command).
type SimpleCommand struct {
	Assignments []Assignment
	Words       []word.Word
	Redirects   []redirect.Spec
}

func (n SimpleCommand) Spawn(ctx context.Context, e env.Environment) (exitstatus.Waiter, error) {
	r := env.NewRestorer(e)

	for _, spec := range n.Redirects {
		action, err := redirect.Eval(ctx, r, spec)
		if err != nil {
			return nil, err
		}
		action.Apply(r)
	}

	for _, a := range n.Assignments {
		f, err := a.Value.Eval(ctx, r, word.Config{Tilde: word.TildeFirst, Split: false})
		if err != nil {
			return nil, err
		}
		r.SetVar(a.Name, f.Join())
	}

	argv, err := n.evalWords(ctx, r)
	if err != nil {
		return nil, err
	}

	if len(argv) == 0 {
		// Assignment-only (or redirect-only) command: its effects persist
		// rather than unwinding with the (nonexistent) command.
		r.ClearVars()
		r.ClearRedirects()
		e.SetLastStatus(exitstatus.SUCCESS)
		return done(exitstatus.SUCCESS), nil
	}

	defer r.Close()

	name, args := argv[0], argv[1:]

	if body, ok := r.Func(name); ok {
		return FunctionCall{Name: name, Args: args}.dispatchBody(ctx, r, body)
	}

	if builtin, ok := r.Builtin(name); ok {
		waiter, err := builtin.Run(ctx, args, r)
		if err != nil {
			return nil, err
		}
		status := waiter(ctx)
		e.SetLastStatus(status)
		return done(status), nil
	}

	return n.spawnExecutable(ctx, r, e, name, args)
}

func (n SimpleCommand) evalWords(ctx context.Context, r *env.Restorer) ([]string, error) {
	var out []string
	for _, w := range n.Words {
		f, err := w.Eval(ctx, r, word.Config{Tilde: word.TildeFirst, Split: true})
		if err != nil {
			return nil, err
		}
		out = append(out, fields.Strings(f)...)
	}
	return out, nil
}

// dispatchBody lets SimpleCommand reuse FunctionCall's frame/arg handling
// without re-looking up the function by name.
func (c FunctionCall) dispatchBody(ctx context.Context, e env.Environment, body env.FuncBody) (exitstatus.Waiter, error) {
	old := e.SetArgs(c.Args)
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
	e.SetLastStatus(status)
	return done(status), nil
}

func (n SimpleCommand) spawnExecutable(ctx context.Context, r *env.Restorer, outer env.Environment, name string, args []string) (exitstatus.Waiter, error) {
	data := env.ExecutableData{
		Name: name,
		Argv: args,
		Env:  r.EnvVars(),
		Dir:  r.Cwd(),
	}
	if entry, ok := r.FileDesc(0); ok {
		data.Stdin = entry.Handle
	}
	if entry, ok := r.FileDesc(1); ok {
		data.Stdout = entry.Handle
	}
	if entry, ok := r.FileDesc(2); ok {
		data.Stderr = entry.Handle
	}

	waiter, err := r.SpawnExecutable(ctx, data)
	if err != nil {
		status := classifyDispatchError(ctx, r, name, err)
		outer.SetLastStatus(status)
		return done(status), nil
	}
	return func(ctx context.Context) exitstatus.ExitStatus {
		status := waiter(ctx)
		outer.SetLastStatus(status)
		return status
	}, nil
}

// dispatchError narrows an executable-spawn failure to NotExecutable/NotFound,
// matching env/local.go's execError without creating an import cycle back to
// env's internal type.
type dispatchError interface {
	NotExecutable() bool
	NotFound() bool
}

func classifyDispatchError(ctx context.Context, e env.Environment, name string, err error) exitstatus.ExitStatus {
	de, ok := err.(dispatchError)
	if !ok {
		e.ReportFailure(ctx, shellerr.Command("exec", name, err))
		return exitstatus.ERROR
	}
	switch {
	case de.NotExecutable():
		e.ReportFailure(ctx, shellerr.Command("exec", name, err))
		return exitstatus.CMD_NOT_EXECUTABLE
	case de.NotFound():
		msg := name + ": command not found"
		if suggestion := suggestCommand(e, name); suggestion != "" {
			msg += " (did you mean " + suggestion + "?)"
		}
		e.ReportFailure(ctx, shellerr.Command("exec", name, &notFoundError{msg: msg}))
		return exitstatus.CMD_NOT_FOUND
	default:
		e.ReportFailure(ctx, shellerr.Command("exec", name, err))
		return exitstatus.ERROR
	}
}

type notFoundError struct{ msg string }

func (e *notFoundError) Error() string { return e.msg }

// suggestCommand scans $PATH for the closest-spelled executable name to
// name, for a "command not found, did you mean..." hint. It never fails
// the command: a PATH read error, or no sufficiently close match, just
// yields no suggestion.
func suggestCommand(e env.Environment, name string) string {
	path, ok := e.Var("PATH")
	if !ok {
		return ""
	}

	var candidates []string
	for _, dir := range filepath.SplitList(path) {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, ent := range entries {
			if !ent.IsDir() {
				candidates = append(candidates, ent.Name())
			}
		}
	}
	if len(candidates) == 0 {
		return ""
	}

	best := fuzzy.RankFindFold(name, candidates)
	if len(best) == 0 {
		return ""
	}
	// Sort by increasing Levenshtein distance; only surface the closest
	// match when it's plausibly a typo rather than an unrelated command.
	sort.Sort(best)
	top := best[0]
	if top.Distance > len(name)/2+1 {
		return ""
	}
	return top.Target
}
