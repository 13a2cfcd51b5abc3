package env

import (
	"context"

	"github.com/ipetkov/conch-runtime-go/core/invariant"
	"github.com/ipetkov/conch-runtime-go/exitstatus"
	"github.com/ipetkov/conch-runtime-go/iohandle"
)

// Env is the concrete, batteries-included implementation of Environment.
// It composes the capability traits of §4.1 by delegating to its own
// fields rather than to separate sub-components — a single struct is
// simpler to reason about than a bag of interfaces for the reference
// implementation, while callers are still free to depend on just the
// capability interfaces they need.
type Env struct {
	name string

	args  *box[[]string]
	vars  *box[map[string]Variable]
	funcs *box[map[string]FuncBody]
	fds   *box[map[int]FdEntry]

	cwd         string
	interactive bool
	lastStatus  exitstatus.ExitStatus
	frameDepth  int

	opener   FileDescOpener
	asyncio  AsyncIO
	spawner  Spawner
	builtins Builtins
	reporter func(ctx context.Context, err error)
}

// New builds a fresh, top-level Env. Collaborators (the opener, async I/O
// backend, executable spawner, and builtin registry) are supplied by the
// embedder per §6.
func New(name string, args []string, cwd string, opener FileDescOpener, asyncio AsyncIO, spawner Spawner, builtins Builtins, reporter func(ctx context.Context, err error)) *Env {
	invariant.Precondition(opener != nil, "opener must not be nil")
	invariant.Precondition(asyncio != nil, "asyncio must not be nil")
	invariant.Precondition(spawner != nil, "spawner must not be nil")

	argsCopy := append([]string(nil), args...)
	return &Env{
		name:       name,
		args:       newBox(argsCopy),
		vars:       newBox(map[string]Variable{}),
		funcs:      newBox(map[string]FuncBody{}),
		fds:        newBox(map[int]FdEntry{}),
		cwd:        cwd,
		lastStatus: exitstatus.SUCCESS,
		opener:     opener,
		asyncio:    asyncio,
		spawner:    spawner,
		builtins:   builtins,
		reporter:   reporter,
	}
}

var _ Environment = (*Env)(nil)

// ---- Arguments ----

func (e *Env) Name() string { return e.name }

func (e *Env) Arg(i int) (string, bool) {
	if i == 0 {
		return e.name, true
	}
	idx := i - 1
	if idx < 0 || idx >= len(e.args.val) {
		return "", false
	}
	return e.args.val[idx], true
}

func (e *Env) ArgsLen() int { return len(e.args.val) }

func (e *Env) Args() []string { return e.args.val }

func (e *Env) SetArgs(newArgs []string) []string {
	old := e.args.val
	e.args = newBox(append([]string(nil), newArgs...))
	return old
}

func (e *Env) ShiftArgs(n int) {
	if n <= 0 {
		return
	}
	if n >= len(e.args.val) {
		e.args = e.args.forWrite(func([]string) []string { return nil })
		e.args.val = nil
		return
	}
	e.args = e.args.forWrite(func(s []string) []string {
		// Preserve the allocation: reslicing never writes to the backing
		// array, so the same slice is kept (shared or not) and only the
		// view is advanced, with no copy.
		return s
	})
	e.args.val = e.args.val[n:]
}

// ---- Variables ----

func (e *Env) Var(name string) (string, bool) {
	v, ok := e.vars.val[name]
	if !ok {
		return "", false
	}
	return v.Value, true
}

func (e *Env) SetVar(name, value string) {
	exported := false
	if old, ok := e.vars.val[name]; ok {
		exported = old.Exported
	}
	e.setVarEntry(name, Variable{Value: value, Exported: exported})
}

func (e *Env) EnvVars() []EnvPair {
	var out []EnvPair
	for k, v := range e.vars.val {
		if v.Exported {
			out = append(out, EnvPair{Name: k, Value: v.Value})
		}
	}
	return out
}

func (e *Env) ExportedVar(name string) (string, bool, bool) {
	v, ok := e.vars.val[name]
	if !ok {
		return "", false, false
	}
	return v.Value, v.Exported, true
}

func (e *Env) SetExportedVar(name, value string, exported bool) {
	e.setVarEntry(name, Variable{Value: value, Exported: exported})
}

func (e *Env) UnsetVar(name string) {
	if _, ok := e.vars.val[name]; !ok {
		return
	}
	e.vars = e.vars.forWrite(cloneVarMap)
	delete(e.vars.val, name)
}

func (e *Env) setVarEntry(name string, v Variable) {
	e.vars = e.vars.forWrite(cloneVarMap)
	e.vars.val[name] = v
}

func cloneVarMap(m map[string]Variable) map[string]Variable {
	out := make(map[string]Variable, len(m)+1)
	for k, v := range m {
		out[k] = v
	}
	return out
}

// ---- Functions ----

func (e *Env) Func(name string) (FuncBody, bool) {
	f, ok := e.funcs.val[name]
	return f, ok
}

func (e *Env) SetFunc(name string, body FuncBody) {
	e.funcs = e.funcs.forWrite(cloneFuncMap)
	e.funcs.val[name] = body
}

func (e *Env) UnsetFunc(name string) {
	if _, ok := e.funcs.val[name]; !ok {
		return
	}
	e.funcs = e.funcs.forWrite(cloneFuncMap)
	delete(e.funcs.val, name)
}

func (e *Env) HasFunc(name string) bool {
	_, ok := e.funcs.val[name]
	return ok
}

func cloneFuncMap(m map[string]FuncBody) map[string]FuncBody {
	out := make(map[string]FuncBody, len(m)+1)
	for k, v := range m {
		out[k] = v
	}
	return out
}

// ---- FileDesc ----

func (e *Env) FileDesc(fd int) (FdEntry, bool) {
	entry, ok := e.fds.val[fd]
	return entry, ok
}

func (e *Env) SetFileDesc(fd int, entry FdEntry) {
	e.fds = e.fds.forWrite(cloneFdMap)
	e.fds.val[fd] = entry
}

func (e *Env) CloseFileDesc(fd int) {
	if _, ok := e.fds.val[fd]; !ok {
		return
	}
	e.fds = e.fds.forWrite(cloneFdMap)
	delete(e.fds.val, fd)
}

func cloneFdMap(m map[int]FdEntry) map[int]FdEntry {
	out := make(map[int]FdEntry, len(m)+1)
	for k, v := range m {
		out[k] = v
	}
	return out
}

// ---- FileDescOpener / AsyncIO / Spawner / Builtins (delegate to collaborators) ----

func (e *Env) OpenPath(path string, opts OpenOptions) (iohandle.Handle, error) {
	return e.opener.OpenPath(path, opts)
}

func (e *Env) OpenPipe() (Pipe, error) { return e.opener.OpenPipe() }

func (e *Env) ReadAll(ctx context.Context, h iohandle.Handle) ([]byte, error) {
	return e.asyncio.ReadAll(ctx, h)
}

func (e *Env) WriteAll(ctx context.Context, h iohandle.Handle, data []byte) error {
	return e.asyncio.WriteAll(ctx, h, data)
}

func (e *Env) WriteAllBestEffort(h iohandle.Handle, data []byte) {
	e.asyncio.WriteAllBestEffort(h, data)
}

func (e *Env) SpawnExecutable(ctx context.Context, data ExecutableData) (exitstatus.Waiter, error) {
	return e.spawner.SpawnExecutable(ctx, data)
}

func (e *Env) Builtin(name string) (Builtin, bool) {
	if e.builtins == nil {
		return nil, false
	}
	return e.builtins.Builtin(name)
}

// ---- WorkingDirectory ----

func (e *Env) Cwd() string { return e.cwd }

func (e *Env) PathRelativeToCwd(p string) string {
	return resolveAgainst(e.cwd, p)
}

func (e *Env) ChangeCwd(p string) error {
	e.cwd = p
	return nil
}

// ---- LastStatus ----

func (e *Env) LastStatus() exitstatus.ExitStatus     { return e.lastStatus }
func (e *Env) SetLastStatus(s exitstatus.ExitStatus) { e.lastStatus = s }

// ---- Interactive / FrameDepth ----

func (e *Env) Interactive() bool   { return e.interactive }
func (e *Env) SetInteractive(b bool) { e.interactive = b }

func (e *Env) PushFrame()      { e.frameDepth++ }
func (e *Env) PopFrame()       { invariant.Precondition(e.frameDepth > 0, "frame depth must not underflow"); e.frameDepth-- }
func (e *Env) FrameDepth() int { return e.frameDepth }

// ---- ReportFailure ----

func (e *Env) ReportFailure(ctx context.Context, err error) {
	if e.reporter != nil {
		e.reporter(ctx, err)
	}
}

// ---- SubEnvironment ----

// SubEnv returns a cheap, observationally independent copy: mutating a
// variable/FD/arg/CWD in the returned Env never changes e's corresponding
// value (§8 "Sub-environment isolation").
func (e *Env) SubEnv() Environment {
	return &Env{
		name:        e.name,
		args:        e.args.fork(),
		vars:        e.vars.fork(),
		funcs:       e.funcs.fork(),
		fds:         e.fds.fork(),
		cwd:         e.cwd,
		interactive: e.interactive,
		lastStatus:  e.lastStatus,
		frameDepth:  e.frameDepth,
		opener:      e.opener,
		asyncio:     e.asyncio,
		spawner:     e.spawner,
		builtins:    e.builtins,
		reporter:    e.reporter,
	}
}
