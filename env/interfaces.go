package env

import (
	"context"

	"github.com/ipetkov/conch-runtime-go/exitstatus"
	"github.com/ipetkov/conch-runtime-go/iohandle"
)

// Arguments exposes the shell's name and positional parameters.
type Arguments interface {
	// Name returns the shell name ($0). Immutable for a given instance.
	Name() string
	// Arg returns positional parameter i; index 0 is the shell name.
	Arg(i int) (string, bool)
	// ArgsLen returns the number of positional parameters (excluding $0).
	ArgsLen() int
	// Args returns the current positional parameters (excluding $0).
	Args() []string
	// SetArgs installs new positional parameters, returning the old ones.
	SetArgs(newArgs []string) []string
	// ShiftArgs drops the first n positional parameters. A no-op when n==0;
	// clears them entirely when n >= ArgsLen().
	ShiftArgs(n int)
}

// Variables exposes shell variable storage.
type Variables interface {
	// Var returns a variable's value and whether it is set.
	Var(name string) (string, bool)
	// SetVar sets a variable's value, preserving any existing exported flag.
	SetVar(name, value string)
	// EnvVars returns all currently exported (name, value) pairs.
	EnvVars() []EnvPair
	// ExportedVar returns a variable's value and exported flag.
	ExportedVar(name string) (value string, exported bool, ok bool)
	// SetExportedVar sets a variable's value and exported flag explicitly.
	SetExportedVar(name, value string, exported bool)
	// UnsetVar removes a variable entirely.
	UnsetVar(name string)
}

// FuncBody is a callable shell function body: the same Spawn contract
// commands implement (§4.5), held behind a cheaply cloneable interface
// value so recursive invocation needs no special casing.
type FuncBody interface {
	Spawn(ctx context.Context, e Environment) (exitstatus.Waiter, error)
}

// Functions exposes shell function storage.
type Functions interface {
	Func(name string) (FuncBody, bool)
	SetFunc(name string, body FuncBody)
	UnsetFunc(name string)
	HasFunc(name string) bool
}

// FileDesc exposes the shell's virtual file descriptor table.
type FileDesc interface {
	FileDesc(fd int) (FdEntry, bool)
	SetFileDesc(fd int, entry FdEntry)
	CloseFileDesc(fd int)
}

// FileDescOpener opens new file handles and pipes.
type FileDescOpener interface {
	OpenPath(path string, opts OpenOptions) (iohandle.Handle, error)
	OpenPipe() (Pipe, error)
}

// WorkingDirectory exposes the shell's virtual current working directory,
// which never mutates the host process's actual CWD.
type WorkingDirectory interface {
	// Cwd returns the absolute current working directory.
	Cwd() string
	// PathRelativeToCwd resolves p against Cwd, leaving absolute paths
	// untouched.
	PathRelativeToCwd(p string) string
	// ChangeCwd sets a new current working directory.
	ChangeCwd(p string) error
}

// LastStatus exposes the exit status of the most recently run command.
type LastStatus interface {
	LastStatus() exitstatus.ExitStatus
	SetLastStatus(s exitstatus.ExitStatus)
}

// Builtin is a shell builtin command: its argument parsing and output are
// peripheral (§1); what the core cares about is this dispatch contract.
// The restorer passed in is the same restorer simple_command built up for
// local redirects/assignments; a builtin that wants its effects to persist
// clears it before returning (§4.5 step 5).
type Builtin interface {
	Run(ctx context.Context, args []string, r *Restorer) (exitstatus.Waiter, error)
}

// Builtins exposes the shell's builtin registry.
type Builtins interface {
	Builtin(name string) (Builtin, bool)
}

// Spawner converts an ExecutableData snapshot into a running child process.
type Spawner interface {
	SpawnExecutable(ctx context.Context, data ExecutableData) (exitstatus.Waiter, error)
}

// AsyncIO performs non-blocking reads/writes against file handles.
type AsyncIO interface {
	// ReadAll reads a handle to EOF.
	ReadAll(ctx context.Context, h iohandle.Handle) ([]byte, error)
	// WriteAll writes data to a handle, waiting for completion.
	WriteAll(ctx context.Context, h iohandle.Handle, data []byte) error
	// WriteAllBestEffort writes data without waiting and without
	// propagating errors (e.g. a reader that closed early on a heredoc).
	WriteAllBestEffort(h iohandle.Handle, data []byte)
}

// ReportFailure asynchronously emits a diagnostic for a non-fatal error.
type ReportFailure interface {
	ReportFailure(ctx context.Context, err error)
}

// SubEnvironment produces a cheap, observationally independent duplicate.
type SubEnvironment interface {
	SubEnv() Environment
}

// Interactive reports whether the environment is running interactively.
type Interactive interface {
	Interactive() bool
}

// FrameDepth tracks function-call nesting for return/scoping (spec-external;
// the core only pushes/pops).
type FrameDepth interface {
	PushFrame()
	PopFrame()
	FrameDepth() int
}

// Environment is the full capability set an Env (or a Restorer wrapping
// one) must satisfy. Operations should depend on the narrowest capability
// interface they actually need rather than on Environment itself.
type Environment interface {
	Arguments
	Variables
	Functions
	FileDesc
	FileDescOpener
	WorkingDirectory
	LastStatus
	Builtins
	Spawner
	AsyncIO
	ReportFailure
	SubEnvironment
	Interactive
	FrameDepth
}
