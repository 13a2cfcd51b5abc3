package env

import (
	"os"

	"github.com/ipetkov/conch-runtime-go/iohandle"
)

// Perms describes which directions a file descriptor may be used for.
type Perms int

const (
	Read Perms = iota
	Write
	ReadWrite
)

// Readable reports whether this permission class allows reading.
func (p Perms) Readable() bool { return p == Read || p == ReadWrite }

// Writable reports whether this permission class allows writing.
func (p Perms) Writable() bool { return p == Write || p == ReadWrite }

// OpenFlag returns the os.OpenFile flag bits implied by this permission
// class, to be combined with create/append/truncate bits by the caller.
func (p Perms) OpenFlag() int {
	switch p {
	case Read:
		return os.O_RDONLY
	case Write:
		return os.O_WRONLY
	default:
		return os.O_RDWR
	}
}

// Pipe is a freshly opened anonymous pipe.
type Pipe struct {
	Reader iohandle.Handle
	Writer iohandle.Handle
}

// OpenOptions controls how FileDescOpener.OpenPath opens a path.
type OpenOptions struct {
	Perms    Perms
	Create   bool
	Append   bool
	Truncate bool
	Clobber  bool // if false and Create, fail when the file pre-exists (noclobber)
}

// EnvPair is one exported (name, value) pair, as passed to a spawned
// executable.
type EnvPair struct {
	Name  string
	Value string
}

// Variable is a shell variable's value together with its exported flag.
type Variable struct {
	Value    string
	Exported bool
}

// FdEntry is one open file descriptor slot.
type FdEntry struct {
	Handle iohandle.Handle
	Perms  Perms
}

// ExecutableData is the ready-to-spawn snapshot handed to an executable
// spawner: a name, argv, explicit environment pairs, a working directory,
// and the three standard streams as owned handles.
type ExecutableData struct {
	Name  string
	Argv  []string
	Env   []EnvPair
	Dir   string
	Stdin  iohandle.Handle
	Stdout iohandle.Handle
	Stderr iohandle.Handle
}
