package env

import (
	"context"
	"io"
	"os"
	"os/exec"
	"syscall"

	"github.com/ipetkov/conch-runtime-go/core/invariant"
	"github.com/ipetkov/conch-runtime-go/exitstatus"
	"github.com/ipetkov/conch-runtime-go/iohandle"
)

// LocalOpener implements FileDescOpener against the host filesystem.
type LocalOpener struct{}

func (LocalOpener) OpenPath(path string, opts OpenOptions) (iohandle.Handle, error) {
	flag := opts.Perms.OpenFlag()
	if opts.Create {
		flag |= os.O_CREATE
	}
	if opts.Append {
		flag |= os.O_APPEND
	}
	if opts.Truncate {
		flag |= os.O_TRUNC
	}
	if opts.Create && !opts.Clobber {
		flag |= os.O_EXCL
	}
	f, err := os.OpenFile(path, flag, 0o644)
	if err != nil {
		return iohandle.Handle{}, err
	}
	return iohandle.Wrap(f), nil
}

func (LocalOpener) OpenPipe() (Pipe, error) {
	r, w, err := os.Pipe()
	if err != nil {
		return Pipe{}, err
	}
	return Pipe{Reader: iohandle.Wrap(r), Writer: iohandle.Wrap(w)}, nil
}

// LocalAsyncIO implements AsyncIO by running blocking I/O on goroutines,
// the same "no OS threads introduced by the core beyond what blocking I/O
// needs" model §5 describes.
type LocalAsyncIO struct{}

func (LocalAsyncIO) ReadAll(ctx context.Context, h iohandle.Handle) ([]byte, error) {
	type result struct {
		data []byte
		err  error
	}
	done := make(chan result, 1)
	go func() {
		data, err := io.ReadAll(h)
		done <- result{data, err}
	}()
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-done:
		return r.data, r.err
	}
}

func (LocalAsyncIO) WriteAll(ctx context.Context, h iohandle.Handle, data []byte) error {
	done := make(chan error, 1)
	go func() {
		_, err := h.Write(data)
		done <- err
	}()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		return err
	}
}

// WriteAllBestEffort fires the write on its own goroutine and never reports
// the outcome: a heredoc writer whose reader closed early (broken pipe)
// must not fail the command that issued the heredoc (§4.3).
func (LocalAsyncIO) WriteAllBestEffort(h iohandle.Handle, data []byte) {
	go func() {
		_, _ = h.Write(data)
		_ = h.Close()
	}()
}

// LocalSpawner implements Spawner using os/exec, the "executable spawner"
// collaborator of §6.
type LocalSpawner struct{}

func (LocalSpawner) SpawnExecutable(ctx context.Context, data ExecutableData) (exitstatus.Waiter, error) {
	invariant.Precondition(data.Name != "", "executable name must not be empty")

	cmd := exec.CommandContext(ctx, data.Name, data.Argv...)
	cmd.Dir = data.Dir
	cmd.Env = make([]string, 0, len(data.Env))
	for _, kv := range data.Env {
		cmd.Env = append(cmd.Env, kv.Name+"="+kv.Value)
	}
	if stdinReader, ok := asReader(data.Stdin); ok {
		cmd.Stdin = stdinReader
	}
	if stdoutWriter, ok := asWriter(data.Stdout); ok {
		cmd.Stdout = stdoutWriter
	}
	if stderrWriter, ok := asWriter(data.Stderr); ok {
		cmd.Stderr = stderrWriter
	}

	if err := cmd.Start(); err != nil {
		return nil, classifyStartError(data.Name, err)
	}

	return func(ctx context.Context) exitstatus.ExitStatus {
		err := cmd.Wait()
		if err == nil {
			return exitstatus.SUCCESS
		}
		if exitErr, ok := err.(*exec.ExitError); ok {
			if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
				return exitstatus.Signal(int32(ws.Signal()))
			}
			return exitstatus.Code(int32(exitErr.ExitCode()))
		}
		return exitstatus.ERROR
	}, nil
}

func asReader(h iohandle.Handle) (io.Reader, bool) {
	if h.IsZero() {
		return nil, false
	}
	return h, true
}

func asWriter(h iohandle.Handle) (io.Writer, bool) {
	if h.IsZero() {
		return nil, false
	}
	return h, true
}

func classifyStartError(name string, err error) error {
	if os.IsPermission(err) {
		return &execError{name: name, cause: err, notExecutable: true}
	}
	if os.IsNotExist(err) || isExecNotFound(err) {
		return &execError{name: name, cause: err, notFound: true}
	}
	return &execError{name: name, cause: err}
}

func isExecNotFound(err error) bool {
	_, ok := err.(*exec.Error)
	return ok
}

// execError classifies an executable-spawn failure; spawn/simple_command.go
// maps these into the 126/127/1 exit codes per §4.5 step 5.
type execError struct {
	name          string
	cause         error
	notExecutable bool
	notFound      bool
}

func (e *execError) Error() string { return e.name + ": " + e.cause.Error() }
func (e *execError) Unwrap() error { return e.cause }
func (e *execError) NotExecutable() bool { return e.notExecutable }
func (e *execError) NotFound() bool      { return e.notFound }
