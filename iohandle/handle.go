// Package iohandle wraps *os.File behind a reference-counted handle so the
// core can hand a file descriptor to a spawned child exclusively (dup'ing
// only when the handle is actually aliased), matching the "shareable
// pointer with try_unwrap fallback" resource model of §5.
package iohandle

import (
	"fmt"
	"io"
	"sync/atomic"
	"syscall"
)

// Handle is a cheaply cloneable reference to an open file or pipe end.
// The zero value is not valid; use Wrap.
type Handle struct {
	file *fileRef
}

type fileRef struct {
	f    file
	refs int32 // atomic; number of live Handles pointing at f
}

// file is the minimal surface this package needs from *os.File, so tests
// can supply an in-memory double without a real fd.
type file interface {
	io.ReadWriteCloser
	Fd() uintptr
	Name() string
}

// Wrap creates a new, exclusively-owned Handle around an open file.
func Wrap(f file) Handle {
	return Handle{file: &fileRef{f: f, refs: 1}}
}

// Clone returns a new reference to the same underlying file, bumping the
// share count. Both the original and the clone must be Closed independently.
func (h Handle) Clone() Handle {
	atomic.AddInt32(&h.file.refs, 1)
	return h
}

// Close releases this reference, closing the underlying file once the last
// reference is gone.
func (h Handle) Close() error {
	if atomic.AddInt32(&h.file.refs, -1) == 0 {
		return h.file.f.Close()
	}
	return nil
}

// Read/Write forward to the underlying file.
func (h Handle) Read(p []byte) (int, error)  { return h.file.f.Read(p) }
func (h Handle) Write(p []byte) (int, error) { return h.file.f.Write(p) }

// Fd returns the OS file descriptor number.
func (h Handle) Fd() uintptr { return h.file.f.Fd() }

// Name returns the underlying file's name, for diagnostics.
func (h Handle) Name() string { return h.file.f.Name() }

// IsZero reports whether this is the unset zero value rather than a wrapped
// file.
func (h Handle) IsZero() bool { return h.file == nil }

// Shared reports whether more than one Handle currently aliases this file.
func (h Handle) Shared() bool {
	return atomic.LoadInt32(&h.file.refs) > 1
}

// TryUnwrap returns a Handle suitable for exclusive ownership transfer (e.g.
// handing a standard stream to a child process). If this Handle is not
// aliased it is returned unchanged; otherwise the underlying fd is
// duplicated via dup(2) so the original reference remains valid.
func (h Handle) TryUnwrap() (Handle, error) {
	if !h.Shared() {
		return h, nil
	}
	newFd, err := syscall.Dup(int(h.file.f.Fd()))
	if err != nil {
		return Handle{}, fmt.Errorf("dup %s: %w", h.file.f.Name(), err)
	}
	return Wrap(dupFile{fd: newFd, name: h.file.f.Name(), under: h.file.f}), nil
}

// dupFile adapts a raw duplicated fd to the file interface without pulling
// in os.NewFile's extra bookkeeping for every duplication.
type dupFile struct {
	fd    int
	name  string
	under file
}

func (d dupFile) Read(p []byte) (int, error) {
	n, err := syscall.Read(d.fd, p)
	if n == 0 && err == nil {
		return 0, io.EOF
	}
	return n, err
}

func (d dupFile) Write(p []byte) (int, error) { return syscall.Write(d.fd, p) }
func (d dupFile) Close() error                { return syscall.Close(d.fd) }
func (d dupFile) Fd() uintptr                 { return uintptr(d.fd) }
func (d dupFile) Name() string                { return d.name }
