package env

// varBackup records a variable's value before a restorer's first write to
// it. present=false means the key was unset before that write.
type varBackup struct {
	present bool
	value   Variable
}

// fdBackup records a file descriptor slot's contents before a restorer's
// first write to it. present=false means the fd was closed before that
// write.
type fdBackup struct {
	present bool
	entry   FdEntry
}

// Restorer wraps an Environment and records the original value of every
// variable and file descriptor it touches, so the scope can be rolled back
// atomically on exit (§4.2). It implements Environment itself by embedding
// the wrapped one and forwarding everything except the write surfaces that
// need backing up — so an operation that wants scoped effects just passes
// a *Restorer wherever an Environment is expected.
//
// Restorers nest: wrapping a *Restorer in another *Restorer is how the
// "at most one restorer active at a time" discipline (§5) composes when an
// inner scope (a function call) sits inside an outer one (local
// redirections around the call).
type Restorer struct {
	Environment
	varOverrides map[string]varBackup
	fdOverrides  map[int]fdBackup
}

// NewRestorer wraps e in a fresh Restorer with no recorded backups.
func NewRestorer(e Environment) *Restorer {
	return &Restorer{Environment: e}
}

// BackupVar records e's current value for name, unless a backup for name
// already exists (first-write-wins, §4.2).
func (r *Restorer) BackupVar(name string) {
	if _, seen := r.varOverrides[name]; seen {
		return
	}
	if r.varOverrides == nil {
		r.varOverrides = make(map[string]varBackup)
	}
	value, exported, ok := r.Environment.ExportedVar(name)
	if !ok {
		r.varOverrides[name] = varBackup{present: false}
		return
	}
	r.varOverrides[name] = varBackup{present: true, value: Variable{Value: value, Exported: exported}}
}

// BackupRedirect records e's current file descriptor entry for fd, unless a
// backup for fd already exists.
func (r *Restorer) BackupRedirect(fd int) {
	if _, seen := r.fdOverrides[fd]; seen {
		return
	}
	if r.fdOverrides == nil {
		r.fdOverrides = make(map[int]fdBackup)
	}
	entry, ok := r.Environment.FileDesc(fd)
	if !ok {
		r.fdOverrides[fd] = fdBackup{present: false}
		return
	}
	r.fdOverrides[fd] = fdBackup{present: true, entry: entry}
}

// RestoreVars replays every recorded variable backup and clears the
// recorded set; order is immaterial since each key appears at most once.
func (r *Restorer) RestoreVars() {
	for name, b := range r.varOverrides {
		if b.present {
			r.Environment.SetExportedVar(name, b.value.Value, b.value.Exported)
		} else {
			r.Environment.UnsetVar(name)
		}
	}
	r.varOverrides = nil
}

// RestoreRedirects replays every recorded file descriptor backup and clears
// the recorded set.
func (r *Restorer) RestoreRedirects() {
	for fd, b := range r.fdOverrides {
		if b.present {
			r.Environment.SetFileDesc(fd, b.entry)
		} else {
			r.Environment.CloseFileDesc(fd)
		}
	}
	r.fdOverrides = nil
}

// ClearVars forgets recorded variable backups without touching state — used
// when a builtin decides its variable effects must persist.
func (r *Restorer) ClearVars() { r.varOverrides = nil }

// ClearRedirects forgets recorded file descriptor backups without touching
// state.
func (r *Restorer) ClearRedirects() { r.fdOverrides = nil }

// Close restores both axes. Callers should `defer r.Close()` immediately
// after constructing a Restorer whose scope should roll back on any exit
// path, mirroring the "dropping a restorer implicitly restores both axes"
// semantics of §4.2 in a language without destructors.
func (r *Restorer) Close() {
	r.RestoreVars()
	r.RestoreRedirects()
}

// ---- write surfaces: back up, then delegate ----

func (r *Restorer) SetVar(name, value string) {
	r.BackupVar(name)
	r.Environment.SetVar(name, value)
}

func (r *Restorer) SetExportedVar(name, value string, exported bool) {
	r.BackupVar(name)
	r.Environment.SetExportedVar(name, value, exported)
}

func (r *Restorer) UnsetVar(name string) {
	r.BackupVar(name)
	r.Environment.UnsetVar(name)
}

func (r *Restorer) SetFileDesc(fd int, entry FdEntry) {
	r.BackupRedirect(fd)
	r.Environment.SetFileDesc(fd, entry)
}

func (r *Restorer) CloseFileDesc(fd int) {
	r.BackupRedirect(fd)
	r.Environment.CloseFileDesc(fd)
}

var _ Environment = (*Restorer)(nil)
