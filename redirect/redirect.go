// Package redirect evaluates redirection syntax into RedirectAction values
// and applies them against a Restorer, per §4.3.
package redirect

import (
	"context"
	"strconv"
	"strings"

	"github.com/ipetkov/conch-runtime-go/core/shellerr"
	"github.com/ipetkov/conch-runtime-go/env"
	"github.com/ipetkov/conch-runtime-go/word"
)

// Kind names a redirection's variant.
type Kind int

const (
	// Read is `<`.
	Read Kind = iota
	// Write is `>`.
	Write
	// ReadWrite is `<>`.
	ReadWrite
	// Append is `>>`.
	Append
	// Clobber is `>|`.
	Clobber
	// DupRead is `<&`.
	DupRead
	// DupWrite is `>&`.
	DupWrite
	// HereDoc is `<<`/`<<-`.
	HereDoc
)

func (k Kind) defaultFd() int {
	switch k {
	case Read, DupRead, HereDoc, ReadWrite:
		return 0
	default:
		return 1
	}
}

// Spec describes one redirection's syntax, independent of any concrete AST:
// which fd it targets (nil means the kind's default), and the word(s) that
// supply its path/fd-source/heredoc body.
type Spec struct {
	Kind Kind
	Fd   *int
	// Word supplies the target path (file-opening kinds) or the fd source
	// text (Dup kinds, evaluated then parsed as "-" or a small integer).
	Word word.Word
	// HereDocBody supplies a heredoc's contents, pre-joined by the parser
	// (tilde expansion and field splitting never apply to heredoc bodies,
	// only the quoting-controlled parameter/command substitution the
	// parser already baked into the word tree).
	HereDocBody word.Word
}

// ActionKind names what a RedirectAction does to the fd table.
type ActionKind int

const (
	ActionOpen ActionKind = iota
	ActionClose
)

// Action is the effect a redirection evaluates to, ready to apply to a
// Restorer. Per §4.3 it is produced in one step (Eval) and applied in a
// second (Apply), so callers may inspect it before committing it to the
// environment.
type Action struct {
	Kind  ActionKind
	Fd    int
	Entry env.FdEntry
}

// Apply commits the action against r, backing up the fd's prior contents
// first so the restorer can roll it back (§4.2/§4.3).
func (a Action) Apply(r *env.Restorer) {
	switch a.Kind {
	case ActionClose:
		r.CloseFileDesc(a.Fd)
	default:
		r.SetFileDesc(a.Fd, a.Entry)
	}
}

// Eval evaluates spec against e, producing the RedirectAction and the
// resolved target fd. Tilde expansion is always enabled for a path operand
// (§4.3); field splitting applies only when the environment is interactive,
// per the "ambiguous redirect" rule below.
func Eval(ctx context.Context, e env.Environment, spec Spec) (Action, error) {
	fd := spec.Kind.defaultFd()
	if spec.Fd != nil {
		fd = *spec.Fd
	}

	switch spec.Kind {
	case Read, Write, ReadWrite, Append, Clobber:
		path, err := evalSingleField(ctx, e, spec.Word, "redirect path")
		if err != nil {
			return Action{}, err
		}
		opts := env.OpenOptions{Perms: permsFor(spec.Kind)}
		switch spec.Kind {
		case Write, Clobber:
			opts.Create = true
			opts.Truncate = true
			opts.Clobber = spec.Kind == Clobber
		case Append:
			opts.Create = true
			opts.Append = true
			opts.Clobber = true
		}
		h, err := e.OpenPath(path, opts)
		if err != nil {
			return Action{}, shellerr.RedirectIO("open", path, err)
		}
		return Action{Kind: ActionOpen, Fd: fd, Entry: env.FdEntry{Handle: h, Perms: opts.Perms}}, nil

	case DupRead, DupWrite:
		return evalDup(ctx, e, spec, fd)

	case HereDoc:
		return evalHereDoc(ctx, e, spec, fd)
	}

	return Action{}, shellerr.RedirectStructural("redirect", "", nil)
}

func permsFor(k Kind) env.Perms {
	switch k {
	case Read:
		return env.Read
	case ReadWrite:
		return env.ReadWrite
	default:
		return env.Write
	}
}

// evalSingleField evaluates w with tilde expansion enabled; more than one
// resulting field is an "ambiguous redirect" (§4.3), which is a non-fatal
// structural error.
func evalSingleField(ctx context.Context, e env.Environment, w word.Word, what string) (string, error) {
	cfg := word.Config{Tilde: word.TildeFirst, Split: e.Interactive()}
	f, err := w.Eval(ctx, e, cfg)
	if err != nil {
		return "", err
	}
	if f.Len() > 1 {
		return "", shellerr.RedirectStructural("ambiguous", what, nil)
	}
	return f.Join(), nil
}

func evalDup(ctx context.Context, e env.Environment, spec Spec, fd int) (Action, error) {
	src, err := evalSingleField(ctx, e, spec.Word, "dup source")
	if err != nil {
		return Action{}, err
	}
	if src == "-" {
		return Action{Kind: ActionClose, Fd: fd}, nil
	}
	srcFd, err := strconv.Atoi(strings.TrimSpace(src))
	if err != nil {
		return Action{}, shellerr.RedirectStructural("bad fd source", src, err)
	}
	entry, ok := e.FileDesc(srcFd)
	if !ok {
		return Action{}, shellerr.RedirectStructural("bad fd source", src, nil)
	}
	wantRead := spec.Kind == DupRead
	if (wantRead && entry.Perms == env.Write) || (!wantRead && entry.Perms == env.Read) {
		return Action{}, shellerr.RedirectStructural("bad fd perms", src, nil)
	}
	return Action{Kind: ActionOpen, Fd: fd, Entry: env.FdEntry{Handle: entry.Handle.Clone(), Perms: entry.Perms}}, nil
}

func evalHereDoc(ctx context.Context, e env.Environment, spec Spec, fd int) (Action, error) {
	f, err := spec.HereDocBody.Eval(ctx, e, word.Config{Tilde: word.TildeNone, Split: false})
	if err != nil {
		return Action{}, err
	}
	body := []byte(f.Join())

	p, err := e.OpenPipe()
	if err != nil {
		return Action{}, shellerr.RedirectIO("pipe", "", err)
	}
	// Best-effort: a command that never reads its whole heredoc (e.g.
	// `head -n1 <<EOF`) must not hang the spawn or fail the command when
	// its read end closes early (§4.3).
	e.WriteAllBestEffort(p.Writer, body)
	return Action{Kind: ActionOpen, Fd: fd, Entry: env.FdEntry{Handle: p.Reader, Perms: env.Read}}, nil
}
