package word

import (
	"context"

	"github.com/ipetkov/conch-runtime-go/env"
	"github.com/ipetkov/conch-runtime-go/fields"
)

// Literal is a bare, unquoted run of characters: POSIX glob metacharacters
// (`*`, `?`, `[...]`) are intentionally NOT given special meaning here —
// pathname expansion against the filesystem is out of scope (§1 Non-goals);
// they evaluate as themselves.
type Literal string

func (w Literal) Eval(_ context.Context, e env.Environment, cfg Config) (fields.Fields[string], error) {
	return splitIfEnabled(e, string(w), cfg)
}

// SingleQuoted carries its contents through completely unexpanded and
// unsplit, always yielding exactly one field.
type SingleQuoted string

func (w SingleQuoted) Eval(context.Context, env.Environment, Config) (fields.Fields[string], error) {
	return fields.One(string(w)), nil
}

// Tilde expands a leading `~` to $HOME, when cfg.Tilde allows it at this
// position. A `~user` form is left unexpanded: the login-database lookup it
// requires has no portable Go API and is not done here.
type Tilde struct {
	// User is the optional `~user` suffix; "" means plain `~`.
	User string
	Rest Word
	// AtStart reports whether this tilde is the first component of its
	// enclosing word (the only position TildeFirst expands; TildeAll
	// expands whatever AtStart says).
	AtStart bool
}

func (w Tilde) Eval(ctx context.Context, e env.Environment, cfg Config) (fields.Fields[string], error) {
	eligible := cfg.Tilde == TildeAll || (cfg.Tilde == TildeFirst && w.AtStart)

	var prefix string
	// homeUnset is only meaningful when eligible && w.User == "": a bare `~`
	// with $HOME unset evaluates to Zero, not the literal "~" (§4.4's "Tilde
	// with HOME unset" boundary case), and is never folded into a literal
	// prefix.
	homeUnset := false
	switch {
	case !eligible:
		prefix = "~" + w.User
	case w.User != "":
		prefix = "~" + w.User
	default:
		home, ok := e.Var("HOME")
		if ok {
			prefix = home
		} else {
			homeUnset = true
		}
	}

	if w.Rest == nil {
		if homeUnset {
			return fields.Empty[string](), nil
		}
		return fields.One(prefix), nil
	}
	rest, err := w.Rest.Eval(ctx, e, Config{Tilde: TildeNone, Split: false})
	if err != nil {
		return fields.Fields[string]{}, err
	}
	return fields.One(prefix + rest.Join()), nil
}

func splitIfEnabled(e env.Environment, s string, cfg Config) (fields.Fields[string], error) {
	if !cfg.Split {
		return fields.One(s), nil
	}
	ifs, ok := e.Var(env.IfsVar)
	if !ok {
		ifs = env.DefaultIFS
	}
	return splitFieldsResult(SplitWithIFS(s, ifs)), nil
}
