package word

import (
	"context"

	"github.com/ipetkov/conch-runtime-go/arith"
	"github.com/ipetkov/conch-runtime-go/core/shellerr"
	"github.com/ipetkov/conch-runtime-go/env"
	"github.com/ipetkov/conch-runtime-go/fields"
	"github.com/ipetkov/conch-runtime-go/globpat"
)

// Param adapts a Parameter into a plain Word, for use as a Concat child.
type Param struct {
	P     Parameter
	Split bool
}

func (w Param) Eval(ctx context.Context, e env.Environment, cfg Config) (fields.Fields[string], error) {
	f, _, err := w.P.Eval(ctx, e, false)
	if err != nil {
		return fields.Fields[string]{}, err
	}
	return splitFieldsFurther(e, f, cfg.Split), nil
}

// funcWord adapts a plain function to the Word interface, for the
// substitution combinators below.
type funcWord func(ctx context.Context, e env.Environment, cfg Config) (fields.Fields[string], error)

func (f funcWord) Eval(ctx context.Context, e env.Environment, cfg Config) (fields.Fields[string], error) {
	return f(ctx, e, cfg)
}

func isUnsetOrNull(colon bool, f fields.Fields[string], set bool) bool {
	if !set {
		return true
	}
	return colon && f.IsNull()
}

// Default implements `${p-w}`/`${p:-w}`: substitute w when p is unset (":-"
// additionally when p is set but null).
func Default(colon bool, p Parameter, w Word) Word {
	return funcWord(func(ctx context.Context, e env.Environment, cfg Config) (fields.Fields[string], error) {
		f, set, err := p.Eval(ctx, e, false)
		if err != nil {
			return fields.Fields[string]{}, err
		}
		if isUnsetOrNull(colon, f, set) {
			return w.Eval(ctx, e, cfg)
		}
		return splitFieldsFurther(e, f, cfg.Split), nil
	})
}

// Assign implements `${p=w}`/`${p:=w}`: like Default, but also assigns w's
// value back to p. Fatal if p has no assignable name (§4.4 BadAssig).
func Assign(colon bool, p Parameter, w Word) Word {
	return funcWord(func(ctx context.Context, e env.Environment, cfg Config) (fields.Fields[string], error) {
		f, set, err := p.Eval(ctx, e, false)
		if err != nil {
			return fields.Fields[string]{}, err
		}
		if !isUnsetOrNull(colon, f, set) {
			return splitFieldsFurther(e, f, cfg.Split), nil
		}
		name, ok := p.AssignableName()
		if !ok {
			return fields.Fields[string]{}, shellerr.Expansion("cannot assign to this parameter", nil)
		}
		wf, err := w.Eval(ctx, e, Config{Tilde: cfg.Tilde, Split: false})
		if err != nil {
			return fields.Fields[string]{}, err
		}
		value := wf.Join()
		e.SetVar(name, value)
		return splitFieldsFurther(e, fields.One(value), cfg.Split), nil
	})
}

// Error implements `${p?w}`/`${p:?w}`: a fatal error using w as the message
// (or a default message when w is empty) when p is unset/null.
func Error(colon bool, p Parameter, w Word) Word {
	return funcWord(func(ctx context.Context, e env.Environment, cfg Config) (fields.Fields[string], error) {
		f, set, err := p.Eval(ctx, e, false)
		if err != nil {
			return fields.Fields[string]{}, err
		}
		if !isUnsetOrNull(colon, f, set) {
			return splitFieldsFurther(e, f, cfg.Split), nil
		}
		msg := "parameter null or not set"
		if w != nil {
			wf, err := w.Eval(ctx, e, cfg)
			if err != nil {
				return fields.Fields[string]{}, err
			}
			if !wf.IsNull() {
				msg = wf.Join()
			}
		}
		return fields.Fields[string]{}, shellerr.Expansion(msg, nil)
	})
}

// Alternative implements `${p+w}`/`${p:+w}`: substitute w when p IS set
// (and non-null, for the colon form); otherwise the empty string.
func Alternative(colon bool, p Parameter, w Word) Word {
	return funcWord(func(ctx context.Context, e env.Environment, cfg Config) (fields.Fields[string], error) {
		f, set, err := p.Eval(ctx, e, false)
		if err != nil {
			return fields.Fields[string]{}, err
		}
		if isUnsetOrNull(colon, f, set) {
			return fields.Empty[string](), nil
		}
		return w.Eval(ctx, e, cfg)
	})
}

// Len implements `${#p}`: the byte length of a single value, or the field
// count for a `$@`/`$*` parameter (§4.4).
func Len(p Parameter) Word {
	return funcWord(func(ctx context.Context, e env.Environment, cfg Config) (fields.Fields[string], error) {
		f, _, err := p.Eval(ctx, e, false)
		if err != nil {
			return fields.Fields[string]{}, err
		}
		if f.Variant == fields.At || f.Variant == fields.Star {
			return fields.One(itoa(f.Len())), nil
		}
		return fields.One(itoa(len(f.Join()))), nil
	})
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

type trimSide int

const (
	trimPrefix trimSide = iota
	trimSuffix
)

func trim(p Parameter, pat *globpat.Pattern, side trimSide, longest bool) Word {
	return funcWord(func(ctx context.Context, e env.Environment, cfg Config) (fields.Fields[string], error) {
		f, set, err := p.Eval(ctx, e, false)
		if err != nil || !set {
			return f, err
		}
		out := make([]string, len(f.Values))
		for i, v := range f.Values {
			if side == trimPrefix {
				out[i] = pat.TrimPrefix(v, longest)
			} else {
				out[i] = pat.TrimSuffix(v, longest)
			}
		}
		return splitFieldsFurther(e, fields.Of(f.Variant, out), cfg.Split), nil
	})
}

// RemoveSmallestPrefix implements `${p#pat}`.
func RemoveSmallestPrefix(p Parameter, pat *globpat.Pattern) Word { return trim(p, pat, trimPrefix, false) }

// RemoveLargestPrefix implements `${p##pat}`.
func RemoveLargestPrefix(p Parameter, pat *globpat.Pattern) Word { return trim(p, pat, trimPrefix, true) }

// RemoveSmallestSuffix implements `${p%pat}`.
func RemoveSmallestSuffix(p Parameter, pat *globpat.Pattern) Word { return trim(p, pat, trimSuffix, false) }

// RemoveLargestSuffix implements `${p%%pat}`.
func RemoveLargestSuffix(p Parameter, pat *globpat.Pattern) Word { return trim(p, pat, trimSuffix, true) }

// CommandRunner executes a command list and captures its standard output,
// the collaborator CommandSubstWord needs from the spawn package (kept as
// an interface here to avoid word importing spawn, which itself imports
// word for simple command argument evaluation).
type CommandRunner interface {
	RunCaptured(ctx context.Context, e env.Environment) (string, error)
}

// CommandSubstWord implements `$(cmds)`/standard-backtick command
// substitution: run cmds, strip trailing newlines from its stdout, and use
// that as a single field (subject to the caller's own field splitting).
func CommandSubstWord(runner CommandRunner) Word {
	return funcWord(func(ctx context.Context, e env.Environment, cfg Config) (fields.Fields[string], error) {
		out, err := runner.RunCaptured(ctx, e)
		if err != nil {
			return fields.Fields[string]{}, err
		}
		out = trimTrailingNewlines(out)
		return splitIfEnabled(e, out, Config{Tilde: TildeNone, Split: cfg.Split})
	})
}

// trimTrailingNewlines strips every trailing "\n", and the "\r" immediately
// preceding each one, per §4.4's `$( cmds )` trimming rule.
func trimTrailingNewlines(s string) string {
	end := len(s)
	for end > 0 && s[end-1] == '\n' {
		end--
		if end > 0 && s[end-1] == '\r' {
			end--
		}
	}
	return s[:end]
}

// ArithWord implements `$(( expr ))`.
func ArithWord(expr arith.Node) Word {
	return funcWord(func(ctx context.Context, e env.Environment, _ Config) (fields.Fields[string], error) {
		val, err := expr.Eval(ctx, e)
		if err != nil {
			return fields.Fields[string]{}, err
		}
		return fields.One(itoa64(val)), nil
	})
}

func itoa64(n int64) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [24]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
