package word

import (
	"context"
	"strconv"

	"github.com/ipetkov/conch-runtime-go/env"
	"github.com/ipetkov/conch-runtime-go/fields"
)

// Parameter is anything `$name`/`${name}` syntax can reference: a shell
// variable, a positional parameter, "$@"/"$*", or one of the special
// parameters ($?, $#, $$, $!, $-, $0), per §4.4.
type Parameter interface {
	// Eval resolves the parameter. split reports whether the caller will
	// field-split the result; no implementation in this package acts on it
	// (callers pass false and split afterwards via splitFieldsFurther).
	// Eval also reports whether the parameter is "set" in the sense
	// substitution operators care about.
	Eval(ctx context.Context, e env.Environment, split bool) (f fields.Fields[string], set bool, err error)
	// AssignableName returns the variable name to assign through for
	// ${p:=w} and increment/decrement contexts, or ("", false) if p has
	// none (e.g. "$@", "$?").
	AssignableName() (string, bool)
}

// VarParam is an ordinary `$name` reference.
type VarParam string

func (p VarParam) Eval(_ context.Context, e env.Environment, _ bool) (fields.Fields[string], bool, error) {
	v, ok := e.Var(string(p))
	if !ok {
		return fields.Empty[string](), false, nil
	}
	return fields.One(v), true, nil
}

func (p VarParam) AssignableName() (string, bool) { return string(p), true }

// PositionalParam is `$1`, `$2`, etc. (`$0` is handled by ZeroParam since it
// names the shell rather than an argument).
type PositionalParam int

func (p PositionalParam) Eval(_ context.Context, e env.Environment, _ bool) (fields.Fields[string], bool, error) {
	v, ok := e.Arg(int(p))
	if !ok {
		return fields.Empty[string](), false, nil
	}
	return fields.One(v), true, nil
}

func (p PositionalParam) AssignableName() (string, bool) { return "", false }

// ZeroParam is `$0`, the shell/script name.
type ZeroParam struct{}

func (ZeroParam) Eval(_ context.Context, e env.Environment, _ bool) (fields.Fields[string], bool, error) {
	return fields.One(e.Name()), true, nil
}
func (ZeroParam) AssignableName() (string, bool) { return "", false }

// AtParam is `$@`: every positional parameter, each its own field (an At
// value), quoted or not.
type AtParam struct{}

func (AtParam) Eval(_ context.Context, e env.Environment, _ bool) (fields.Fields[string], bool, error) {
	args := e.Args()
	if len(args) == 0 {
		return fields.Empty[string](), true, nil
	}
	return fields.Of(fields.At, append([]string(nil), args...)), true, nil
}
func (AtParam) AssignableName() (string, bool) { return "", false }

// StarParam is `$*`: every positional parameter as a Star value. Inside
// double quotes DoubleQuoted joins it into one field with IFS[0] (the one
// difference from AtParam, §4.4); unquoted, each parameter stays its own
// field.
type StarParam struct{}

func (StarParam) Eval(_ context.Context, e env.Environment, _ bool) (fields.Fields[string], bool, error) {
	args := e.Args()
	if len(args) == 0 {
		return fields.Empty[string](), true, nil
	}
	return fields.Of(fields.Star, append([]string(nil), args...)), true, nil
}
func (StarParam) AssignableName() (string, bool) { return "", false }

// PoundParam is `$#`, the positional parameter count.
type PoundParam struct{}

func (PoundParam) Eval(_ context.Context, e env.Environment, _ bool) (fields.Fields[string], bool, error) {
	return fields.One(strconv.Itoa(e.ArgsLen())), true, nil
}
func (PoundParam) AssignableName() (string, bool) { return "", false }

// QuestionParam is `$?`, the most recent exit status's numeric code.
type QuestionParam struct{}

func (QuestionParam) Eval(_ context.Context, e env.Environment, _ bool) (fields.Fields[string], bool, error) {
	return fields.One(strconv.Itoa(int(e.LastStatus().Value()))), true, nil
}
func (QuestionParam) AssignableName() (string, bool) { return "", false }

// DollarParam is `$$`; conveyed in by the embedder since the core has no
// notion of an OS process id of its own (§6).
type DollarParam struct{ Pid int }

func (p DollarParam) Eval(context.Context, env.Environment, bool) (fields.Fields[string], bool, error) {
	return fields.One(strconv.Itoa(p.Pid)), true, nil
}
func (DollarParam) AssignableName() (string, bool) { return "", false }
