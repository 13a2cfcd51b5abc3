package word

import (
	"context"

	"github.com/ipetkov/conch-runtime-go/env"
	"github.com/ipetkov/conch-runtime-go/fields"
)

// Concat glues a sequence of word components into one word, per §4.4's
// concatenation rule: adjacent fields from neighboring components merge at
// the seam, while a multi-field component (an unquoted "$@" or a split
// substitution result) still produces separate fields on either side of the
// seam. A lone child's Fields value (including its At/Star provenance) is
// passed through unchanged so `"$@"` alone keeps splitting per positional
// parameter in a simple command's argv.
type Concat []Word

func (w Concat) Eval(ctx context.Context, e env.Environment, cfg Config) (fields.Fields[string], error) {
	if len(w) == 1 {
		return w[0].Eval(ctx, e, cfg)
	}

	rest := cfg
	rest.Tilde = TildeNone

	results := make([]fields.Fields[string], len(w))
	for i, child := range w {
		childCfg := cfg
		if i > 0 {
			childCfg = rest
		}
		f, err := child.Eval(ctx, e, childCfg)
		if err != nil {
			return fields.Fields[string]{}, err
		}
		results[i] = f
	}
	return concatFields(results), nil
}

// concatFields implements the seam-merge concatenation rule shared by
// Concat and (for its multi-child case) DoubleQuoted: adjacent fields from
// neighboring components merge at the seam, while a multi-field component
// (an unquoted "$@" or a split substitution result) still produces separate
// fields on either side of the seam.
func concatFields(results []fields.Fields[string]) fields.Fields[string] {
	var result []string
	var pending string
	havePending := false

	for _, f := range results {
		if f.IsZero() || len(f.Values) == 0 {
			continue
		}
		pending += f.Values[0]
		havePending = true
		if len(f.Values) > 1 {
			result = append(result, pending)
			result = append(result, f.Values[1:len(f.Values)-1]...)
			pending = f.Values[len(f.Values)-1]
		}
	}
	if havePending {
		result = append(result, pending)
	}

	switch len(result) {
	case 0:
		return fields.Empty[string]()
	case 1:
		return fields.One(result[0])
	default:
		return fields.Of(fields.Split, result)
	}
}

// DoubleQuoted evaluates each child with splitting disabled and tilde
// expansion disabled. A "$*" child is joined into one field with the first
// character of $IFS; a lone child otherwise becomes a single field, except
// that a lone "$@" keeps its multi-field shape so `for x in "$@"` still
// iterates one positional parameter at a time (§4.4). Several children are
// glued with the seam-merge rule of concatFields, so a "$@" among them
// still yields one field per positional parameter.
type DoubleQuoted []Word

func (w DoubleQuoted) Eval(ctx context.Context, e env.Environment, _ Config) (fields.Fields[string], error) {
	inner := Config{Tilde: TildeNone, Split: false}

	if len(w) == 1 {
		f, err := w[0].Eval(ctx, e, inner)
		if err != nil {
			return fields.Fields[string]{}, err
		}
		if f.Variant == fields.At {
			return f, nil
		}
		if f.Variant == fields.Star {
			return fields.One(f.JoinWithIFS(e)), nil
		}
		return fields.One(f.Join()), nil
	}

	results := make([]fields.Fields[string], len(w))
	for i, child := range w {
		f, err := child.Eval(ctx, e, inner)
		if err != nil {
			return fields.Fields[string]{}, err
		}
		if f.Variant == fields.Star {
			f = fields.One(f.JoinWithIFS(e))
		}
		results[i] = f
	}
	return concatFields(results), nil
}
