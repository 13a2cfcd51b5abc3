package spawn

import (
	"context"

	"github.com/ipetkov/conch-runtime-go/env"
	"github.com/ipetkov/conch-runtime-go/exitstatus"
	"github.com/ipetkov/conch-runtime-go/fields"
	"github.com/ipetkov/conch-runtime-go/word"
)

// For implements `for name in words; do body; done` (§4.5). Words is
// evaluated once up front (each element field-split, per ordinary unquoted
// word rules) and Body is re-bound with Var set to each resulting value in
// turn; a nil Words means "in $@", the POSIX default.
type For struct {
	Var   string
	Words []word.Word
	Body  func(value string) Command
}

func (n For) Spawn(ctx context.Context, e env.Environment) (exitstatus.Waiter, error) {
	values, err := n.values(ctx, e)
	if err != nil {
		return nil, err
	}

	last := exitstatus.SUCCESS
	for _, v := range values {
		e.SetVar(n.Var, v)
		last, err = runChild(ctx, e, n.Body(v))
		if err != nil {
			return nil, err
		}
		e.SetLastStatus(last)
	}
	return done(last), nil
}

func (n For) values(ctx context.Context, e env.Environment) ([]string, error) {
	if n.Words == nil {
		return append([]string(nil), e.Args()...), nil
	}
	var out []string
	for _, w := range n.Words {
		f, err := w.Eval(ctx, e, word.Config{Tilde: word.TildeFirst, Split: true})
		if err != nil {
			return nil, err
		}
		out = append(out, fields.Strings(f)...)
	}
	return out, nil
}
