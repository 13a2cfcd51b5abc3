package spawn

import (
	"context"

	"github.com/ipetkov/conch-runtime-go/env"
	"github.com/ipetkov/conch-runtime-go/exitstatus"
	"github.com/ipetkov/conch-runtime-go/globpat"
	"github.com/ipetkov/conch-runtime-go/word"
)

// CaseArm is one `pattern) body ;;` alternative; the first arm whose
// Patterns contains a match against the `case` word wins (§4.5).
type CaseArm struct {
	Patterns []*globpat.Pattern
	Body     Command
}

// Case evaluates Word (quote-preserving, no field splitting, per POSIX's
// "the word is expanded and the result is used for pattern matching") and
// runs the first matching arm's Body.
type Case struct {
	Word word.Word
	Arms []CaseArm
}

func (n Case) Spawn(ctx context.Context, e env.Environment) (exitstatus.Waiter, error) {
	f, err := n.Word.Eval(ctx, e, word.Config{Tilde: word.TildeNone, Split: false})
	if err != nil {
		return nil, err
	}
	subject := f.Join()

	for _, arm := range n.Arms {
		for _, pat := range arm.Patterns {
			if pat.Match(subject) {
				status, err := runChild(ctx, e, arm.Body)
				if err != nil {
					return nil, err
				}
				e.SetLastStatus(status)
				return done(status), nil
			}
		}
	}
	e.SetLastStatus(exitstatus.SUCCESS)
	return done(exitstatus.SUCCESS), nil
}
