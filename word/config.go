// Package word evaluates shell words into Fields, per §4.4: concatenation
// of literal/quoted/substituted pieces, tilde expansion, parameter and
// command substitution, and (for unquoted contexts) field splitting on IFS.
package word

import (
	"context"

	"github.com/ipetkov/conch-runtime-go/env"
	"github.com/ipetkov/conch-runtime-go/fields"
)

// TildeMode controls which word positions are eligible for tilde expansion.
type TildeMode int

const (
	// TildeNone disables tilde expansion entirely (inside single/double
	// quotes, and for most word positions other than the ones below).
	TildeNone TildeMode = iota
	// TildeFirst expands a leading `~` only at the very start of the word
	// (the common case: command words, assignment values).
	TildeFirst
	// TildeAll expands `~` after every unquoted colon as well as at the
	// start, the $PATH-like-variable rule POSIX carves out for PATH,
	// CDPATH, and MAILPATH assignments.
	TildeAll
)

// Config configures one word evaluation. Split enables IFS field splitting
// on the result; it is true for ordinary unquoted command-line words and
// false inside double quotes and for assignment right-hand sides (§4.4).
type Config struct {
	Tilde TildeMode
	Split bool
}

// Word is anything that can evaluate to a Fields[string] value. Every
// concrete word-syntax node (literals, quoting, substitutions,
// concatenation) implements this.
type Word interface {
	Eval(ctx context.Context, e env.Environment, cfg Config) (fields.Fields[string], error)
}
