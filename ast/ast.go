// Package ast is the thin construction layer a parser targets: it turns
// shell syntax (as a parser would recognize it — an operator token plus its
// operands) into the directly-evaluable node values the word, redirect, and
// spawn packages already define, rather than introducing a second,
// parallel node hierarchy that would just dispatch straight back to them.
// A concrete grammar/parser is out of scope (the spec treats the AST as
// externally supplied); this package is the seam a parser would plug into.
package ast

import (
	"github.com/ipetkov/conch-runtime-go/arith"
	"github.com/ipetkov/conch-runtime-go/globpat"
	"github.com/ipetkov/conch-runtime-go/word"
)

// ParamSubstitution builds the Word for one `${p<op>w}` form from its
// parsed operator token, parameter, and (where the operator takes one)
// word operand.
func ParamSubstitution(op string, colon bool, p word.Parameter, w word.Word) (word.Word, bool) {
	switch op {
	case "-":
		return word.Default(colon, p, w), true
	case "=":
		return word.Assign(colon, p, w), true
	case "?":
		return word.Error(colon, p, w), true
	case "+":
		return word.Alternative(colon, p, w), true
	default:
		return nil, false
	}
}

// TrimSubstitution builds the Word for one `${p#pat}`/`${p%pat}` family
// form from its parsed operator token.
func TrimSubstitution(op string, p word.Parameter, pattern string) (word.Word, bool) {
	pat := globpat.Compile(pattern)
	switch op {
	case "#":
		return word.RemoveSmallestPrefix(p, pat), true
	case "##":
		return word.RemoveLargestPrefix(p, pat), true
	case "%":
		return word.RemoveSmallestSuffix(p, pat), true
	case "%%":
		return word.RemoveLargestSuffix(p, pat), true
	default:
		return nil, false
	}
}

// Len builds `${#p}`.
func Len(p word.Parameter) word.Word { return word.Len(p) }

// Arithmetic builds `$(( expr ))`.
func Arithmetic(expr arith.Node) word.Word { return word.ArithWord(expr) }

// CasePattern compiles one `case` arm's `|`-separated pattern list.
func CasePattern(patterns ...string) []*globpat.Pattern {
	out := make([]*globpat.Pattern, len(patterns))
	for i, p := range patterns {
		out[i] = globpat.Compile(p)
	}
	return out
}
