package word

import (
	"github.com/ipetkov/conch-runtime-go/env"
	"github.com/ipetkov/conch-runtime-go/fields"
)

// ifsWhitespace reports whether r is one of the three characters POSIX
// treats as "IFS whitespace" (runs of these collapse and leading/trailing
// runs are trimmed, unlike other IFS characters which each delimit a field
// on their own, §4.4).
func ifsWhitespace(r byte) bool {
	return r == ' ' || r == '\t' || r == '\n'
}

// SplitWithIFS splits s into fields using ifs as the full field-splitting
// character set, replicating POSIX's distinction between IFS-whitespace
// members (collapse, trim) and other IFS members (each delimits exactly one
// field, and adjacent delimiters produce an empty field). An empty ifs
// disables splitting (a non-empty word is returned as its single field, an
// empty word as no fields).
func SplitWithIFS(s, ifs string) []string {
	if ifs == "" {
		if s == "" {
			return nil
		}
		return []string{s}
	}

	isIFS := func(r byte) bool {
		for i := 0; i < len(ifs); i++ {
			if ifs[i] == r {
				return true
			}
		}
		return false
	}
	isWS := func(r byte) bool {
		return isIFS(r) && ifsWhitespace(r)
	}

	i := 0
	n := len(s)

	// Trim leading IFS whitespace.
	for i < n && isWS(s[i]) {
		i++
	}
	if i >= n {
		return nil
	}

	var out []string
	start := i
	for i < n {
		c := s[i]
		if !isIFS(c) {
			i++
			continue
		}
		out = append(out, s[start:i])
		// A non-whitespace IFS delimiter still delimits a (possibly empty)
		// trailing field even at end of string; a whitespace-only run
		// trailing the string is trimmed with no such field (§4.4).
		nonWS := !ifsWhitespace(c)
		i++
		// A non-whitespace IFS delimiter may be immediately followed by IFS
		// whitespace, which is absorbed into the same separator rather than
		// producing another empty field.
		for i < n && isWS(s[i]) {
			i++
		}
		if i >= n {
			if nonWS {
				out = append(out, "")
			}
			start = i
			break
		}
		start = i
	}
	if start < n {
		out = append(out, s[start:n])
	}
	return out
}

// splitFieldsResult wraps SplitWithIFS's output in a Fields value, using
// the generic variant when it collapses to zero or one pieces.
func splitFieldsResult(parts []string) fields.Fields[string] {
	switch len(parts) {
	case 0:
		return fields.Empty[string]()
	case 1:
		return fields.One(parts[0])
	default:
		return fields.Of(fields.Split, parts)
	}
}

// splitFieldsFurther applies IFS field-splitting to a parameter or
// substitution's result when the caller requested it, the same way
// splitIfEnabled does for a plain literal. A result that already carries
// multiple fields (At/Star/Split) is left untouched: it is already shaped
// into fields, and nothing in this package further IFS-splits each
// constituent of an unquoted "$@"/"$*" (the seam-merge rule in Concat and
// DoubleQuoted already governs how those combine with neighboring text).
func splitFieldsFurther(e env.Environment, f fields.Fields[string], split bool) fields.Fields[string] {
	if !split || f.Variant != fields.Single {
		return f
	}
	ifs, ok := e.Var(env.IfsVar)
	if !ok {
		ifs = env.DefaultIFS
	}
	return splitFieldsResult(SplitWithIFS(f.Values[0], ifs))
}
