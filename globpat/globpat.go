// Package globpat compiles the restricted glob syntax used by shell case
// patterns and parameter suffix/prefix removal (§4.4/§4.5): `*`, `?`, and
// `[...]` character classes, with no special meaning for path separators or
// a leading dot (both are "non-special" per §4.5's case semantics).
package globpat

import (
	"regexp"
	"strings"
)

// Pattern is a compiled glob pattern, usable both for a full-string match
// (case arms) and for anchored prefix/suffix matching (parameter removal
// forms), in both shortest- and longest-match flavors.
type Pattern struct {
	src string
}

// Compile parses p. It never fails: any sequence of ordinary characters is
// itself a valid (literal) pattern.
func Compile(p string) *Pattern {
	return &Pattern{src: p}
}

func (p *Pattern) String() string { return p.src }

// Match reports whether s matches the pattern in its entirety.
func (p *Pattern) Match(s string) bool {
	re := toRegexp(p.src, true, anchorBoth)
	return re.MatchString(s)
}

type anchor int

const (
	anchorBoth anchor = iota
	anchorStart
	anchorEnd
)

// toRegexp translates the glob into a regexp. greedy selects longest- vs
// shortest-match semantics for `*` (used by ##/%% vs #/%); where selects
// whether the match must be anchored at both ends (case arms), the start
// (prefix removal), or the end (suffix removal).
func toRegexp(pattern string, greedy bool, where anchor) *regexp.Regexp {
	var b strings.Builder
	if where == anchorBoth || where == anchorStart {
		b.WriteByte('^')
	}

	star := "*"
	if !greedy {
		star = "*?"
	}

	runes := []rune(pattern)
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		switch c {
		case '*':
			b.WriteString(".")
			b.WriteString(star)
		case '?':
			b.WriteString(".")
		case '[':
			j := i + 1
			if j < len(runes) && (runes[j] == '!' || runes[j] == '^') {
				j++
			}
			if j < len(runes) && runes[j] == ']' {
				j++
			}
			for j < len(runes) && runes[j] != ']' {
				j++
			}
			if j >= len(runes) {
				// Unterminated class: treat '[' as a literal.
				b.WriteString(regexp.QuoteMeta("["))
				continue
			}
			class := string(runes[i+1 : j])
			class = strings.Replace(class, "!", "^", 1)
			b.WriteByte('[')
			b.WriteString(class)
			b.WriteByte(']')
			i = j
		default:
			b.WriteString(regexp.QuoteMeta(string(c)))
		}
	}

	if where == anchorBoth || where == anchorEnd {
		b.WriteByte('$')
	}

	// The pattern language never produces an invalid regexp: every glob
	// metacharacter maps to a well-formed fragment and everything else is
	// quoted.
	return regexp.MustCompile(b.String())
}

// TrimPrefix removes the shortest (greedy=false) or longest (greedy=true)
// prefix of s matching the pattern, per §4.4's #/## forms. Returns s
// unchanged if nothing matches.
func (p *Pattern) TrimPrefix(s string, longest bool) string {
	re := toRegexp(p.src, longest, anchorStart)
	loc := re.FindStringIndex(s)
	if loc == nil {
		return s
	}
	return s[loc[1]:]
}

// TrimSuffix removes the shortest or longest suffix of s matching the
// pattern, per §4.4's %/%% forms.
func (p *Pattern) TrimSuffix(s string, longest bool) string {
	re := toRegexp(p.src, !longest, anchorEnd)
	// For suffix matching we need the *rightmost-starting* shortest match
	// when !longest, and the leftmost-starting (longest span) match when
	// longest. FindStringIndex finds the leftmost match of the anchored
	// regexp; since the regexp is anchored at '$', multiple start
	// positions can match. To realize "shortest suffix" we scan start
	// positions from the end; to realize "longest suffix" we scan from
	// the start and take the first hit (which, anchored at both '$' and
	// being the leftmost, is the longest possible span).
	if longest {
		loc := re.FindStringIndex(s)
		if loc == nil {
			return s
		}
		return s[:loc[0]]
	}
	for start := len(s); start >= 0; start-- {
		if re.MatchString(s[start:]) {
			return s[:start]
		}
	}
	return s
}
