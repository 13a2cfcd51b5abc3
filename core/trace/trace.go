// Package trace derives short correlation ids for the subshells and command
// substitutions a spawn nests, so structured log lines from unrelated
// concurrent subshells (§4.5 Subshell, §4.4 command substitution) can be
// told apart without threading a counter through every combinator.
package trace

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// ID derives an 8-character correlation id from seed, which callers build
// from whatever's locally available (parent frame depth, a monotonically
// increasing spawn counter) — it only needs to be stable and distinct for
// the lifetime of one invocation, not cryptographically unpredictable.
func ID(seed string) string {
	sum := blake2b.Sum256([]byte(seed))
	return hex.EncodeToString(sum[:4])
}
