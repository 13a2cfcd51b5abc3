package env

import (
	"path/filepath"
	"strings"
)

// resolveAgainst resolves p relative to cwd, leaving an already-absolute p
// untouched (§4.3: "Paths are resolved relative to the environment's CWD,
// not the host process CWD").
func resolveAgainst(cwd, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(cwd, p)
}

// isExplicitRelative reports whether p begins with "./" or "../" (or is
// exactly "." or ".."), the forms original_source/conch-runtime/src/spawn/builtin/cd.rs treats as
// never subject to $CDPATH search (see SPEC_FULL.md's SUPPLEMENTED BEHAVIOR).
func isExplicitRelative(p string) bool {
	return strings.HasPrefix(p, "./") || strings.HasPrefix(p, "../") || p == "." || p == ".."
}

// ResolveCdTarget implements the directory-resolution half of the `cd`
// builtin's contract, independent of argument parsing (which is peripheral,
// §1). dir is the literal argument the user supplied (already resolved for
// `-`/no-argument, by the caller); cdPath is $CDPATH's raw value.
//
// It returns the resolved absolute directory to change into, and whether
// the caller should print it (true exactly when a $CDPATH entry was used).
func ResolveCdTarget(cwd, dir, cdPath string, exists func(path string) bool) (resolved string, usedCdPath bool) {
	if filepath.IsAbs(dir) || isExplicitRelative(dir) {
		return resolveAgainst(cwd, dir), false
	}

	direct := filepath.Join(cwd, dir)
	if exists(direct) {
		return direct, false
	}

	for _, prefix := range strings.Split(cdPath, ":") {
		if prefix == "" {
			continue
		}
		candidate := filepath.Join(prefix, dir)
		if exists(candidate) {
			return candidate, true
		}
	}

	// Nothing in $CDPATH matched either; fall back to the direct path so
	// the caller's own "no such directory" error names the path the user
	// actually typed.
	return direct, false
}
