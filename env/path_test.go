package env_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ipetkov/conch-runtime-go/env"
)

func TestResolveCdTargetAbsoluteIgnoresCdPath(t *testing.T) {
	resolved, usedCdPath := env.ResolveCdTarget("/work", "/etc", "/opt/projects", func(string) bool { return false })
	assert.Equal(t, "/etc", resolved)
	assert.False(t, usedCdPath)
}

func TestResolveCdTargetExplicitRelativeIgnoresCdPath(t *testing.T) {
	resolved, usedCdPath := env.ResolveCdTarget("/work", "../sibling", "/opt/projects", func(string) bool { return false })
	assert.Equal(t, "/sibling", resolved)
	assert.False(t, usedCdPath)
}

func TestResolveCdTargetPrefersDirectChild(t *testing.T) {
	exists := func(p string) bool { return p == "/work/sub" }
	resolved, usedCdPath := env.ResolveCdTarget("/work", "sub", "/opt/projects", exists)
	assert.Equal(t, "/work/sub", resolved)
	assert.False(t, usedCdPath)
}

func TestResolveCdTargetFallsBackToCdPath(t *testing.T) {
	exists := func(p string) bool { return p == "/opt/projects/sub" }
	resolved, usedCdPath := env.ResolveCdTarget("/work", "sub", "/opt/projects:/other", exists)
	assert.Equal(t, "/opt/projects/sub", resolved)
	assert.True(t, usedCdPath)
}

func TestResolveCdTargetSkipsNonMatchingCdPathEntries(t *testing.T) {
	exists := func(p string) bool { return p == "/other/sub" }
	resolved, usedCdPath := env.ResolveCdTarget("/work", "sub", "/opt/projects:/other", exists)
	assert.Equal(t, "/other/sub", resolved)
	assert.True(t, usedCdPath)
}

func TestResolveCdTargetNoMatchFallsBackToDirect(t *testing.T) {
	resolved, usedCdPath := env.ResolveCdTarget("/work", "missing", "/opt/projects", func(string) bool { return false })
	assert.Equal(t, "/work/missing", resolved)
	assert.False(t, usedCdPath)
}
