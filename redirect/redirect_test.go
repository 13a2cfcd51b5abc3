package redirect_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ipetkov/conch-runtime-go/env"
	"github.com/ipetkov/conch-runtime-go/redirect"
	"github.com/ipetkov/conch-runtime-go/word"
)

func newEnv(t *testing.T) *env.Env {
	t.Helper()
	return env.New("sh", nil, t.TempDir(), env.LocalOpener{}, env.LocalAsyncIO{}, env.LocalSpawner{}, nil, nil)
}

func TestOpenWriteRedirectCreatesFile(t *testing.T) {
	e := newEnv(t)
	path := e.Cwd() + "/out.txt"
	spec := redirect.Spec{Kind: redirect.Write, Word: word.Literal(path)}
	action, err := redirect.Eval(context.Background(), e, spec)
	require.NoError(t, err)
	assert.Equal(t, 1, action.Fd)
	assert.Equal(t, env.Write, action.Entry.Perms)

	r := env.NewRestorer(e)
	action.Apply(r)
	entry, ok := e.FileDesc(1)
	require.True(t, ok)
	assert.False(t, entry.Handle.IsZero())
}

func TestDupCloseRedirect(t *testing.T) {
	e := newEnv(t)
	spec := redirect.Spec{Kind: redirect.DupWrite, Word: word.Literal("-")}
	action, err := redirect.Eval(context.Background(), e, spec)
	require.NoError(t, err)
	assert.Equal(t, redirect.ActionClose, action.Kind)
}

func TestAmbiguousRedirectWhenMultiField(t *testing.T) {
	e := newEnv(t)
	env2 := e
	env2.SetInteractive(true)
	spec := redirect.Spec{Kind: redirect.Write, Word: word.Literal("a b")}
	_, err := redirect.Eval(context.Background(), env2, spec)
	require.Error(t, err)
}

func TestHereDocBestEffortWrite(t *testing.T) {
	e := newEnv(t)
	spec := redirect.Spec{Kind: redirect.HereDoc, HereDocBody: word.SingleQuoted("hello\n")}
	action, err := redirect.Eval(context.Background(), e, spec)
	require.NoError(t, err)
	assert.Equal(t, 0, action.Fd)
	assert.False(t, action.Entry.Handle.IsZero())
}
