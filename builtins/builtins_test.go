package builtins_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ipetkov/conch-runtime-go/builtins"
	"github.com/ipetkov/conch-runtime-go/env"
)

func newEnv(t *testing.T) *env.Env {
	t.Helper()
	e := env.New("sh", []string{"a", "b", "c"}, t.TempDir(), env.LocalOpener{}, env.LocalAsyncIO{}, env.LocalSpawner{}, builtins.Registry{}, nil)
	e.SetVar("HOME", t.TempDir())
	return e
}

func TestTrueFalse(t *testing.T) {
	e := newEnv(t)
	r := env.NewRestorer(e)

	tb, ok := r.Builtin("true")
	require.True(t, ok)
	waiter, err := tb.Run(context.Background(), nil, r)
	require.NoError(t, err)
	assert.True(t, waiter(context.Background()).Success())

	fb, ok := r.Builtin("false")
	require.True(t, ok)
	waiter, err = fb.Run(context.Background(), nil, r)
	require.NoError(t, err)
	assert.False(t, waiter(context.Background()).Success())
}

func TestShiftMovesArgsWindow(t *testing.T) {
	e := newEnv(t)
	r := env.NewRestorer(e)
	sb, ok := r.Builtin("shift")
	require.True(t, ok)
	_, err := sb.Run(context.Background(), []string{"2"}, r)
	require.NoError(t, err)
	assert.Equal(t, []string{"c"}, e.Args())
}

func TestShiftPastEndFails(t *testing.T) {
	e := newEnv(t)
	r := env.NewRestorer(e)
	sb, _ := r.Builtin("shift")
	_, err := sb.Run(context.Background(), []string{"99"}, r)
	require.Error(t, err)
}

func TestCdHome(t *testing.T) {
	e := newEnv(t)
	home, _ := e.Var("HOME")
	r := env.NewRestorer(e)
	cb, ok := r.Builtin("cd")
	require.True(t, ok)
	_, err := cb.Run(context.Background(), nil, r)
	require.NoError(t, err)
	assert.Equal(t, home, e.Cwd())
	pwd, ok := e.Var("PWD")
	require.True(t, ok)
	assert.Equal(t, home, pwd)
}
