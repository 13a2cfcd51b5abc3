package word_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ipetkov/conch-runtime-go/env"
	"github.com/ipetkov/conch-runtime-go/fields"
	"github.com/ipetkov/conch-runtime-go/globpat"
	"github.com/ipetkov/conch-runtime-go/word"
)

func newEnv(t *testing.T) *env.Env {
	t.Helper()
	e := env.New("sh", []string{"one", "two three"}, "/", env.LocalOpener{}, env.LocalAsyncIO{}, env.LocalSpawner{}, nil, nil)
	return e
}

func TestLiteralSplitsOnIFS(t *testing.T) {
	e := newEnv(t)
	f, err := word.Literal("a  b\tc").Eval(context.Background(), e, word.Config{Split: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, fields.Strings(f))
}

func TestSingleQuotedNeverSplits(t *testing.T) {
	e := newEnv(t)
	f, err := word.SingleQuoted("a  b").Eval(context.Background(), e, word.Config{Split: true})
	require.NoError(t, err)
	assert.Equal(t, fields.Single, f.Variant)
	assert.Equal(t, "a  b", f.Values[0])
}

func TestConcatGluesSeams(t *testing.T) {
	e := newEnv(t)
	w := word.Concat{word.Literal("pre"), word.Param{P: word.AtParam{}, Split: true}, word.Literal("post")}
	f, err := w.Eval(context.Background(), e, word.Config{Split: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"preone", "two threepost"}, fields.Strings(f))
}

func TestDefaultSubstitutionOnUnset(t *testing.T) {
	e := newEnv(t)
	w := word.Default(true, word.VarParam("MISSING"), word.Literal("fallback"))
	f, err := w.Eval(context.Background(), e, word.Config{})
	require.NoError(t, err)
	assert.Equal(t, "fallback", f.Join())
}

func TestAssignSubstitutionSetsVariable(t *testing.T) {
	e := newEnv(t)
	w := word.Assign(true, word.VarParam("X"), word.Literal("val"))
	f, err := w.Eval(context.Background(), e, word.Config{})
	require.NoError(t, err)
	assert.Equal(t, "val", f.Join())
	got, ok := e.Var("X")
	require.True(t, ok)
	assert.Equal(t, "val", got)
}

func TestErrorSubstitutionIsFatal(t *testing.T) {
	e := newEnv(t)
	w := word.Error(true, word.VarParam("MISSING"), nil)
	_, err := w.Eval(context.Background(), e, word.Config{})
	require.Error(t, err)
}

func TestLenSubstitution(t *testing.T) {
	e := newEnv(t)
	e.SetVar("X", "hello")
	w := word.Len(word.VarParam("X"))
	f, err := w.Eval(context.Background(), e, word.Config{})
	require.NoError(t, err)
	assert.Equal(t, "5", f.Join())
}

func TestLenSubstitutionCountsAtFields(t *testing.T) {
	e := newEnv(t)
	w := word.Len(word.AtParam{})
	f, err := w.Eval(context.Background(), e, word.Config{})
	require.NoError(t, err)
	assert.Equal(t, "2", f.Join())
}

func TestSplitWithIFSTrailingDelimiterYieldsEmptyField(t *testing.T) {
	assert.Equal(t, []string{"a", ""}, word.SplitWithIFS("a:", ":"))
	assert.Equal(t, []string{"a"}, word.SplitWithIFS("a ", " "))
	assert.Equal(t, []string{"a", "", "b"}, word.SplitWithIFS("a::b", ":"))
}

func TestConcatSuppressesTildeAfterFirstChild(t *testing.T) {
	e := newEnv(t)
	e.SetVar("HOME", "/home/u")
	// AtStart is true on the node itself, but it is the *second* Concat
	// child: the concat-level override (tilde=None after the first word)
	// must still win over the node's own static flag.
	w := word.Concat{word.Literal("pre"), word.Tilde{AtStart: true}}
	f, err := w.Eval(context.Background(), e, word.Config{Tilde: word.TildeFirst})
	require.NoError(t, err)
	assert.Equal(t, "pre~", f.Join())
}

func TestTildeUnsetHomeYieldsZero(t *testing.T) {
	e := newEnv(t)
	w := word.Tilde{AtStart: true}
	f, err := w.Eval(context.Background(), e, word.Config{Tilde: word.TildeFirst})
	require.NoError(t, err)
	assert.True(t, f.IsZero())
}

func TestParamSplitsScalarValueOnIFS(t *testing.T) {
	e := newEnv(t)
	e.SetVar("X", "a b c")
	w := word.Param{P: word.VarParam("X"), Split: true}
	f, err := w.Eval(context.Background(), e, word.Config{Split: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, fields.Strings(f))
}

func TestParamScalarUnsplitWhenSplitDisabled(t *testing.T) {
	e := newEnv(t)
	e.SetVar("X", "a b c")
	w := word.Param{P: word.VarParam("X")}
	f, err := w.Eval(context.Background(), e, word.Config{Split: false})
	require.NoError(t, err)
	assert.Equal(t, "a b c", f.Join())
}

func TestDefaultSplitsPresentValueOnIFS(t *testing.T) {
	e := newEnv(t)
	e.SetVar("X", "a b c")
	w := word.Default(true, word.VarParam("X"), word.Literal("fallback"))
	f, err := w.Eval(context.Background(), e, word.Config{Split: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, fields.Strings(f))
}

func TestAssignSplitsSubstitutedValueOnIFS(t *testing.T) {
	e := newEnv(t)
	w := word.Assign(true, word.VarParam("X"), word.Literal("a b c"))
	f, err := w.Eval(context.Background(), e, word.Config{Split: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, fields.Strings(f))
	got, ok := e.Var("X")
	require.True(t, ok)
	assert.Equal(t, "a b c", got, "the stored variable keeps the unsplit value")
}

func TestRemovePrefixSplitsResultOnIFS(t *testing.T) {
	e := newEnv(t)
	e.SetVar("X", "pre-a pre-b")
	w := word.RemoveSmallestPrefix(word.VarParam("X"), globpat.Compile("pre-"))
	f, err := w.Eval(context.Background(), e, word.Config{Split: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "pre-b"}, fields.Strings(f))
}

func TestDoubleQuotedConcatPreservesAtFieldShape(t *testing.T) {
	e := env.New("sh", []string{"x", "y", "z"}, "/", env.LocalOpener{}, env.LocalAsyncIO{}, env.LocalSpawner{}, nil, nil)
	w := word.DoubleQuoted{word.Literal("a"), word.Param{P: word.AtParam{}}, word.Literal("b")}
	f, err := w.Eval(context.Background(), e, word.Config{})
	require.NoError(t, err)
	assert.Equal(t, []string{"ax", "y", "zb"}, fields.Strings(f))
}
