package arith_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ipetkov/conch-runtime-go/arith"
)

type fakeVars struct{ m map[string]string }

func (f *fakeVars) Var(name string) (string, bool) { v, ok := f.m[name]; return v, ok }
func (f *fakeVars) SetVar(name, value string)       { f.m[name] = value }

func TestBinOpArithmetic(t *testing.T) {
	v := &fakeVars{m: map[string]string{}}
	expr := arith.BinOp{Op: "+", Left: arith.Lit(2), Right: arith.BinOp{Op: "*", Left: arith.Lit(3), Right: arith.Lit(4)}}
	got, err := expr.Eval(context.Background(), v)
	require.NoError(t, err)
	assert.EqualValues(t, 14, got)
}

func TestDivideByZero(t *testing.T) {
	v := &fakeVars{m: map[string]string{}}
	expr := arith.BinOp{Op: "/", Left: arith.Lit(1), Right: arith.Lit(0)}
	_, err := expr.Eval(context.Background(), v)
	require.Error(t, err)
	var aerr *arith.Error
	require.ErrorAs(t, err, &aerr)
}

func TestNegativeExponent(t *testing.T) {
	v := &fakeVars{m: map[string]string{}}
	expr := arith.BinOp{Op: "**", Left: arith.Lit(2), Right: arith.Lit(-1)}
	_, err := expr.Eval(context.Background(), v)
	require.Error(t, err)
}

func TestAssignToNonAssignableFails(t *testing.T) {
	v := &fakeVars{m: map[string]string{}}
	expr := arith.AssignTo{Target: arith.Lit(1), Rhs: arith.Lit(2)}
	_, err := expr.Eval(context.Background(), v)
	require.Error(t, err)
}

func TestAssignAndPostIncDec(t *testing.T) {
	v := &fakeVars{m: map[string]string{}}
	_, err := (arith.AssignTo{Target: arith.VarRef("x"), Rhs: arith.Lit(5)}).Eval(context.Background(), v)
	require.NoError(t, err)

	got, err := (arith.PostIncDec{Delta: 1, Expr: arith.VarRef("x")}).Eval(context.Background(), v)
	require.NoError(t, err)
	assert.EqualValues(t, 5, got)

	val, ok := v.Var("x")
	require.True(t, ok)
	assert.Equal(t, "6", val)
}

func TestTernaryAndSequence(t *testing.T) {
	v := &fakeVars{m: map[string]string{}}
	tern := arith.Ternary{Cond: arith.Lit(0), Then: arith.Lit(1), Else: arith.Lit(2)}
	got, err := tern.Eval(context.Background(), v)
	require.NoError(t, err)
	assert.EqualValues(t, 2, got)

	seq := arith.Sequence{arith.Lit(1), arith.Lit(2), arith.Lit(3)}
	got, err = seq.Eval(context.Background(), v)
	require.NoError(t, err)
	assert.EqualValues(t, 3, got)
}

func TestUnsetVariableIsZero(t *testing.T) {
	v := &fakeVars{m: map[string]string{}}
	got, err := (arith.VarRef("missing")).Eval(context.Background(), v)
	require.NoError(t, err)
	assert.EqualValues(t, 0, got)
}
