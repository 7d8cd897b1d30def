package solver

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svirpti/internal/smt"
)

func TestFakeReplaysScriptedResponsesInOrder(t *testing.T) {
	ctx := context.Background()
	f := NewFake(
		FakeResponse{Sat: Sat, Labels: []smt.LabelSymbol{"L0"}},
		FakeResponse{Sat: Unsat},
	)

	r1, err := f.CheckSat(ctx)
	require.NoError(t, err)
	assert.Equal(t, Sat, r1)
	labels, err := f.GetLabels(ctx)
	require.NoError(t, err)
	assert.Equal(t, []smt.LabelSymbol{"L0"}, labels)

	r2, err := f.CheckSat(ctx)
	require.NoError(t, err)
	assert.Equal(t, Unsat, r2)

	_, err = f.CheckSat(ctx)
	assert.Error(t, err)
}

func TestFakePushPopScopesAssertions(t *testing.T) {
	ctx := context.Background()
	f := NewFake(FakeResponse{Sat: Sat})

	require.NoError(t, f.Assert(ctx, smt.BoolConst(true)))
	require.NoError(t, f.Push(ctx))
	require.NoError(t, f.Assert(ctx, smt.BoolConst(false)))
	assert.Len(t, f.Assertions[len(f.Assertions)-1], 2)

	require.NoError(t, f.Pop(ctx))
	assert.Len(t, f.Assertions[len(f.Assertions)-1], 1)

	assert.Error(t, f.Pop(ctx))
}

func TestFakeGetModelReturnsScriptedModel(t *testing.T) {
	ctx := context.Background()
	model := smt.Model{Items: []smt.ModelItem{{Name: "x@0", Sort: smt.IntSort{}, Value: smt.Value{Kind: smt.IntValue, Int: 7}}}}
	f := NewFake(FakeResponse{Sat: Sat, Model: model})

	_, err := f.CheckSat(ctx)
	require.NoError(t, err)
	got, err := f.GetModel(ctx)
	require.NoError(t, err)
	v, ok := got.Variable("x@0")
	require.True(t, ok)
	assert.Equal(t, int64(7), v.Int)
}

func TestFakeCloseMarksClosed(t *testing.T) {
	f := NewFake()
	require.NoError(t, f.Close())
	assert.True(t, f.Closed)
}
