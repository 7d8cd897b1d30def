package lower_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svirpti/internal/high"
	"svirpti/internal/low"
	"svirpti/internal/lower"
	"svirpti/internal/verifier"
)

func straightLineProgram() *high.ProgramFragment {
	// entry -> b1 (x := x + 1) -> exit
	return &high.ProgramFragment{
		Procedure: high.ProcedureDeclaration{
			Variables: []high.VariableDeclaration{{Name: "x", Sort: high.IntType{}}},
			BasicBlocks: []high.BasicBlock{
				{Guard: high.BoolConst(true), Successors: []high.BasicBlockID{1}},
				{
					Guard: high.BoolConst(true),
					Statements: []high.Statement{
						high.Assign{Var: "x", Expr: high.BinaryOperation{
							Kind:  high.Add,
							Left:  high.Variable{Name: "x"},
							Right: high.IntConst(1),
						}},
					},
					Successors: []high.BasicBlockID{2},
				},
				{Guard: high.BoolConst(true)},
			},
		},
	}
}

func diamondProgram() *high.ProgramFragment {
	// entry -> {b1, b2} -> join -> exit; b1 assigns x:=1, b2 assigns x:=2
	return &high.ProgramFragment{
		Procedure: high.ProcedureDeclaration{
			Variables: []high.VariableDeclaration{{Name: "x", Sort: high.IntType{}}},
			BasicBlocks: []high.BasicBlock{
				{Guard: high.BoolConst(true), Successors: []high.BasicBlockID{1, 2}},
				{
					Guard:      high.BoolConst(true),
					Statements: []high.Statement{high.Assign{Var: "x", Expr: high.IntConst(1)}},
					Successors: []high.BasicBlockID{3},
				},
				{
					Guard:      high.BoolConst(true),
					Statements: []high.Statement{high.Assign{Var: "x", Expr: high.IntConst(2)}},
					Successors: []high.BasicBlockID{3},
				},
				{Guard: high.BoolConst(true), Successors: []high.BasicBlockID{4}},
				{Guard: high.BoolConst(true)},
			},
		},
	}
}

func TestLowerAssignBumpsVersionAndEmitsEqualityAssume(t *testing.T) {
	ctx := verifier.NewStringContext()
	result := lower.Lower(straightLineProgram(), ctx)
	require.Len(t, result.BasicBlocks, 3)

	assignBlock := result.BasicBlocks[1]
	require.Len(t, assignBlock.Statements, 1)
	assume, ok := assignBlock.Statements[0].(low.Assume)
	require.True(t, ok)
	eq, ok := assume.Assertion.(low.BinaryOperation)
	require.True(t, ok)
	assert.Equal(t, low.Eq, eq.Kind)
	assert.Equal(t, low.Variable{Name: "x@1"}, eq.Left)
}

func TestLowerVariableDeclarationsIncludeEveryVersion(t *testing.T) {
	ctx := verifier.NewStringContext()
	result := lower.Lower(straightLineProgram(), ctx)
	names := make([]low.VariableSymbol, len(result.Variables))
	for i, v := range result.Variables {
		names[i] = v.Name
	}
	assert.Contains(t, names, low.VariableSymbol("x@0"))
	assert.Contains(t, names, low.VariableSymbol("x@1"))
}

func TestLowerJoinEmitsEqualityAssumeForDisagreeingVersions(t *testing.T) {
	ctx := verifier.NewStringContext()
	result := lower.Lower(diamondProgram(), ctx)
	joinBlock := result.BasicBlocks[3]
	require.Len(t, joinBlock.Statements, 1)
	assume, ok := joinBlock.Statements[0].(low.Assume)
	require.True(t, ok)
	_, ok = assume.Assertion.(low.BinaryOperation)
	assert.True(t, ok, "join should assert an equality between the two predecessor versions")
}

func TestLowerGuardBecomesLabelledAssume(t *testing.T) {
	ctx := verifier.NewStringContext()
	program := straightLineProgram()
	program.Procedure.BasicBlocks[1].Guard = high.BinaryOperation{
		Kind: high.Gt, Left: high.Variable{Name: "x"}, Right: high.IntConst(0),
	}
	program.Procedure.BasicBlocks[1].Label = "guard1"
	result := lower.Lower(program, ctx)
	assume, ok := result.BasicBlocks[1].Statements[0].(low.Assume)
	require.True(t, ok)
	require.NotNil(t, assume.Label)
	assert.Equal(t, low.LabelSymbol("guard1"), *assume.Label)
}

func TestLowerHavocBumpsVersionWithoutConstraint(t *testing.T) {
	ctx := verifier.NewStringContext()
	program := straightLineProgram()
	program.Procedure.BasicBlocks[1].Statements = []high.Statement{high.Havoc{Var: "x"}}
	result := lower.Lower(program, ctx)
	assert.Empty(t, result.BasicBlocks[1].Statements, "havoc contributes no statement, only a version bump")
	names := make([]low.VariableSymbol, len(result.Variables))
	for i, v := range result.Variables {
		names[i] = v.Name
	}
	assert.Contains(t, names, low.VariableSymbol("x@1"))
}

func TestLowerPanicsOnUndeclaredVariableReference(t *testing.T) {
	ctx := verifier.NewStringContext()
	program := straightLineProgram()
	program.Procedure.BasicBlocks[1].Statements = []high.Statement{
		high.Assert{Expr: high.Variable{Name: "unknown"}},
	}
	assert.Panics(t, func() { lower.Lower(program, ctx) })
}
