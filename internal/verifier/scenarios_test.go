package verifier_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svirpti/internal/counterexample"
	"svirpti/internal/high"
	"svirpti/internal/lower"
	"svirpti/internal/smt"
	"svirpti/internal/solver"
	"svirpti/internal/verifier"
	"svirpti/internal/wp"
)

// These tests exercise the real lower.Lower -> wp.Encode -> smt.PrintQuery
// pipeline and assert on the rendered query text, so a wrong weakest
// precondition or a malformed SMT-LIB2 shape fails the test even though no
// real solver runs here. Where a scenario also drives verifier.Verify and
// counterexample.GetAllErrors, the solver.Fake responses are derived by hand
// from the actual verification condition, not picked arbitrarily.

// scenarioTrivialFailureProgram asserts a bare boolean with no preceding
// constraint on it: the verification condition is satisfiable whenever x is
// false, the textbook-simplest failing procedure.
func scenarioTrivialFailureProgram() *high.ProgramFragment {
	return &high.ProgramFragment{
		Procedure: high.ProcedureDeclaration{
			Variables: []high.VariableDeclaration{{Name: "x", Sort: high.BoolType{}}},
			BasicBlocks: []high.BasicBlock{
				{Guard: high.BoolConst(true), Successors: []high.BasicBlockID{1}},
				{
					Guard: high.BoolConst(true),
					Statements: []high.Statement{
						high.Assert{Expr: high.Variable{Name: "x"}, Label: high.Label("expected_error")},
					},
					Successors: []high.BasicBlockID{2},
				},
				{Guard: high.BoolConst(true)},
			},
		},
	}
}

func TestScenarioTrivialFailure(t *testing.T) {
	ctx := verifier.NewStringContext()
	program := scenarioTrivialFailureProgram()

	lowered := lower.Lower(program, ctx)
	rendered := smt.PrintQuery(wp.Encode(lowered, ctx))

	// BB@2 (the exit block) has no outgoing edges, so its WP is the
	// identity `true`; BB@1 conjoins the labelled assertion onto it; BB@0
	// (the entry block) just forwards BB@1; the query is unsat iff BB@0
	// cannot hold, i.e. iff x can never be false.
	assert.Contains(t, rendered, "(assert (= BB@2 true))")
	assert.Contains(t, rendered, "(assert (= BB@1 (and (! x@0 :lblneg expected_error) BB@2)))")
	assert.Contains(t, rendered, "(assert (= BB@0 BB@1))")
	assert.Contains(t, rendered, "(assert (not BB@0))")

	model := smt.Model{Items: []smt.ModelItem{
		{Name: "x@0", Sort: smt.BoolSort{}, Value: smt.Value{Kind: smt.BoolValue, Bool: false}},
	}}
	sv := solver.NewFake(
		solver.FakeResponse{Sat: solver.Sat, Labels: []smt.LabelSymbol{"expected_error"}, Model: model},
		solver.FakeResponse{Sat: solver.Unsat},
	)

	result, err := verifier.Verify(context.Background(), program, ctx, sv)
	require.NoError(t, err)
	require.False(t, result.Success())

	errs, err := counterexample.GetAllErrors(context.Background(), result.Failure, ctx, result.Lowered)
	require.NoError(t, err)
	require.Len(t, errs, 1)

	e := errs[0]
	assert.Equal(t, high.LabelSymbol("expected_error"), e.FailingAssertion)
	assert.Empty(t, e.Labels)
	assert.Equal(t, []high.BasicBlockID{0, 1}, e.Trace)
	v, ok := e.Model.Variables["x@0"]
	require.True(t, ok)
	assert.False(t, v.Bool)
}

// scenarioDiamondJoinProgram branches into two assignments of j and asserts
// a bound on j at the join: the join must equality-assume the two branches'
// distinct SSA versions of j before the assertion can be checked against
// either of them.
func scenarioDiamondJoinProgram() *high.ProgramFragment {
	return &high.ProgramFragment{
		Procedure: high.ProcedureDeclaration{
			Variables: []high.VariableDeclaration{{Name: "j", Sort: high.IntType{}}},
			BasicBlocks: []high.BasicBlock{
				{Guard: high.BoolConst(true), Successors: []high.BasicBlockID{1, 2}},
				{
					Guard:      high.BoolConst(true),
					Statements: []high.Statement{high.Assign{Var: "j", Expr: high.IntConst(0)}},
					Successors: []high.BasicBlockID{3},
				},
				{
					Guard:      high.BoolConst(true),
					Statements: []high.Statement{high.Assign{Var: "j", Expr: high.IntConst(150)}},
					Successors: []high.BasicBlockID{3},
				},
				{
					Guard: high.BoolConst(true),
					Statements: []high.Statement{
						high.Assert{
							Expr: high.BinaryOperation{
								Kind: high.And,
								Left: high.BinaryOperation{Kind: high.Ge, Left: high.Variable{Name: "j"}, Right: high.IntConst(0)},
								Right: high.BinaryOperation{
									Kind: high.Lt, Left: high.Variable{Name: "j"}, Right: high.IntConst(100),
								},
							},
							Label: high.Label("bounds_check"),
						},
					},
					Successors: []high.BasicBlockID{4},
				},
				{Guard: high.BoolConst(true)},
			},
		},
	}
}

func TestScenarioDiamondJoinBoundsCheck(t *testing.T) {
	ctx := verifier.NewStringContext()
	program := scenarioDiamondJoinProgram()

	lowered := lower.Lower(program, ctx)
	rendered := smt.PrintQuery(wp.Encode(lowered, ctx))

	assert.Contains(t, rendered, "(declare-const j@1 Int)")
	assert.Contains(t, rendered, "(declare-const j@2 Int)")
	assert.Contains(t, rendered, "(= j@1 j@2)", "the join must equate the two branches' distinct versions of j")
	assert.Contains(t, rendered, "(! (and (>= j@2 0) (< j@2 100)) :lblneg bounds_check)")

	// j := 150 on the second branch violates the bound; the solver would
	// report the assignment that took that branch.
	model := smt.Model{Items: []smt.ModelItem{
		{Name: "j@2", Sort: smt.IntSort{}, Value: smt.Value{Kind: smt.IntValue, Int: 150}},
	}}
	sv := solver.NewFake(
		solver.FakeResponse{Sat: solver.Sat, Labels: []smt.LabelSymbol{"bounds_check"}, Model: model},
		solver.FakeResponse{Sat: solver.Unsat},
	)

	result, err := verifier.Verify(context.Background(), program, ctx, sv)
	require.NoError(t, err)
	require.False(t, result.Success())

	errs, err := counterexample.GetAllErrors(context.Background(), result.Failure, ctx, result.Lowered)
	require.NoError(t, err)
	require.Len(t, errs, 1)

	e := errs[0]
	assert.Equal(t, high.LabelSymbol("bounds_check"), e.FailingAssertion)
	assert.Equal(t, []high.BasicBlockID{0, 2, 3}, e.Trace)
	v, ok := e.Model.Variables["j@2"]
	require.True(t, ok)
	assert.Equal(t, int64(150), v.Int)
}

// scenarioSequentialNarrowingProgram narrows a down to (0, 10) across two
// straight-line Assumes and asserts exactly that range: the verification
// condition must be unsat no matter how the assumes are ordered.
func scenarioSequentialNarrowingProgram() *high.ProgramFragment {
	return &high.ProgramFragment{
		Procedure: high.ProcedureDeclaration{
			Variables: []high.VariableDeclaration{{Name: "a", Sort: high.IntType{}}},
			BasicBlocks: []high.BasicBlock{
				{Guard: high.BoolConst(true), Successors: []high.BasicBlockID{1}},
				{
					Guard: high.BoolConst(true),
					Statements: []high.Statement{
						high.Assume{Expr: high.BinaryOperation{Kind: high.Gt, Left: high.Variable{Name: "a"}, Right: high.IntConst(0)}},
					},
					Successors: []high.BasicBlockID{2},
				},
				{
					Guard: high.BoolConst(true),
					Statements: []high.Statement{
						high.Assume{Expr: high.BinaryOperation{Kind: high.Lt, Left: high.Variable{Name: "a"}, Right: high.IntConst(10)}},
					},
					Successors: []high.BasicBlockID{3},
				},
				{
					Guard: high.BoolConst(true),
					Statements: []high.Statement{
						high.Assert{
							Expr: high.BinaryOperation{
								Kind: high.And,
								Left: high.BinaryOperation{Kind: high.Gt, Left: high.Variable{Name: "a"}, Right: high.IntConst(0)},
								Right: high.BinaryOperation{
									Kind: high.Lt, Left: high.Variable{Name: "a"}, Right: high.IntConst(10),
								},
							},
							Label: high.Label("range"),
						},
					},
					Successors: []high.BasicBlockID{4},
				},
				{Guard: high.BoolConst(true)},
			},
		},
	}
}

func TestScenarioSequentialRangeNarrowingSucceeds(t *testing.T) {
	ctx := verifier.NewStringContext()
	program := scenarioSequentialNarrowingProgram()

	lowered := lower.Lower(program, ctx)
	rendered := smt.PrintQuery(wp.Encode(lowered, ctx))
	assert.Contains(t, rendered, "(> a@0 0)")
	assert.Contains(t, rendered, "(< a@0 10)")
	assert.Contains(t, rendered, ":lblneg range")

	sv := solver.NewFake(solver.FakeResponse{Sat: solver.Unsat})
	result, err := verifier.Verify(context.Background(), program, ctx, sv)
	require.NoError(t, err)
	assert.True(t, result.Success())
}

// scenarioNonDeterministicChoiceProgram branches on b's sign without
// narrowing it any further, then asserts the tautology the two branches
// jointly cover.
func scenarioNonDeterministicChoiceProgram() *high.ProgramFragment {
	totality := high.BinaryOperation{
		Kind: high.Or,
		Left: high.BinaryOperation{Kind: high.Lt, Left: high.Variable{Name: "b"}, Right: high.IntConst(0)},
		Right: high.BinaryOperation{
			Kind: high.Ge, Left: high.Variable{Name: "b"}, Right: high.IntConst(0),
		},
	}
	return &high.ProgramFragment{
		Procedure: high.ProcedureDeclaration{
			Variables: []high.VariableDeclaration{{Name: "b", Sort: high.IntType{}}},
			BasicBlocks: []high.BasicBlock{
				{Guard: high.BoolConst(true), Successors: []high.BasicBlockID{1, 2}},
				{
					Guard: high.BoolConst(true),
					Statements: []high.Statement{
						high.Assume{Expr: high.BinaryOperation{Kind: high.Lt, Left: high.Variable{Name: "b"}, Right: high.IntConst(0)}},
					},
					Successors: []high.BasicBlockID{3},
				},
				{
					Guard: high.BoolConst(true),
					Statements: []high.Statement{
						high.Assume{Expr: high.BinaryOperation{Kind: high.Ge, Left: high.Variable{Name: "b"}, Right: high.IntConst(0)}},
					},
					Successors: []high.BasicBlockID{3},
				},
				{
					Guard: high.BoolConst(true),
					Statements: []high.Statement{
						high.Assert{Expr: totality, Label: high.Label("totality")},
					},
					Successors: []high.BasicBlockID{4},
				},
				{Guard: high.BoolConst(true)},
			},
		},
	}
}

func TestScenarioNonDeterministicChoiceSucceeds(t *testing.T) {
	ctx := verifier.NewStringContext()
	program := scenarioNonDeterministicChoiceProgram()

	sv := solver.NewFake(solver.FakeResponse{Sat: solver.Unsat})
	result, err := verifier.Verify(context.Background(), program, ctx, sv)
	require.NoError(t, err)
	assert.True(t, result.Success())
	require.NotNil(t, result.Lowered)
	assert.Len(t, result.Lowered.BasicBlocks, 5)
}

// scenarioAssignPropagationProgram assigns a from b and then asserts they
// are equal: lowering must route both references through the same versions
// for the equality to be syntactically the same expression the assign
// itself introduced.
func scenarioAssignPropagationProgram() *high.ProgramFragment {
	return &high.ProgramFragment{
		Procedure: high.ProcedureDeclaration{
			Variables: []high.VariableDeclaration{
				{Name: "a", Sort: high.IntType{}},
				{Name: "b", Sort: high.IntType{}},
			},
			BasicBlocks: []high.BasicBlock{
				{Guard: high.BoolConst(true), Successors: []high.BasicBlockID{1}},
				{
					Guard:      high.BoolConst(true),
					Statements: []high.Statement{high.Assign{Var: "a", Expr: high.Variable{Name: "b"}}},
					Successors: []high.BasicBlockID{2},
				},
				{
					Guard: high.BoolConst(true),
					Statements: []high.Statement{
						high.Assert{
							Expr:  high.BinaryOperation{Kind: high.Eq, Left: high.Variable{Name: "a"}, Right: high.Variable{Name: "b"}},
							Label: high.Label("prop"),
						},
					},
					Successors: []high.BasicBlockID{3},
				},
				{Guard: high.BoolConst(true)},
			},
		},
	}
}

func TestScenarioAssignPropagationSucceeds(t *testing.T) {
	ctx := verifier.NewStringContext()
	program := scenarioAssignPropagationProgram()

	lowered := lower.Lower(program, ctx)
	rendered := smt.PrintQuery(wp.Encode(lowered, ctx))
	assert.Contains(t, rendered, "(= a@1 b@0)", "the assign's own equality assume")
	assert.Contains(t, rendered, "(! (= a@1 b@0) :lblneg prop)", "the assertion references the same versions the assign introduced")

	sv := solver.NewFake(solver.FakeResponse{Sat: solver.Unsat})
	result, err := verifier.Verify(context.Background(), program, ctx, sv)
	require.NoError(t, err)
	assert.True(t, result.Success())
}

// scenarioMultipleFailuresProgram has three independently labelled
// assertions reachable along distinct paths, so a failing run should surface
// more than one counterexample once the enumerator flips labels.
func scenarioMultipleFailuresProgram() *high.ProgramFragment {
	return &high.ProgramFragment{
		Procedure: high.ProcedureDeclaration{
			BasicBlocks: []high.BasicBlock{
				{Guard: high.BoolConst(true), Successors: []high.BasicBlockID{1, 2}},
				{
					Guard:      high.BoolConst(true),
					Statements: []high.Statement{high.Assert{Expr: high.BoolConst(false), Label: high.Label("l1")}},
					Successors: []high.BasicBlockID{3},
				},
				{
					Guard:      high.BoolConst(true),
					Statements: []high.Statement{high.Assert{Expr: high.BoolConst(false), Label: high.Label("l2")}},
					Successors: []high.BasicBlockID{3},
				},
				{
					Guard:      high.BoolConst(true),
					Statements: []high.Statement{high.Assert{Expr: high.BoolConst(false), Label: high.Label("l3")}},
					Successors: []high.BasicBlockID{4},
				},
				{Guard: high.BoolConst(true)},
			},
		},
	}
}

func TestScenarioMultipleDistinctFailures(t *testing.T) {
	ctx := verifier.NewStringContext()
	program := scenarioMultipleFailuresProgram()

	m0 := smt.Model{Items: []smt.ModelItem{
		{Name: "l1", Sort: smt.BoolSort{}, Value: smt.Value{Kind: smt.BoolValue, Bool: true}},
		{Name: "l2", Sort: smt.BoolSort{}, Value: smt.Value{Kind: smt.BoolValue, Bool: false}},
		{Name: "l3", Sort: smt.BoolSort{}, Value: smt.Value{Kind: smt.BoolValue, Bool: false}},
	}}
	m1 := smt.Model{Items: []smt.ModelItem{
		{Name: "l1", Sort: smt.BoolSort{}, Value: smt.Value{Kind: smt.BoolValue, Bool: false}},
		{Name: "l2", Sort: smt.BoolSort{}, Value: smt.Value{Kind: smt.BoolValue, Bool: true}},
		{Name: "l3", Sort: smt.BoolSort{}, Value: smt.Value{Kind: smt.BoolValue, Bool: false}},
	}}

	sv := solver.NewFake(
		solver.FakeResponse{Sat: solver.Sat, Labels: []smt.LabelSymbol{"l1"}, Model: m0},
		solver.FakeResponse{Sat: solver.Sat, Labels: []smt.LabelSymbol{"l2"}, Model: m1},
		solver.FakeResponse{Sat: solver.Unsat},
		solver.FakeResponse{Sat: solver.Unsat},
		solver.FakeResponse{Sat: solver.Unsat},
	)

	result, err := verifier.Verify(context.Background(), program, ctx, sv)
	require.NoError(t, err)
	require.False(t, result.Success())

	errs, err := counterexample.GetAllErrors(context.Background(), result.Failure, ctx, result.Lowered)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(errs), 2)
	for _, e := range errs {
		assert.NotEmpty(t, e.Trace)
		assert.Contains(t, []high.LabelSymbol{"l1", "l2", "l3"}, e.FailingAssertion)
	}
}

// scenarioAxiomProgram declares an uninterpreted sort and function and a
// quantified axiom over them, grounding only a trivially-true procedure: it
// exists to prove the declarations and the axiom reach the emitted query at
// all, since until this repository's declare/assert wiring existed they
// were decoded and then silently dropped before ever reaching the encoder.
func scenarioAxiomProgram() *high.ProgramFragment {
	elem := high.UninterpretedSortSymbol("Elem")
	return &high.ProgramFragment{
		Sorts:     []high.UninterpretedSortDeclaration{{Name: elem}},
		Functions: []high.FunctionDeclaration{{Name: "f", Params: []high.Type{high.DomainType{Name: elem}}, ReturnSort: high.IntType{}}},
		Axioms: []high.AxiomDeclaration{
			{
				Name: "f_nonneg",
				Expr: high.Quantifier{
					Kind:      high.ForAll,
					Variables: []high.BoundedVariableDecl{{Name: "i", Sort: high.DomainType{Name: elem}}},
					Triggers: []high.Trigger{
						{Parts: []high.Expression{high.FunctionApplication{Function: "f", Args: []high.Expression{high.Variable{Name: "i"}}}}},
					},
					Body: high.BinaryOperation{
						Kind:  high.Ge,
						Left:  high.FunctionApplication{Function: "f", Args: []high.Expression{high.Variable{Name: "i"}}},
						Right: high.IntConst(0),
					},
				},
			},
		},
		Procedure: high.ProcedureDeclaration{
			BasicBlocks: []high.BasicBlock{
				{Guard: high.BoolConst(true), Successors: []high.BasicBlockID{1}},
				{Guard: high.BoolConst(true)},
			},
		},
	}
}

func TestScenarioAxiomSortAndFunctionAreDeclaredAndAsserted(t *testing.T) {
	ctx := verifier.NewStringContext()
	program := scenarioAxiomProgram()

	lowered := lower.Lower(program, ctx)
	require.Len(t, lowered.UninterpretedSorts, 1)
	require.Len(t, lowered.Functions, 1)
	require.Len(t, lowered.Axioms, 1)

	rendered := smt.PrintQuery(wp.Encode(lowered, ctx))
	assert.Contains(t, rendered, "(declare-sort Elem 0)")
	assert.Contains(t, rendered, "(declare-fun f (Elem) Int)")
	assert.Contains(t, rendered, "(assert (forall ((i Elem)) (! (>= (f i) 0) :pattern ((f i)))))")

	sv := solver.NewFake(solver.FakeResponse{Sat: solver.Unsat})
	result, err := verifier.Verify(context.Background(), program, ctx, sv)
	require.NoError(t, err)
	assert.True(t, result.Success())
	assert.Len(t, sv.Sorts, 1)
	assert.Len(t, sv.Functions, 1)
}
