package counterexample_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svirpti/internal/counterexample"
	"svirpti/internal/low"
	"svirpti/internal/smt"
	"svirpti/internal/solver"
	"svirpti/internal/verifier"
)

// diamondProgram is two branches, each with its own labelled Assert, joining
// at an exit block.
func diamondProgram() *low.ProgramFragment {
	l0 := low.LabelSymbol("L0")
	l1 := low.LabelSymbol("L1")
	return &low.ProgramFragment{
		Variables: []low.VariableDeclaration{{Name: "x@0", Sort: low.IntSort{}}},
		BasicBlocks: []low.BasicBlock{
			{Successors: []low.BasicBlockID{1, 2}},
			{Statements: []low.Statement{low.Assert{Assertion: low.Constant{IsBool: true, Bool: false}, Label: &l0}}, Successors: []low.BasicBlockID{3}},
			{Statements: []low.Statement{low.Assert{Assertion: low.Constant{IsBool: true, Bool: false}, Label: &l1}}, Successors: []low.BasicBlockID{3}},
			{},
		},
	}
}

type queryResult struct {
	sat    solver.SatResult
	labels []smt.LabelSymbol
	model  smt.Model
}

// scriptedInvestigator is a local test double for counterexample.Investigator:
// results[0] is the initial (already-failed) query; CheckWith consumes
// results[1:] in call order.
type scriptedInvestigator struct {
	results []queryResult
	idx     int
	current queryResult
}

func newScriptedInvestigator(results []queryResult) *scriptedInvestigator {
	return &scriptedInvestigator{results: results, idx: 1, current: results[0]}
}

func (s *scriptedInvestigator) CheckWith(ctx context.Context, assertions []smt.Expression) (solver.SatResult, error) {
	r := s.results[s.idx]
	s.idx++
	if r.sat != solver.Unsat {
		s.current = r
	}
	return r.sat, nil
}

func (s *scriptedInvestigator) GetLabels(ctx context.Context) ([]smt.LabelSymbol, error) {
	return s.current.labels, nil
}

func (s *scriptedInvestigator) GetModel(ctx context.Context) (smt.Model, error) {
	return s.current.model, nil
}

func boolItem(name string, value bool) smt.ModelItem {
	return smt.ModelItem{Name: name, Sort: smt.BoolSort{}, Value: smt.Value{Kind: smt.BoolValue, Bool: value}}
}

func TestGetAllErrorsEnumeratesDistinctCounterexamples(t *testing.T) {
	program := diamondProgram()
	vctx := verifier.NewStringContext()

	m0 := smt.Model{Items: []smt.ModelItem{boolItem("L0", true), boolItem("L1", false)}}
	m1 := smt.Model{Items: []smt.ModelItem{boolItem("L0", false), boolItem("L1", true)}}

	inv := newScriptedInvestigator([]queryResult{
		{labels: []smt.LabelSymbol{"L0", "L1"}, model: m0},
		{sat: solver.Sat, labels: []smt.LabelSymbol{"L0", "L1"}, model: m1},
		{sat: solver.Unsat},
		{sat: solver.Unsat},
	})

	errs, err := counterexample.GetAllErrors(context.Background(), inv, vctx, program)
	require.NoError(t, err)
	require.Len(t, errs, 2)
	for _, e := range errs {
		assert.Equal(t, "L1", string(e.FailingAssertion))
		require.Len(t, e.Labels, 1)
		assert.Equal(t, "L0", string(e.Labels[0]))
	}
}

func TestGetAllErrorsTraceEndsAtFailingBlock(t *testing.T) {
	program := diamondProgram()
	vctx := verifier.NewStringContext()

	m0 := smt.Model{Items: []smt.ModelItem{boolItem("L0", true), boolItem("L1", false)}}
	inv := newScriptedInvestigator([]queryResult{
		{labels: []smt.LabelSymbol{"L1"}, model: m0},
		{sat: solver.Unsat},
	})

	errs, err := counterexample.GetAllErrors(context.Background(), inv, vctx, program)
	require.NoError(t, err)
	require.Len(t, errs, 1)
	trace := errs[0].Trace
	require.NotEmpty(t, trace)
	assert.Equal(t, 2, int(trace[len(trace)-1]))
}

func TestGetAllErrorsProjectsModelOntoProgramVariables(t *testing.T) {
	program := diamondProgram()
	vctx := verifier.NewStringContext()

	m0 := smt.Model{Items: []smt.ModelItem{
		boolItem("L0", true),
		boolItem("L1", false),
		{Name: "x@0", Sort: smt.IntSort{}, Value: smt.Value{Kind: smt.IntValue, Int: 42}},
	}}
	inv := newScriptedInvestigator([]queryResult{
		{labels: []smt.LabelSymbol{"L0", "L1"}, model: m0},
		{sat: solver.Unsat},
		{sat: solver.Unsat},
	})

	errs, err := counterexample.GetAllErrors(context.Background(), inv, vctx, program)
	require.NoError(t, err)
	require.Len(t, errs, 1)
	v, ok := errs[0].Model.Variables["x@0"]
	require.True(t, ok)
	assert.Equal(t, int64(42), v.Int)
	_, labelLeaked := errs[0].Model.Variables["L0"]
	assert.False(t, labelLeaked)
}
