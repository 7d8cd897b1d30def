package solver

import (
	"context"
	"fmt"

	"svirpti/internal/smt"
)

var (
	errNoOpenScope     = fmt.Errorf("pop with no open scope")
	errNoMoreResponses = fmt.Errorf("check-sat called more times than responses were scripted")
)

// Fake is a deterministic in-memory Solver used by tests that exercise the
// verification driver and the counterexample enumerator without spawning a
// real Z3 process. It does not evaluate formulas: callers script the answer
// CheckSat/GetLabels/GetModel should give for each push/pop scope in advance.
type Fake struct {
	// Scripted, consumed in order by successive CheckSat calls at any scope.
	Responses []FakeResponse

	next       int
	lastLabels []smt.LabelSymbol
	lastModel  smt.Model

	Sorts     []smt.UninterpretedSortDeclaration
	Functions []smt.FunctionDeclaration
	Labels    []smt.LabelDeclaration
	Variables []smt.VariableDeclaration

	// Assertions holds one slice per currently-open scope (index 0 is the
	// base scope); Push copies the top into a new frame, Pop discards it.
	Assertions [][]smt.Expression

	Closed bool
}

// FakeResponse is one scripted answer to a CheckSat query, together with the
// labels/model GetLabels/GetModel should report afterwards if the caller asks.
type FakeResponse struct {
	Sat    SatResult
	Labels []smt.LabelSymbol
	Model  smt.Model
}

func NewFake(responses ...FakeResponse) *Fake {
	return &Fake{Responses: responses, Assertions: [][]smt.Expression{nil}}
}

func (f *Fake) DeclareSort(ctx context.Context, sort smt.UninterpretedSortDeclaration) error {
	f.Sorts = append(f.Sorts, sort)
	return nil
}

func (f *Fake) DeclareFunction(ctx context.Context, fn smt.FunctionDeclaration) error {
	f.Functions = append(f.Functions, fn)
	return nil
}

func (f *Fake) DeclareLabel(ctx context.Context, label smt.LabelDeclaration) error {
	f.Labels = append(f.Labels, label)
	return nil
}

func (f *Fake) DeclareVariable(ctx context.Context, variable smt.VariableDeclaration) error {
	f.Variables = append(f.Variables, variable)
	return nil
}

func (f *Fake) Push(ctx context.Context) error {
	top := f.Assertions[len(f.Assertions)-1]
	frame := make([]smt.Expression, len(top))
	copy(frame, top)
	f.Assertions = append(f.Assertions, frame)
	return nil
}

func (f *Fake) Pop(ctx context.Context) error {
	if len(f.Assertions) == 1 {
		return wrap("pop", errNoOpenScope)
	}
	f.Assertions = f.Assertions[:len(f.Assertions)-1]
	return nil
}

func (f *Fake) Assert(ctx context.Context, assertion smt.Expression) error {
	top := len(f.Assertions) - 1
	f.Assertions[top] = append(f.Assertions[top], assertion)
	return nil
}

func (f *Fake) CheckSat(ctx context.Context) (SatResult, error) {
	if f.next >= len(f.Responses) {
		return Unknown, wrap("check-sat", errNoMoreResponses)
	}
	r := f.Responses[f.next]
	f.next++
	f.lastLabels = r.Labels
	f.lastModel = r.Model
	return r.Sat, nil
}

func (f *Fake) GetLabels(ctx context.Context) ([]smt.LabelSymbol, error) {
	return f.lastLabels, nil
}

func (f *Fake) GetModel(ctx context.Context) (smt.Model, error) {
	return f.lastModel, nil
}

func (f *Fake) Close() error {
	f.Closed = true
	return nil
}
