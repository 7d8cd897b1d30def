package verifier

import (
	"context"

	"svirpti/internal/smt"
	"svirpti/internal/solver"
)

// Investigator lets a failed verification run be interrogated for
// counterexamples: it owns the solver's live session (still holding the
// original push'd assertions) and caches the labels/model of whichever
// query last came back non-unsat, exactly once, mirroring a take-on-read
// Option.
type Investigator struct {
	solver solver.Solver

	labels     []smt.LabelSymbol
	haveLabels bool
	model      smt.Model
	haveModel  bool
}

func newInvestigator(sv solver.Solver) *Investigator {
	return &Investigator{solver: sv}
}

// CheckWith pushes a fresh scope, asserts every literal in assertions, and
// checks sat. A non-unsat result's labels and model are cached for the next
// GetLabels/GetModel call. The scope is always popped before returning.
func (inv *Investigator) CheckWith(ctx context.Context, assertions []smt.Expression) (solver.SatResult, error) {
	if err := inv.solver.Push(ctx); err != nil {
		return solver.Unknown, err
	}
	defer inv.solver.Pop(ctx)

	for _, assertion := range assertions {
		if err := inv.solver.Assert(ctx, assertion); err != nil {
			return solver.Unknown, err
		}
	}
	result, err := inv.solver.CheckSat(ctx)
	if err != nil {
		return solver.Unknown, err
	}
	if result != solver.Unsat {
		labels, err := inv.solver.GetLabels(ctx)
		if err != nil {
			return solver.Unknown, err
		}
		model, err := inv.solver.GetModel(ctx)
		if err != nil {
			return solver.Unknown, err
		}
		inv.labels, inv.haveLabels = labels, true
		inv.model, inv.haveModel = model, true
	}
	return result, nil
}

// GetLabels returns the cached labels from the last non-unsat CheckWith, if
// any have not already been consumed, else asks the solver directly.
func (inv *Investigator) GetLabels(ctx context.Context) ([]smt.LabelSymbol, error) {
	if inv.haveLabels {
		inv.haveLabels = false
		return inv.labels, nil
	}
	return inv.solver.GetLabels(ctx)
}

// GetModel returns the cached model from the last non-unsat CheckWith, if it
// has not already been consumed, else asks the solver directly.
func (inv *Investigator) GetModel(ctx context.Context) (smt.Model, error) {
	if inv.haveModel {
		inv.haveModel = false
		return inv.model, nil
	}
	return inv.solver.GetModel(ctx)
}
