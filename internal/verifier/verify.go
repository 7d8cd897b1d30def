package verifier

import (
	"context"

	"svirpti/internal/high"
	"svirpti/internal/low"
	"svirpti/internal/lower"
	"svirpti/internal/solver"
	"svirpti/internal/wp"
)

// Result is the outcome of checking one procedure's verification condition.
type Result struct {
	// Lowered is the SSA program the encoder ran over; the counterexample
	// enumerator needs it to reconstruct a basic-block trace from a label
	// assignment.
	Lowered *low.ProgramFragment
	// Failure is nil on success.
	Failure *Investigator
}

// Success reports whether the procedure's verification condition was unsat,
// i.e. no assertion in program can fail.
func (r *Result) Success() bool { return r.Failure == nil }

// Verify lowers program to SSA, encodes its weakest precondition as an SMT
// query, and checks it with sv. sv is expected to be a freshly constructed
// solver: Verify declares every symbol the query needs and pushes one scope
// of assertions, and on failure leaves that scope in place so Result.Failure
// can be interrogated for counterexamples.
func Verify(ctx context.Context, program *high.ProgramFragment, vctx Context, sv solver.Solver) (*Result, error) {
	lowered := lower.Lower(program, vctx)
	query := wp.Encode(lowered, vctx)

	for _, sort := range query.Declarations.Sorts {
		if err := sv.DeclareSort(ctx, sort); err != nil {
			return nil, err
		}
	}
	for _, fn := range query.Declarations.Functions {
		if err := sv.DeclareFunction(ctx, fn); err != nil {
			return nil, err
		}
	}
	for _, label := range query.Declarations.Labels {
		if err := sv.DeclareLabel(ctx, label); err != nil {
			return nil, err
		}
	}
	for _, variable := range query.Declarations.Variables {
		if err := sv.DeclareVariable(ctx, variable); err != nil {
			return nil, err
		}
	}

	if err := sv.Push(ctx); err != nil {
		return nil, err
	}
	for _, assertion := range query.Assertions {
		if err := sv.Assert(ctx, assertion); err != nil {
			return nil, err
		}
	}

	sat, err := sv.CheckSat(ctx)
	if err != nil {
		return nil, err
	}
	if sat == solver.Unsat {
		return &Result{Lowered: lowered}, nil
	}
	return &Result{Lowered: lowered, Failure: newInvestigator(sv)}, nil
}
