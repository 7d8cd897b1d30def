// Package solver defines the capability an SMT backend must provide and a
// text-protocol adapter that speaks it to a Z3 subprocess over SMT-LIB 2, the
// only interface mature solvers expose that supports the `:lblpos`/`:lblneg`
// label mechanism the counterexample enumerator depends on.
package solver

import (
	"context"
	"fmt"

	"svirpti/internal/smt"
)

// SatResult is the three-valued answer a check-sat query can produce.
type SatResult int

const (
	Unsat SatResult = iota
	Unknown
	Sat
)

func (r SatResult) String() string {
	switch r {
	case Unsat:
		return "unsat"
	case Sat:
		return "sat"
	default:
		return "unknown"
	}
}

// Solver is everything the verification driver and the counterexample
// enumerator need from an SMT backend. Every method that can block on
// subprocess I/O takes a context.Context so a caller can bound how long it
// waits on the solver.
type Solver interface {
	DeclareSort(ctx context.Context, sort smt.UninterpretedSortDeclaration) error
	DeclareFunction(ctx context.Context, fn smt.FunctionDeclaration) error
	DeclareLabel(ctx context.Context, label smt.LabelDeclaration) error
	DeclareVariable(ctx context.Context, variable smt.VariableDeclaration) error
	Push(ctx context.Context) error
	Pop(ctx context.Context) error
	Assert(ctx context.Context, assertion smt.Expression) error
	CheckSat(ctx context.Context) (SatResult, error)
	GetLabels(ctx context.Context) ([]smt.LabelSymbol, error)
	GetModel(ctx context.Context) (smt.Model, error)
	// Close releases any resources (e.g. the subprocess) the solver holds.
	Close() error
}

// Error wraps a failure reported by or while talking to the solver backend.
// It is always a backend/transport problem, never a verification outcome:
// Success/Failure/Unknown are not errors.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return fmt.Sprintf("solver: %s: %v", e.Op, e.Err) }
func (e *Error) Unwrap() error { return e.Err }

func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Err: err}
}

// ErrUnsupportedSort is returned by a model parser when it encounters a
// get-model value of a sort it does not know how to decode (currently: Real,
// since the encoder never emits one but a user-supplied axiom might
// introduce Real-sorted variables).
var ErrUnsupportedSort = fmt.Errorf("solver: unsupported sort in model value")
