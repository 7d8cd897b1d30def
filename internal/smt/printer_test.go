package smt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"svirpti/internal/smt"
)

func TestPrintQueryEmitsDeclarationsThenAssertions(t *testing.T) {
	q := smt.Query{
		Declarations: smt.Declarations{
			Sorts:     []smt.UninterpretedSortDeclaration{{Name: "Account"}},
			Variables: []smt.VariableDeclaration{{Name: "x@0", Sort: smt.IntSort{}}},
			Functions: []smt.FunctionDeclaration{{Name: "balance", Params: []smt.Sort{smt.UninterpretedSort{Name: "Account"}}, ReturnSort: smt.IntSort{}}},
			Labels:    []smt.LabelDeclaration{{Name: "L0"}},
		},
		Assertions: []smt.Expression{
			smt.BinaryOperation{Kind: smt.Gt, Left: smt.Variable{Name: "x@0"}, Right: smt.IntConst(0)},
		},
	}
	out := smt.PrintQuery(q)
	assert.Contains(t, out, "(declare-sort Account 0)")
	assert.Contains(t, out, "(declare-const x@0 Int)")
	assert.Contains(t, out, "(declare-fun balance (Account) Int)")
	assert.Contains(t, out, "(declare-const L0 Bool)")
	assert.Contains(t, out, "(assert (> x@0 0))")
	assert.Contains(t, out, "(check-sat)")
}

func TestPrintQueryRendersLabelledExpressions(t *testing.T) {
	q := smt.Query{
		Assertions: []smt.Expression{
			smt.LabelledExpression{
				Label:      "L1",
				Positivity: smt.Negative,
				Inner:      smt.BoolConst(false),
			},
		},
	}
	out := smt.PrintQuery(q)
	assert.Contains(t, out, "(! false :lblneg L1)")
}

func TestPrintQueryRendersNegativeIntConstants(t *testing.T) {
	q := smt.Query{Assertions: []smt.Expression{smt.IntConst(-3)}}
	out := smt.PrintQuery(q)
	assert.Contains(t, out, "(assert (- 3))")
}

func TestPrintQueryRendersQuantifierWithTrigger(t *testing.T) {
	q := smt.Query{
		Assertions: []smt.Expression{
			smt.Quantifier{
				Kind:      smt.ForAll,
				Variables: []smt.BoundedVariableDecl{{Name: "i", Sort: smt.IntSort{}}},
				Triggers:  []smt.Trigger{{Parts: []smt.Expression{smt.FunctionApplication{Function: "f", Args: []smt.Expression{smt.Variable{Name: "i"}}}}}},
				Body:      smt.BinaryOperation{Kind: smt.Ge, Left: smt.Variable{Name: "i"}, Right: smt.IntConst(0)},
			},
		},
	}
	out := smt.PrintQuery(q)
	assert.Contains(t, out, "(forall ((i Int))")
	assert.Contains(t, out, "(! (>= i 0) :pattern ((f i)))")
}
