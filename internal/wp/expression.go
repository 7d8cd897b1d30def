package wp

import (
	"fmt"

	"svirpti/internal/low"
	"svirpti/internal/smt"
)

// lowerExpression carries a low.Expression over into the smt tier unchanged
// in shape, renaming only the symbols it references.
func lowerExpression(ctx Context, expr low.Expression) smt.Expression {
	switch e := expr.(type) {
	case low.Variable:
		return smt.Variable{Name: ctx.ConvertVariableNameToSMT(e.Name)}
	case low.Constant:
		if e.IsBool {
			return smt.BoolConst(e.Bool)
		}
		return smt.IntConst(e.Int)
	case low.UnaryOperation:
		return smt.UnaryOperation{Kind: smt.UnaryOperationKind(e.Kind), Arg: lowerExpression(ctx, e.Arg)}
	case low.BinaryOperation:
		return smt.BinaryOperation{
			Kind:  smt.BinaryOperationKind(e.Kind),
			Left:  lowerExpression(ctx, e.Left),
			Right: lowerExpression(ctx, e.Right),
		}
	case low.Conditional:
		return smt.Conditional{
			Guard:    lowerExpression(ctx, e.Guard),
			ThenExpr: lowerExpression(ctx, e.ThenExpr),
			ElseExpr: lowerExpression(ctx, e.ElseExpr),
		}
	case low.Quantifier:
		vars := make([]smt.BoundedVariableDecl, len(e.Variables))
		for i, v := range e.Variables {
			vars[i] = smt.BoundedVariableDecl{Name: ctx.ConvertVariableNameToSMT(v.Name), Sort: lowerSort(ctx, v.Sort)}
		}
		triggers := make([]smt.Trigger, len(e.Triggers))
		for i, t := range e.Triggers {
			parts := make([]smt.Expression, len(t.Parts))
			for j, p := range t.Parts {
				parts[j] = lowerExpression(ctx, p)
			}
			triggers[i] = smt.Trigger{Parts: parts}
		}
		return smt.Quantifier{
			Kind:      smt.QuantifierKind(e.Kind),
			Variables: vars,
			Triggers:  triggers,
			Body:      lowerExpression(ctx, e.Body),
		}
	case low.FunctionApplication:
		args := make([]smt.Expression, len(e.Args))
		for i, a := range e.Args {
			args[i] = lowerExpression(ctx, a)
		}
		return smt.FunctionApplication{Function: ctx.ConvertFunctionNameToSMT(e.Function), Args: args}
	default:
		panic(fmt.Sprintf("wp: unknown low expression %T", expr))
	}
}

func lowerSort(ctx Context, s low.Sort) smt.Sort {
	switch v := s.(type) {
	case low.BoolSort:
		return smt.BoolSort{}
	case low.IntSort:
		return smt.IntSort{}
	case low.RealSort:
		return smt.RealSort{}
	case low.UninterpretedSort:
		return smt.UninterpretedSort{Name: ctx.ConvertUninterpretedSortToSMT(v.Name)}
	default:
		panic(fmt.Sprintf("wp: unknown low sort %T", s))
	}
}
