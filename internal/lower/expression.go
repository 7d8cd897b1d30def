package lower

import (
	"fmt"

	"svirpti/internal/high"
	"svirpti/internal/low"
)

// lowerExpression rewrites a high.Expression into a low.Expression, resolving
// every Variable reference to its currently live SSA version according to
// versions.
func lowerExpression(ctx Context, versions map[high.VariableSymbol]int, expr high.Expression) low.Expression {
	return lowerExpr(ctx, versions, nil, expr)
}

// lowerExpr does the actual recursive descent. bound holds the names
// introduced by an enclosing Quantifier: a reference to one of those names
// resolves to a plain, unversioned low Variable instead of going through the
// SSA version map, since quantifier-bound variables are scoped to the
// quantifier body and are never assigned to.
func lowerExpr(ctx Context, versions map[high.VariableSymbol]int, bound map[high.VariableSymbol]bool, expr high.Expression) low.Expression {
	switch e := expr.(type) {
	case high.Variable:
		if bound[e.Name] {
			return low.Variable{Name: low.VariableSymbol(e.Name)}
		}
		version, ok := versions[e.Name]
		if !ok {
			panic(fmt.Sprintf("lower: reference to undeclared variable %q", e.Name))
		}
		return low.Variable{Name: ctx.CreateVersionedVariableSymbol(e.Name, version)}
	case high.Constant:
		if e.IsBool {
			return low.BoolConst(e.Bool)
		}
		return low.IntConst(e.Int)
	case high.UnaryOperation:
		return low.UnaryOperation{
			Kind: low.UnaryOperationKind(e.Kind),
			Arg:  lowerExpr(ctx, versions, bound, e.Arg),
		}
	case high.BinaryOperation:
		return low.BinaryOperation{
			Kind:  low.BinaryOperationKind(e.Kind),
			Left:  lowerExpr(ctx, versions, bound, e.Left),
			Right: lowerExpr(ctx, versions, bound, e.Right),
		}
	case high.Conditional:
		return low.Conditional{
			Guard:    lowerExpr(ctx, versions, bound, e.Guard),
			ThenExpr: lowerExpr(ctx, versions, bound, e.ThenExpr),
			ElseExpr: lowerExpr(ctx, versions, bound, e.ElseExpr),
		}
	case high.Quantifier:
		innerBound := make(map[high.VariableSymbol]bool, len(bound)+len(e.Variables))
		for k := range bound {
			innerBound[k] = true
		}
		decls := make([]low.BoundedVariableDecl, len(e.Variables))
		for i, v := range e.Variables {
			decls[i] = low.BoundedVariableDecl{Name: low.VariableSymbol(v.Name), Sort: lowerType(ctx, v.Sort)}
			innerBound[v.Name] = true
		}
		triggers := make([]low.Trigger, len(e.Triggers))
		for i, t := range e.Triggers {
			parts := make([]low.Expression, len(t.Parts))
			for j, p := range t.Parts {
				parts[j] = lowerExpr(ctx, versions, innerBound, p)
			}
			triggers[i] = low.Trigger{Parts: parts}
		}
		return low.Quantifier{
			Kind:      low.QuantifierKind(e.Kind),
			Variables: decls,
			Triggers:  triggers,
			Body:      lowerExpr(ctx, versions, innerBound, e.Body),
		}
	case high.FunctionApplication:
		args := make([]low.Expression, len(e.Args))
		for i, a := range e.Args {
			args[i] = lowerExpr(ctx, versions, bound, a)
		}
		return low.FunctionApplication{Function: low.FunctionSymbol(e.Function), Args: args}
	default:
		panic(fmt.Sprintf("lower: unknown high expression %T", expr))
	}
}

func lowerType(ctx Context, t high.Type) low.Sort {
	switch v := t.(type) {
	case high.BoolType:
		return low.BoolSort{}
	case high.IntType:
		return low.IntSort{}
	case high.RealType:
		return low.RealSort{}
	case high.DomainType:
		return low.UninterpretedSort{Name: ctx.LowerDomainName(v.Name)}
	default:
		panic(fmt.Sprintf("lower: unknown high type %T", t))
	}
}
