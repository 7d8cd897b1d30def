package smt

import (
	"fmt"
	"strings"
)

// PrintQuery renders a Query as an SMT-LIB 2 script: sort/variable/function/
// label declarations followed by one assertion per Query.Assertions entry
// and a trailing check-sat. It never emits (get-model)/(get-value ...); those
// are issued by the solver adapter as separate commands once a query comes
// back sat.
func PrintQuery(q Query) string {
	var b strings.Builder
	for _, s := range q.Declarations.Sorts {
		fmt.Fprintf(&b, "(declare-sort %s 0)\n", s.Name)
	}
	for _, v := range q.Declarations.Variables {
		fmt.Fprintf(&b, "(declare-const %s %s)\n", v.Name, renderSort(v.Sort))
	}
	for _, f := range q.Declarations.Functions {
		params := make([]string, len(f.Params))
		for i, p := range f.Params {
			params[i] = renderSort(p)
		}
		fmt.Fprintf(&b, "(declare-fun %s (%s) %s)\n", f.Name, strings.Join(params, " "), renderSort(f.ReturnSort))
	}
	for _, l := range q.Declarations.Labels {
		fmt.Fprintf(&b, "(declare-const %s Bool)\n", l.Name)
	}
	for _, a := range q.Assertions {
		fmt.Fprintf(&b, "(assert %s)\n", renderExpr(a))
	}
	b.WriteString("(check-sat)\n")
	return b.String()
}

// RenderSort and RenderExpression expose the printer's per-node rendering so
// a solver adapter can emit one command at a time (declare-*, assert, push,
// pop) instead of a whole Query at once.
func RenderSort(s Sort) string       { return renderSort(s) }
func RenderExpression(e Expression) string { return renderExpr(e) }

func renderSort(s Sort) string {
	switch v := s.(type) {
	case BoolSort:
		return "Bool"
	case IntSort:
		return "Int"
	case RealSort:
		return "Real"
	case UninterpretedSort:
		return string(v.Name)
	default:
		panic(fmt.Sprintf("smt: unknown sort %T", s))
	}
}

func renderExpr(e Expression) string {
	switch v := e.(type) {
	case Variable:
		return string(v.Name)
	case Constant:
		if v.IsBool {
			if v.Bool {
				return "true"
			}
			return "false"
		}
		if v.Int < 0 {
			return fmt.Sprintf("(- %d)", -v.Int)
		}
		return fmt.Sprintf("%d", v.Int)
	case UnaryOperation:
		return fmt.Sprintf("(%s %s)", renderUnaryOp(v.Kind), renderExpr(v.Arg))
	case BinaryOperation:
		return fmt.Sprintf("(%s %s %s)", renderBinaryOp(v.Kind), renderExpr(v.Left), renderExpr(v.Right))
	case Conditional:
		return fmt.Sprintf("(ite %s %s %s)", renderExpr(v.Guard), renderExpr(v.ThenExpr), renderExpr(v.ElseExpr))
	case Quantifier:
		bindings := make([]string, len(v.Variables))
		for i, bv := range v.Variables {
			bindings[i] = fmt.Sprintf("(%s %s)", bv.Name, renderSort(bv.Sort))
		}
		body := renderExpr(v.Body)
		if len(v.Triggers) > 0 {
			patterns := make([]string, len(v.Triggers))
			for i, t := range v.Triggers {
				parts := make([]string, len(t.Parts))
				for j, p := range t.Parts {
					parts[j] = renderExpr(p)
				}
				patterns[i] = fmt.Sprintf(":pattern (%s)", strings.Join(parts, " "))
			}
			body = fmt.Sprintf("(! %s %s)", body, strings.Join(patterns, " "))
		}
		return fmt.Sprintf("(%s (%s) %s)", renderQuantifierOp(v.Kind), strings.Join(bindings, " "), body)
	case FunctionApplication:
		if len(v.Args) == 0 {
			return string(v.Function)
		}
		args := make([]string, len(v.Args))
		for i, a := range v.Args {
			args[i] = renderExpr(a)
		}
		return fmt.Sprintf("(%s %s)", v.Function, strings.Join(args, " "))
	case LabelledExpression:
		return fmt.Sprintf("(! %s :%s %s)", renderExpr(v.Inner), v.Positivity.annotation(), v.Label)
	default:
		panic(fmt.Sprintf("smt: unknown expression %T", e))
	}
}

func renderUnaryOp(k UnaryOperationKind) string {
	if k == Not {
		return "not"
	}
	return "-"
}

func renderBinaryOp(k BinaryOperationKind) string {
	switch k {
	case Eq:
		return "="
	case Ne:
		return "distinct"
	case Gt:
		return ">"
	case Ge:
		return ">="
	case Lt:
		return "<"
	case Le:
		return "<="
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mul:
		return "*"
	case Div:
		return "div"
	case Mod:
		return "mod"
	case And:
		return "and"
	case Or:
		return "or"
	case Implies:
		return "=>"
	default:
		panic(fmt.Sprintf("smt: unknown binary operation kind %d", k))
	}
}

func renderQuantifierOp(k QuantifierKind) string {
	if k == ForAll {
		return "forall"
	}
	return "exists"
}
