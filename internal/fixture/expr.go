package fixture

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"svirpti/internal/high"
)

// exprNode is the YAML tagged union for high.Expression. Exactly one field
// should be set; UnmarshalYAML decodes the whole node into rawExpr, and the
// conversion to high.Expression picks the variant from whichever field is set.
type exprNode struct {
	raw rawExpr
}

type rawExpr struct {
	Var   *string     `yaml:"var"`
	Bool  *bool       `yaml:"bool"`
	Int   *int64      `yaml:"int"`
	Not   *exprNode   `yaml:"not"`
	Neg   *exprNode   `yaml:"neg"`
	Op    string      `yaml:"op"`
	Left  *exprNode   `yaml:"left"`
	Right *exprNode   `yaml:"right"`
	If    *exprNode   `yaml:"if"`
	Then  *exprNode   `yaml:"then"`
	Else  *exprNode   `yaml:"else"`
	ForAll []boundVar `yaml:"forall"`
	Exists []boundVar `yaml:"exists"`
	Triggers [][]exprNode `yaml:"triggers"`
	Body  *exprNode   `yaml:"body"`
	Call  string      `yaml:"call"`
	Args  []exprNode  `yaml:"args"`
}

type boundVar struct {
	Name string `yaml:"name"`
	Sort string `yaml:"sort"`
}

func (e *exprNode) UnmarshalYAML(value *yaml.Node) error {
	return value.Decode(&e.raw)
}

var binaryOps = map[string]high.BinaryOperationKind{
	"==": high.Eq, "!=": high.Ne, ">": high.Gt, ">=": high.Ge, "<": high.Lt, "<=": high.Le,
	"+": high.Add, "-": high.Sub, "*": high.Mul, "/": high.Div, "%": high.Mod,
	"&&": high.And, "||": high.Or, "==>": high.Implies,
}

func (e exprNode) toExpression() (high.Expression, error) {
	r := e.raw
	switch {
	case r.Var != nil:
		return high.Variable{Name: high.VariableSymbol(*r.Var)}, nil
	case r.Bool != nil:
		return high.BoolConst(*r.Bool), nil
	case r.Int != nil:
		return high.IntConst(*r.Int), nil
	case r.Not != nil:
		inner, err := r.Not.toExpression()
		if err != nil {
			return nil, err
		}
		return high.UnaryOperation{Kind: high.Not, Arg: inner}, nil
	case r.Neg != nil:
		inner, err := r.Neg.toExpression()
		if err != nil {
			return nil, err
		}
		return high.UnaryOperation{Kind: high.Minus, Arg: inner}, nil
	case r.Op != "":
		kind, ok := binaryOps[r.Op]
		if !ok {
			return nil, fmt.Errorf("unknown binary operator %q", r.Op)
		}
		if r.Left == nil || r.Right == nil {
			return nil, fmt.Errorf("binary operator %q needs left and right", r.Op)
		}
		left, err := r.Left.toExpression()
		if err != nil {
			return nil, err
		}
		right, err := r.Right.toExpression()
		if err != nil {
			return nil, err
		}
		return high.BinaryOperation{Kind: kind, Left: left, Right: right}, nil
	case r.If != nil:
		if r.Then == nil || r.Else == nil {
			return nil, fmt.Errorf("if expression needs then and else")
		}
		guard, err := r.If.toExpression()
		if err != nil {
			return nil, err
		}
		thenExpr, err := r.Then.toExpression()
		if err != nil {
			return nil, err
		}
		elseExpr, err := r.Else.toExpression()
		if err != nil {
			return nil, err
		}
		return high.Conditional{Guard: guard, ThenExpr: thenExpr, ElseExpr: elseExpr}, nil
	case r.ForAll != nil || r.Exists != nil:
		return e.toQuantifier()
	case r.Call != "":
		args := make([]high.Expression, len(r.Args))
		for i, a := range r.Args {
			arg, err := a.toExpression()
			if err != nil {
				return nil, err
			}
			args[i] = arg
		}
		return high.FunctionApplication{Function: high.FunctionSymbol(r.Call), Args: args}, nil
	default:
		return nil, fmt.Errorf("empty or unrecognized expression node")
	}
}

func (e exprNode) toQuantifier() (high.Expression, error) {
	r := e.raw
	kind := high.ForAll
	bound := r.ForAll
	if r.Exists != nil {
		kind = high.Exists
		bound = r.Exists
	}
	if r.Body == nil {
		return nil, fmt.Errorf("quantifier needs a body")
	}
	variables := make([]high.BoundedVariableDecl, len(bound))
	for i, v := range bound {
		sort, err := parseSort(v.Sort)
		if err != nil {
			return nil, err
		}
		variables[i] = high.BoundedVariableDecl{Name: high.VariableSymbol(v.Name), Sort: sort}
	}
	var triggers []high.Trigger
	for _, t := range r.Triggers {
		parts := make([]high.Expression, len(t))
		for i, p := range t {
			part, err := p.toExpression()
			if err != nil {
				return nil, err
			}
			parts[i] = part
		}
		triggers = append(triggers, high.Trigger{Parts: parts})
	}
	body, err := r.Body.toExpression()
	if err != nil {
		return nil, err
	}
	return high.Quantifier{Kind: kind, Variables: variables, Triggers: triggers, Body: body}, nil
}
