package fixture

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"svirpti/internal/high"
)

// statementNode is the YAML tagged union for high.Statement.
type statementNode struct {
	raw rawStatement
}

type rawStatement struct {
	Assign *assignDoc `yaml:"assign"`
	Havoc  *havocDoc  `yaml:"havoc"`
	Assert *assertDoc `yaml:"assert"`
	Assume *assertDoc `yaml:"assume"`
}

type assignDoc struct {
	Var  string   `yaml:"var"`
	Expr exprNode `yaml:"expr"`
}

type havocDoc struct {
	Var string `yaml:"var"`
}

type assertDoc struct {
	Expr  exprNode `yaml:"expr"`
	Label string   `yaml:"label"`
}

func (s *statementNode) UnmarshalYAML(value *yaml.Node) error {
	return value.Decode(&s.raw)
}

func labelPtr(s string) *high.LabelSymbol {
	if s == "" {
		return nil
	}
	return high.Label(s)
}

func (s statementNode) toStatement() (high.Statement, error) {
	r := s.raw
	switch {
	case r.Assign != nil:
		expr, err := r.Assign.Expr.toExpression()
		if err != nil {
			return nil, err
		}
		return high.Assign{Var: high.VariableSymbol(r.Assign.Var), Expr: expr}, nil
	case r.Havoc != nil:
		return high.Havoc{Var: high.VariableSymbol(r.Havoc.Var)}, nil
	case r.Assert != nil:
		expr, err := r.Assert.Expr.toExpression()
		if err != nil {
			return nil, err
		}
		return high.Assert{Expr: expr, Label: labelPtr(r.Assert.Label)}, nil
	case r.Assume != nil:
		expr, err := r.Assume.Expr.toExpression()
		if err != nil {
			return nil, err
		}
		return high.Assume{Expr: expr, Label: labelPtr(r.Assume.Label)}, nil
	default:
		return nil, fmt.Errorf("empty or unrecognized statement node")
	}
}
