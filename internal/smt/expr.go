package smt

import (
	"fmt"
	"strings"
)

// Expression mirrors low.Expression, plus LabelledExpression which only
// exists at this tier: the WP encoder wraps every labelled Assert/Assume
// condition in one so a failing query can be attributed back to the statement
// that produced it.
type Expression interface {
	isExpression()
	fmt.Stringer
}

type UnaryOperationKind int

const (
	Not UnaryOperationKind = iota
	Minus
)

func (k UnaryOperationKind) String() string {
	if k == Not {
		return "!"
	}
	return "-"
}

type BinaryOperationKind int

const (
	Eq BinaryOperationKind = iota
	Ne
	Gt
	Ge
	Lt
	Le
	Add
	Sub
	Mul
	Div
	Mod
	And
	Or
	Implies
)

func (k BinaryOperationKind) String() string {
	switch k {
	case Eq:
		return "=="
	case Ne:
		return "!="
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
		return "/"
	case Mod:
		return "%"
	case And:
		return "&&"
	case Or:
		return "||"
	case Implies:
		return "==>"
	default:
		return "?binary?"
	}
}

type QuantifierKind int

const (
	ForAll QuantifierKind = iota
	Exists
)

func (k QuantifierKind) String() string {
	if k == ForAll {
		return "forall"
	}
	return "exists"
}

type Variable struct {
	Name VariableSymbol
}

func (Variable) isExpression()    {}
func (v Variable) String() string { return string(v.Name) }

type Constant struct {
	IsBool bool
	Bool   bool
	Int    int64
}

func (Constant) isExpression() {}
func (c Constant) String() string {
	if c.IsBool {
		return fmt.Sprintf("%t", c.Bool)
	}
	return fmt.Sprintf("%d", c.Int)
}

func BoolConst(b bool) Constant { return Constant{IsBool: true, Bool: b} }
func IntConst(i int64) Constant { return Constant{Int: i} }

type UnaryOperation struct {
	Kind UnaryOperationKind
	Arg  Expression
}

func (UnaryOperation) isExpression()    {}
func (u UnaryOperation) String() string { return fmt.Sprintf("%s(%s)", u.Kind, u.Arg) }

type BinaryOperation struct {
	Kind  BinaryOperationKind
	Left  Expression
	Right Expression
}

func (BinaryOperation) isExpression() {}
func (b BinaryOperation) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left, b.Kind, b.Right)
}

// Equals is a convenience constructor mirroring low.Equals.
func Equals(left, right Expression) Expression {
	return BinaryOperation{Kind: Eq, Left: left, Right: right}
}

// AndExpr conjoins two expressions, folding away a plain `true` operand so
// accumulated WP conditions don't grow a long tail of `&& true`.
func AndExpr(left, right Expression) Expression {
	if c, ok := left.(Constant); ok && c.IsBool && c.Bool {
		return right
	}
	if c, ok := right.(Constant); ok && c.IsBool && c.Bool {
		return left
	}
	return BinaryOperation{Kind: And, Left: left, Right: right}
}

// ImpliesExpr builds `left ==> right`, folding away a plain `true` antecedent.
func ImpliesExpr(left, right Expression) Expression {
	if c, ok := left.(Constant); ok && c.IsBool && c.Bool {
		return right
	}
	return BinaryOperation{Kind: Implies, Left: left, Right: right}
}

// NotExpr negates e.
func NotExpr(e Expression) Expression {
	return UnaryOperation{Kind: Not, Arg: e}
}

// LabelNegative wraps inner in a Negative-polarity label: it lights up when
// inner is false, for attributing a failed Assert.
func LabelNegative(label LabelSymbol, inner Expression) Expression {
	return LabelledExpression{Label: label, Positivity: Negative, Inner: inner}
}

// LabelPositive wraps inner in a Positive-polarity label: it lights up when
// inner is true, for attributing a traversed Assume/guard.
func LabelPositive(label LabelSymbol, inner Expression) Expression {
	return LabelledExpression{Label: label, Positivity: Positive, Inner: inner}
}

type Conditional struct {
	Guard    Expression
	ThenExpr Expression
	ElseExpr Expression
}

func (Conditional) isExpression() {}
func (c Conditional) String() string {
	return fmt.Sprintf("(if %s then %s else %s)", c.Guard, c.ThenExpr, c.ElseExpr)
}

type BoundedVariableDecl struct {
	Name VariableSymbol
	Sort Sort
}

type Trigger struct {
	Parts []Expression
}

type Quantifier struct {
	Kind      QuantifierKind
	Variables []BoundedVariableDecl
	Triggers  []Trigger
	Body      Expression
}

func (Quantifier) isExpression() {}
func (q Quantifier) String() string {
	names := make([]string, len(q.Variables))
	for i, v := range q.Variables {
		names[i] = fmt.Sprintf("%s: %s", v.Name, v.Sort)
	}
	return fmt.Sprintf("(%s %s :: %s)", q.Kind, strings.Join(names, ", "), q.Body)
}

type FunctionApplication struct {
	Function FunctionSymbol
	Args     []Expression
}

func (FunctionApplication) isExpression() {}
func (f FunctionApplication) String() string {
	args := make([]string, len(f.Args))
	for i, a := range f.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", f.Function, strings.Join(args, ", "))
}

// Positivity selects which polarity of a labelled expression lights up the
// label: Positive corresponds to SMT-LIB `:lblpos` (label fires when the
// wrapped expression holds), Negative to `:lblneg` (fires when it doesn't).
type Positivity int

const (
	Positive Positivity = iota
	Negative
)

func (p Positivity) annotation() string {
	if p == Positive {
		return "lblpos"
	}
	return "lblneg"
}

// LabelledExpression is `(! inner :lblpos L)` or `(! inner :lblneg L)`. The WP
// encoder wraps every labelled Assert condition in a Negative label (it lights
// up exactly when the assertion can fail) and every labelled Assume condition,
// which includes the guard of each block, in a Positive label (it lights up
// when control actually passed through). Unlabelled statements are not wrapped.
type LabelledExpression struct {
	Label      LabelSymbol
	Positivity Positivity
	Inner      Expression
}

func (LabelledExpression) isExpression() {}
func (l LabelledExpression) String() string {
	return fmt.Sprintf("(! %s :%s %s)", l.Inner, l.Positivity.annotation(), l.Label)
}
