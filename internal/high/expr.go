package high

import (
	"fmt"
	"strings"
)

// Expression is the high-tier expression algebra: a closed sum of seven
// variants. Quantifier bound variables shadow outer scopes; lowering never
// substitutes under a binder, so no capture is ever introduced.
type Expression interface {
	isExpression()
	fmt.Stringer
}

// UnaryOperationKind enumerates the unary operators.
type UnaryOperationKind int

const (
	Not UnaryOperationKind = iota
	Minus
)

func (k UnaryOperationKind) String() string {
	switch k {
	case Not:
		return "!"
	case Minus:
		return "-"
	default:
		return "?unary?"
	}
}

// BinaryOperationKind enumerates the binary operators.
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

// QuantifierKind enumerates the two first-order quantifiers.
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

// Variable references a declared program variable.
type Variable struct {
	Name VariableSymbol
}

func (Variable) isExpression() {}
func (v Variable) String() string { return string(v.Name) }

// Constant is a literal Bool or Int value (Real constants are not
// syntactically representable; they only ever arise as model values).
type Constant struct {
	// exactly one of Bool/IsBool or Int is meaningful
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

// BoolConst and IntConst build Constant expressions.
func BoolConst(b bool) Constant { return Constant{IsBool: true, Bool: b} }
func IntConst(i int64) Constant { return Constant{Int: i} }

// IsTrue reports whether e is syntactically the literal `true`, used to
// decide whether a block guard needs an Assume emitted at all.
func IsTrue(e Expression) bool {
	c, ok := e.(Constant)
	return ok && c.IsBool && c.Bool
}

// IsFalse reports whether e is syntactically the literal `false`.
func IsFalse(e Expression) bool {
	c, ok := e.(Constant)
	return ok && c.IsBool && !c.Bool
}

// UnaryOperation applies a unary operator to an argument.
type UnaryOperation struct {
	Kind UnaryOperationKind
	Arg  Expression
}

func (UnaryOperation) isExpression() {}
func (u UnaryOperation) String() string { return fmt.Sprintf("%s(%s)", u.Kind, u.Arg) }

// BinaryOperation applies a binary operator to two arguments.
type BinaryOperation struct {
	Kind  BinaryOperationKind
	Left  Expression
	Right Expression
}

func (BinaryOperation) isExpression() {}
func (b BinaryOperation) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left, b.Kind, b.Right)
}

// Conditional is an if-then-else expression.
type Conditional struct {
	Guard    Expression
	ThenExpr Expression
	ElseExpr Expression
}

func (Conditional) isExpression() {}
func (c Conditional) String() string {
	return fmt.Sprintf("(if %s then %s else %s)", c.Guard, c.ThenExpr, c.ElseExpr)
}

// BoundedVariableDecl declares a variable bound by a Quantifier.
type BoundedVariableDecl struct {
	Name VariableSymbol
	Sort Type
}

// Trigger is one SMT quantifier instantiation pattern: a set of
// sub-expressions that, together, must match for the solver to instantiate
// the quantifier.
type Trigger struct {
	Parts []Expression
}

// Quantifier is a ForAll/Exists binding with optional triggers.
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

// FunctionApplication applies a declared function to arguments.
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
