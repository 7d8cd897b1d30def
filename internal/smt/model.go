package smt

import "fmt"

// Value is a solver-reported model value. Exactly one field is meaningful,
// selected by Kind.
type Value struct {
	Kind          ValueKind
	Bool          bool
	Int           int64
	Uninterpreted string
}

type ValueKind int

const (
	BoolValue ValueKind = iota
	IntValue
	UninterpretedValue
)

func (v Value) String() string {
	switch v.Kind {
	case BoolValue:
		return fmt.Sprintf("%t", v.Bool)
	case IntValue:
		return fmt.Sprintf("%d", v.Int)
	default:
		return v.Uninterpreted
	}
}

// ModelItemArg is one argument of a get-value application in a function's
// model entry; uninterpreted functions model as a table of these.
type ModelItemArg struct {
	Sort  Sort
	Value Value
}

// ModelItem is one `(define-fun name (args) sort value)` entry the solver
// returned in response to get-model.
type ModelItem struct {
	Name  string
	Args  []ModelItemArg
	Sort  Sort
	Value Value
}

// Model is the full solver response to a get-model query, in declaration
// order as returned by the solver (not sorted; callers that want a
// deterministic variable-only view should build one from Items).
type Model struct {
	Items []ModelItem
}

// Variable looks up the value the model assigns to a plain 0-arity variable.
func (m Model) Variable(name VariableSymbol) (Value, bool) {
	for _, item := range m.Items {
		if item.Name == string(name) && len(item.Args) == 0 {
			return item.Value, true
		}
	}
	return Value{}, false
}

// GetLabel reports whether the model assigns true to the nullary Bool
// constant backing a label. Labels are declared and modeled exactly like any
// other 0-arity variable.
func (m Model) GetLabel(name LabelSymbol) bool {
	v, ok := m.Variable(VariableSymbol(name))
	return ok && v.Kind == BoolValue && v.Bool
}
