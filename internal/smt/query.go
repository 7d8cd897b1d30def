package smt

// Declarations collects everything that must be declared to the solver
// before a Query's assertions can be asserted.
type Declarations struct {
	Sorts     []UninterpretedSortDeclaration
	Functions []FunctionDeclaration
	Labels    []LabelDeclaration
	Variables []VariableDeclaration
}

// Query is the final, solver-ready artifact the wp package produces: a set
// of declarations plus the assertions whose conjunction is unsatisfiable iff
// the procedure verifies.
type Query struct {
	Declarations Declarations
	Assertions   []Expression
}
