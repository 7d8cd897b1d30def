package high

// VariableDeclaration declares a program variable and its sort.
type VariableDeclaration struct {
	Name VariableSymbol
	Sort Type
}

// UninterpretedSortDeclaration declares a nullary uninterpreted sort.
type UninterpretedSortDeclaration struct {
	Name UninterpretedSortSymbol
}

// FunctionDeclaration declares an uninterpreted function.
type FunctionDeclaration struct {
	Name       FunctionSymbol
	Params     []Type
	ReturnSort Type
}

// AxiomDeclaration is a global assumption available at every program point.
type AxiomDeclaration struct {
	Name AxiomNameSymbol
	Expr Expression
}
