package smt

// UninterpretedSortDeclaration declares an opaque domain.
type UninterpretedSortDeclaration struct {
	Name UninterpretedSortSymbol
}

// VariableDeclaration declares one SSA variable at its final SMT sort.
type VariableDeclaration struct {
	Name VariableSymbol
	Sort Sort
}

// FunctionDeclaration declares an uninterpreted function symbol.
type FunctionDeclaration struct {
	Name       FunctionSymbol
	Params     []Sort
	ReturnSort Sort
}

// LabelDeclaration declares a nullary Bool constant used as a label: the
// solver's model assigns it a concrete truth value that identifies which
// branch of the verification condition failed.
type LabelDeclaration struct {
	Name LabelSymbol
}
