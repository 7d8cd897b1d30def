package smt

// Symbols are opaque, string-valued identifiers private to the smt tier.
type (
	VariableSymbol          string
	FunctionSymbol          string
	UninterpretedSortSymbol string
	LabelSymbol             string
)
