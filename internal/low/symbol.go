package low

// Symbols are opaque, string-valued identifiers private to the low tier, kept
// as distinct named types from high's and smt's so the compiler rejects a
// symbol crossing a tier boundary unconverted.
type (
	VariableSymbol          string
	FunctionSymbol          string
	UninterpretedSortSymbol string
	LabelSymbol             string
	AxiomNameSymbol         string
)
