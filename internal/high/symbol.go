package high

// Symbols are opaque, string-valued identifiers. Each is its own named
// string type so the compiler — not a runtime check — rejects a low or smt
// symbol accidentally passed where a high symbol belongs.
type (
	VariableSymbol          string
	FunctionSymbol          string
	UninterpretedSortSymbol string
	AdtNameSymbol           string
	LabelSymbol             string
	AxiomNameSymbol         string
)
