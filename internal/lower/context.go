// Package lower implements the high-to-low lowering pass: it turns a
// structured, mutable-variable CFG into single-assignment form by bumping a
// version counter on every assignment and threading the live version of each
// variable block to block, inserting equality assumes at CFG joins instead of
// real phi nodes.
package lower

import (
	"svirpti/internal/high"
	"svirpti/internal/low"
)

// Context supplies the naming scheme used to turn a high-tier symbol into its
// low-tier counterpart. verifier.StringContext is the concrete implementation
// used outside of tests.
type Context interface {
	CreateVersionedVariableSymbol(name high.VariableSymbol, version int) low.VariableSymbol
	LowerDomainName(name high.UninterpretedSortSymbol) low.UninterpretedSortSymbol
	LowerLabel(label high.LabelSymbol) low.LabelSymbol
}
