// Package counterexample implements the label-flipping enumeration
// algorithm from Leino et al., "Generating error traces from
// verification-condition counterexamples": given one failing verification
// condition, it walks the solver's reported labels back and forth to surface
// every distinct concrete counterexample, not just the first one found.
package counterexample

import (
	"svirpti/internal/high"
	"svirpti/internal/low"
	"svirpti/internal/smt"
)

// Context resolves the smt-tier names a solver reports back into the
// low/high-tier names the rest of the pipeline understands.
type Context interface {
	ConvertKnownLabelNameToSMT(label low.LabelSymbol) smt.LabelSymbol
	ResolveLowLabel(name smt.LabelSymbol) low.LabelSymbol
	ResolveLowVariable(name smt.VariableSymbol) low.VariableSymbol
	ResolveHighLabel(name low.LabelSymbol) high.LabelSymbol
}
