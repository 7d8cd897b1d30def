// Package wp implements the low-to-smt weakest-precondition encoder: walking
// the CFG in reverse topological order, it accumulates, for each block, the
// condition under which every path from that block to the exit is safe, and
// emits one SMT assertion per block binding a fresh boolean alias to that
// condition. This keeps the encoded query linear in program size instead of
// exponential in branch depth.
package wp

import (
	"svirpti/internal/low"
	"svirpti/internal/smt"
)

// Context supplies the low-to-smt naming scheme.
type Context interface {
	ConvertVariableNameToSMT(name low.VariableSymbol) smt.VariableSymbol
	ConvertUninterpretedSortToSMT(name low.UninterpretedSortSymbol) smt.UninterpretedSortSymbol
	ConvertFunctionNameToSMT(name low.FunctionSymbol) smt.FunctionSymbol
	ConvertLabelNameToSMT(name low.LabelSymbol) smt.LabelSymbol
	CreateLabelForBasicBlock(id low.BasicBlockID) smt.VariableSymbol
}
