// Package verifier wires the lowering pass, the weakest-precondition
// encoder and an SMT solver together into the end-to-end verification
// driver, and owns the naming scheme that turns high/low/smt symbols into
// each other.
package verifier

import (
	"fmt"
	"strings"

	"svirpti/internal/high"
	"svirpti/internal/low"
	"svirpti/internal/smt"
)

// Context is the full symbol-naming capability surface the verification
// pipeline needs: creating SSA-versioned variable names, carrying sort and
// label names across tiers unchanged, and resolving smt-tier names reported
// in a counterexample back to the high-tier names a user recognizes.
type Context interface {
	CreateVersionedVariableSymbol(name high.VariableSymbol, version int) low.VariableSymbol
	LowerDomainName(name high.UninterpretedSortSymbol) low.UninterpretedSortSymbol
	LowerLabel(label high.LabelSymbol) low.LabelSymbol

	ConvertVariableNameToSMT(name low.VariableSymbol) smt.VariableSymbol
	ConvertUninterpretedSortToSMT(name low.UninterpretedSortSymbol) smt.UninterpretedSortSymbol
	ConvertFunctionNameToSMT(name low.FunctionSymbol) smt.FunctionSymbol
	ConvertLabelNameToSMT(name low.LabelSymbol) smt.LabelSymbol
	ConvertKnownLabelNameToSMT(name low.LabelSymbol) smt.LabelSymbol
	CreateLabelForBasicBlock(id low.BasicBlockID) smt.VariableSymbol

	ResolveHighLabel(name low.LabelSymbol) high.LabelSymbol
	ResolveHighVariable(name low.VariableSymbol) high.VariableSymbol
	ResolveLowLabel(name smt.LabelSymbol) low.LabelSymbol
	ResolveLowVariable(name smt.VariableSymbol) low.VariableSymbol
}

// StringContext is the default Context: every tier's symbols are plain
// strings, so "lowering" a symbol across tiers is identity, and only
// versioning (name@version) and basic-block aliasing (BB@i) add structure.
type StringContext struct{}

// NewStringContext returns the default naming scheme.
func NewStringContext() *StringContext { return &StringContext{} }

func (*StringContext) CreateVersionedVariableSymbol(name high.VariableSymbol, version int) low.VariableSymbol {
	return low.VariableSymbol(fmt.Sprintf("%s@%d", name, version))
}

func (*StringContext) LowerDomainName(name high.UninterpretedSortSymbol) low.UninterpretedSortSymbol {
	return low.UninterpretedSortSymbol(name)
}

func (*StringContext) LowerLabel(label high.LabelSymbol) low.LabelSymbol {
	return low.LabelSymbol(label)
}

func (*StringContext) ConvertVariableNameToSMT(name low.VariableSymbol) smt.VariableSymbol {
	return smt.VariableSymbol(name)
}

func (*StringContext) ConvertUninterpretedSortToSMT(name low.UninterpretedSortSymbol) smt.UninterpretedSortSymbol {
	return smt.UninterpretedSortSymbol(name)
}

func (*StringContext) ConvertFunctionNameToSMT(name low.FunctionSymbol) smt.FunctionSymbol {
	return smt.FunctionSymbol(name)
}

func (*StringContext) ConvertLabelNameToSMT(name low.LabelSymbol) smt.LabelSymbol {
	return smt.LabelSymbol(name)
}

func (c *StringContext) ConvertKnownLabelNameToSMT(name low.LabelSymbol) smt.LabelSymbol {
	return c.ConvertLabelNameToSMT(name)
}

func (*StringContext) CreateLabelForBasicBlock(id low.BasicBlockID) smt.VariableSymbol {
	return smt.VariableSymbol(fmt.Sprintf("BB@%d", id))
}

func (*StringContext) ResolveHighLabel(name low.LabelSymbol) high.LabelSymbol {
	return high.LabelSymbol(name)
}

// ResolveHighVariable strips the trailing "@<version>" suffix a versioned
// low-tier name carries, recovering the high-tier variable it came from.
func (*StringContext) ResolveHighVariable(name low.VariableSymbol) high.VariableSymbol {
	s := string(name)
	if idx := strings.LastIndexByte(s, '@'); idx >= 0 {
		s = s[:idx]
	}
	return high.VariableSymbol(s)
}

func (*StringContext) ResolveLowLabel(name smt.LabelSymbol) low.LabelSymbol {
	return low.LabelSymbol(name)
}

func (*StringContext) ResolveLowVariable(name smt.VariableSymbol) low.VariableSymbol {
	return low.VariableSymbol(name)
}
