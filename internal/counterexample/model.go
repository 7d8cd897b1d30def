package counterexample

import (
	"sort"

	"svirpti/internal/low"
	"svirpti/internal/smt"
)

// Model is the projection of a solver model onto the program's own
// variables: the SSA-versioned alias/label booleans the encoder introduced
// are dropped.
type Model struct {
	Variables map[low.VariableSymbol]smt.Value
}

// SortedNames returns the modeled variable names in a deterministic order,
// for printing.
func (m Model) SortedNames() []low.VariableSymbol {
	names := make([]low.VariableSymbol, 0, len(m.Variables))
	for name := range m.Variables {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

func newModel(ctx Context, program *low.ProgramFragment, model smt.Model) Model {
	known := make(map[low.VariableSymbol]bool, len(program.Variables))
	for _, v := range program.Variables {
		known[v.Name] = true
	}
	variables := make(map[low.VariableSymbol]smt.Value)
	for _, item := range model.Items {
		if len(item.Args) != 0 {
			continue
		}
		name := ctx.ResolveLowVariable(smt.VariableSymbol(item.Name))
		if known[name] {
			variables[name] = item.Value
		}
	}
	return Model{Variables: variables}
}
