package lower

import (
	"fmt"

	"svirpti/internal/high"
	"svirpti/internal/low"
)

// Lower translates one verified-valid ProcedureDeclaration into SSA form.
// Every assignment becomes an equality Assume on a freshly versioned
// variable; every CFG join with more than one predecessor gets an equality
// Assume per variable whose version disagreed across predecessors, bringing
// all predecessors' views of that variable to the same (highest) version
// before the block's own statements run.
func Lower(program *high.ProgramFragment, ctx Context) *low.ProgramFragment {
	program.Procedure.Validate()

	predecessors := program.Procedure.ComputePredecessors()
	versionsAfterBlock := make(map[high.BasicBlockID]map[high.VariableSymbol]int)

	allVariables := make([]low.VariableDeclaration, 0, len(program.Procedure.Variables))
	variableSorts := make(map[high.VariableSymbol]low.Sort, len(program.Procedure.Variables))
	variableCounters := make(map[high.VariableSymbol]int, len(program.Procedure.Variables))
	for _, v := range program.Procedure.Variables {
		sort := lowerType(ctx, v.Sort)
		allVariables = append(allVariables, low.VariableDeclaration{
			Name: ctx.CreateVersionedVariableSymbol(v.Name, 0),
			Sort: sort,
		})
		variableSorts[v.Name] = sort
		variableCounters[v.Name] = 0
	}

	basicBlocks := make([]low.BasicBlock, len(program.Procedure.BasicBlocks))
	for _, entry := range program.Procedure.Walk() {
		id, block := entry.ID, entry.Block
		var statements []low.Statement
		preds := predecessors[id]

		var versions map[high.VariableSymbol]int
		switch {
		case len(preds) == 0:
			// Only the entry block has no predecessors: every variable
			// starts at version 0.
			versions = make(map[high.VariableSymbol]int, len(program.Procedure.Variables))
			for _, v := range program.Procedure.Variables {
				versions[v.Name] = 0
			}
		case len(preds) == 1:
			// Copy rather than alias the predecessor's map: this block may
			// go on to bump a version (Assign/Havoc), and the predecessor's
			// stored map must stay untouched so its other successors still
			// inherit the unmodified versions.
			predVersions := versionsAfterBlock[preds[0]]
			versions = make(map[high.VariableSymbol]int, len(predVersions))
			for k, v := range predVersions {
				versions[k] = v
			}
		default:
			versions = make(map[high.VariableSymbol]int, len(program.Procedure.Variables))
			for _, v := range program.Procedure.Variables {
				maxVersion := 0
				for i, pred := range preds {
					version := versionsAfterBlock[pred][v.Name]
					if i == 0 || version > maxVersion {
						maxVersion = version
					}
				}
				for _, pred := range preds {
					version := versionsAfterBlock[pred][v.Name]
					if version != maxVersion {
						statements = append(statements, assumeVariableEquals(ctx, v.Name, version, maxVersion))
					}
				}
				versions[v.Name] = maxVersion
			}
		}

		if !high.IsTrue(block.Guard) {
			guard := lowerExpression(ctx, versions, block.Guard)
			statements = append(statements, low.AssumeWithLabel(guard, ctx.LowerLabel(block.Label)))
		}

		for _, stmt := range block.Statements {
			switch s := stmt.(type) {
			case high.Assert:
				assertion := lowerExpression(ctx, versions, s.Expr)
				statements = append(statements, low.Assert{Assertion: assertion, Label: lowerLabel(ctx, s.Label)})
			case high.Assume:
				assertion := lowerExpression(ctx, versions, s.Expr)
				statements = append(statements, low.Assume{Assertion: assertion, Label: lowerLabel(ctx, s.Label)})
			case high.Havoc:
				// Havoc drops any known constraint on the variable: bump its
				// version but assert nothing about the new value.
				incrementVersion(ctx, s.Var, variableSorts, variableCounters, &allVariables, versions)
			case high.Assign:
				rhs := lowerExpression(ctx, versions, s.Expr)
				newVar := incrementVersion(ctx, s.Var, variableSorts, variableCounters, &allVariables, versions)
				statements = append(statements, low.NewAssume(low.Equals(low.Variable{Name: newVar}, rhs)))
			default:
				panic(fmt.Sprintf("lower: unknown high statement %T", stmt))
			}
		}

		successors := make([]low.BasicBlockID, len(block.Successors))
		for i, s := range block.Successors {
			successors[i] = low.BasicBlockID(s)
		}
		basicBlocks[id] = low.BasicBlock{Statements: statements, Successors: successors}
		versionsAfterBlock[id] = versions
	}

	return &low.ProgramFragment{
		UninterpretedSorts: lowerSorts(ctx, program.Sorts),
		Variables:          allVariables,
		Functions:          lowerFunctions(ctx, program.Functions),
		Axioms:             lowerAxioms(ctx, program.Axioms),
		BasicBlocks:        basicBlocks,
	}
}

// lowerSorts carries the program's uninterpreted-sort declarations over to
// the low tier unchanged, renaming only the sort symbol.
func lowerSorts(ctx Context, sorts []high.UninterpretedSortDeclaration) []low.UninterpretedSortDeclaration {
	out := make([]low.UninterpretedSortDeclaration, len(sorts))
	for i, s := range sorts {
		out[i] = low.UninterpretedSortDeclaration{Name: ctx.LowerDomainName(s.Name)}
	}
	return out
}

// lowerFunctions carries the program's uninterpreted-function declarations
// over to the low tier, lowering each parameter and return sort.
func lowerFunctions(ctx Context, functions []high.FunctionDeclaration) []low.FunctionDeclaration {
	out := make([]low.FunctionDeclaration, len(functions))
	for i, f := range functions {
		params := make([]low.Sort, len(f.Params))
		for j, p := range f.Params {
			params[j] = lowerType(ctx, p)
		}
		out[i] = low.FunctionDeclaration{
			Name:       low.FunctionSymbol(f.Name),
			Params:     params,
			ReturnSort: lowerType(ctx, f.ReturnSort),
		}
	}
	return out
}

// lowerAxioms lowers each global axiom's expression. An axiom has no live
// program variable in scope (it holds at every program point, not at one
// particular block), so its expression is lowered against an empty version
// map: a reference to an actual program variable is rejected the same way an
// undeclared-variable reference anywhere else is, and only function symbols,
// uninterpreted constants, and the axiom's own quantifier-bound variables may
// appear in it.
func lowerAxioms(ctx Context, axioms []high.AxiomDeclaration) []low.AxiomDeclaration {
	out := make([]low.AxiomDeclaration, len(axioms))
	noVersions := map[high.VariableSymbol]int{}
	for i, a := range axioms {
		out[i] = low.AxiomDeclaration{
			Name: low.AxiomNameSymbol(a.Name),
			Expr: lowerExpression(ctx, noVersions, a.Expr),
		}
	}
	return out
}

func lowerLabel(ctx Context, label *high.LabelSymbol) *low.LabelSymbol {
	if label == nil {
		return nil
	}
	lowered := ctx.LowerLabel(*label)
	return &lowered
}

// incrementVersion bumps the SSA version of variable, registers a new
// VariableDeclaration for it, updates the caller's live-versions map and
// returns the freshly versioned low-tier symbol.
func incrementVersion(
	ctx Context,
	variable high.VariableSymbol,
	variableSorts map[high.VariableSymbol]low.Sort,
	variableCounters map[high.VariableSymbol]int,
	allVariables *[]low.VariableDeclaration,
	versions map[high.VariableSymbol]int,
) low.VariableSymbol {
	sort, ok := variableSorts[variable]
	if !ok {
		panic(fmt.Sprintf("lower: assignment to undeclared variable %q", variable))
	}
	variableCounters[variable]++
	version := variableCounters[variable]
	name := ctx.CreateVersionedVariableSymbol(variable, version)
	*allVariables = append(*allVariables, low.VariableDeclaration{Name: name, Sort: sort})
	versions[variable] = version
	return name
}

func assumeVariableEquals(ctx Context, name high.VariableSymbol, version1, version2 int) low.Statement {
	return low.NewAssume(low.Equals(
		low.Variable{Name: ctx.CreateVersionedVariableSymbol(name, version1)},
		low.Variable{Name: ctx.CreateVersionedVariableSymbol(name, version2)},
	))
}
