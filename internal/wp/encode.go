package wp

import (
	"svirpti/internal/low"
	"svirpti/internal/smt"
)

// Encode computes the weakest-precondition query for program: the
// conjunction of its assertions is unsatisfiable iff every Assert in the
// program holds on every path from the entry block to the exit block.
func Encode(program *low.ProgramFragment, ctx Context) smt.Query {
	var assertions []smt.Expression

	sorts := make([]smt.UninterpretedSortDeclaration, len(program.UninterpretedSorts))
	for i, s := range program.UninterpretedSorts {
		sorts[i] = smt.UninterpretedSortDeclaration{Name: ctx.ConvertUninterpretedSortToSMT(s.Name)}
	}

	functions := make([]smt.FunctionDeclaration, len(program.Functions))
	for i, f := range program.Functions {
		params := make([]smt.Sort, len(f.Params))
		for j, p := range f.Params {
			params[j] = lowerSort(ctx, p)
		}
		functions[i] = smt.FunctionDeclaration{
			Name:       ctx.ConvertFunctionNameToSMT(f.Name),
			Params:     params,
			ReturnSort: lowerSort(ctx, f.ReturnSort),
		}
	}

	for _, a := range program.Axioms {
		assertions = append(assertions, lowerExpression(ctx, a.Expr))
	}

	variables := make([]smt.VariableDeclaration, len(program.Variables))
	for i, v := range program.Variables {
		variables[i] = smt.VariableDeclaration{Name: ctx.ConvertVariableNameToSMT(v.Name), Sort: lowerSort(ctx, v.Sort)}
	}

	var labels []smt.LabelDeclaration
	basicBlockWPs := make(map[low.BasicBlockID]smt.Expression, len(program.BasicBlocks))

	for _, entry := range program.ReverseWalk() {
		id, block := entry.ID, entry.Block

		var blockWP smt.Expression = smt.BoolConst(true)
		for i, successor := range block.Successors {
			if i == 0 {
				blockWP = basicBlockWPs[successor]
			} else {
				blockWP = smt.AndExpr(blockWP, basicBlockWPs[successor])
			}
		}

		for i := len(block.Statements) - 1; i >= 0; i-- {
			switch s := block.Statements[i].(type) {
			case low.Assert:
				condition := lowerExpression(ctx, s.Assertion)
				if s.Label != nil {
					name := ctx.ConvertLabelNameToSMT(*s.Label)
					labels = append(labels, smt.LabelDeclaration{Name: name})
					blockWP = smt.AndExpr(smt.LabelNegative(name, condition), blockWP)
				} else {
					blockWP = smt.AndExpr(condition, blockWP)
				}
			case low.Assume:
				condition := lowerExpression(ctx, s.Assertion)
				if s.Label != nil {
					name := ctx.ConvertLabelNameToSMT(*s.Label)
					labels = append(labels, smt.LabelDeclaration{Name: name})
					blockWP = smt.ImpliesExpr(smt.LabelPositive(name, condition), blockWP)
				} else {
					blockWP = smt.ImpliesExpr(condition, blockWP)
				}
			}
		}

		blockLabel := ctx.CreateLabelForBasicBlock(id)
		variables = append(variables, smt.VariableDeclaration{Name: blockLabel, Sort: smt.BoolSort{}})
		blockLabelExpr := smt.Variable{Name: blockLabel}
		basicBlockWPs[id] = blockLabelExpr
		assertions = append(assertions, smt.Equals(blockLabelExpr, blockWP))
	}

	assertions = append(assertions, smt.NotExpr(smt.Variable{Name: ctx.CreateLabelForBasicBlock(program.EntryBlock())}))

	return smt.Query{
		Declarations: smt.Declarations{
			Sorts:     sorts,
			Functions: functions,
			Labels:    labels,
			Variables: variables,
		},
		Assertions: assertions,
	}
}
