package counterexample

import (
	"svirpti/internal/high"
	"svirpti/internal/low"
	"svirpti/internal/smt"
)

// Error is one concrete counterexample: an assertion that can fail, the
// basic-block path that witnesses it, the other labels the solver reported
// for it (sorted by program position), and the variable values from that
// point.
//
// Trace is *a* path that reaches FailingAssertion via Labels; if an
// untaken branch did not affect the failure, there can be other paths
// through the same labels that this Error does not represent.
type Error struct {
	FailingAssertion high.LabelSymbol
	Trace            []high.BasicBlockID
	Labels           []high.LabelSymbol
	Model            Model
}

func newError(ctx Context, program *low.ProgramFragment, failingAssertion smt.LabelSymbol, trace []smt.LabelSymbol, model smt.Model) Error {
	lowFailing := ctx.ResolveLowLabel(failingAssertion)
	lowTrace := make([]low.LabelSymbol, len(trace))
	for i, l := range trace {
		lowTrace[i] = ctx.ResolveLowLabel(l)
	}

	cameFrom := make(map[low.BasicBlockID]low.BasicBlockID)
	expectedNextLabel := map[low.BasicBlockID]int{program.EntryBlock(): 0}

	labelAt := func(id int) low.LabelSymbol {
		if id < len(lowTrace) {
			return lowTrace[id]
		}
		return lowFailing
	}

	// The walk runs over every block, not just until a match: expected_label
	// propagation must reach every successor before the last (furthest-along)
	// candidate for finalBlock is known to be correct.
	var finalBlock *low.BasicBlockID
	for _, entry := range program.Walk() {
		id, block := entry.ID, entry.Block
		expectedLabelID := expectedNextLabel[id]
		expectedLabel := labelAt(expectedLabelID)
		for _, stmt := range block.Statements {
			label := stmt.GetLabel()
			if label != nil && *label == expectedLabel {
				expectedLabelID++
				expectedLabel = labelAt(expectedLabelID)
				if expectedLabel == lowFailing {
					found := id
					finalBlock = &found
					break
				}
			}
		}
		for _, successor := range block.Successors {
			cur, ok := expectedNextLabel[successor]
			if !ok || cur <= expectedLabelID {
				expectedNextLabel[successor] = expectedLabelID
				cameFrom[successor] = id
			}
		}
	}
	if finalBlock == nil {
		panic("counterexample: no basic block reached the failing assertion")
	}

	blockTrace := []low.BasicBlockID{*finalBlock}
	current := *finalBlock
	for {
		prev, ok := cameFrom[current]
		if !ok {
			break
		}
		current = prev
		blockTrace = append(blockTrace, current)
	}
	for i, j := 0, len(blockTrace)-1; i < j; i, j = i+1, j-1 {
		blockTrace[i], blockTrace[j] = blockTrace[j], blockTrace[i]
	}

	highTrace := make([]high.BasicBlockID, len(blockTrace))
	for i, id := range blockTrace {
		highTrace[i] = high.BasicBlockID(id)
	}
	highLabels := make([]high.LabelSymbol, len(lowTrace))
	for i, l := range lowTrace {
		highLabels[i] = ctx.ResolveHighLabel(l)
	}

	return Error{
		FailingAssertion: ctx.ResolveHighLabel(lowFailing),
		Trace:            highTrace,
		Labels:           highLabels,
		Model:            newModel(ctx, program, model),
	}
}
