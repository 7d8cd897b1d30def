package counterexample

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"svirpti/internal/low"
	"svirpti/internal/smt"
	"svirpti/internal/solver"
)

// Investigator is the sandboxed query interface a verifier.Investigator
// provides: CheckWith pushes a scope, asserts the given literals, checks
// sat, and pops again, caching the labels/model of a non-unsat result for
// a single subsequent GetLabels/GetModel call.
type Investigator interface {
	CheckWith(ctx context.Context, assertions []smt.Expression) (solver.SatResult, error)
	GetLabels(ctx context.Context) ([]smt.LabelSymbol, error)
	GetModel(ctx context.Context) (smt.Model, error)
}

// traceSignature is a canonical (label, polarity) set used to deduplicate
// traces explored across the label-flipping search.
type traceSignature = string

func toTraceSignature(labelIDs map[smt.LabelSymbol]int, labels []smt.LabelSymbol, values map[smt.LabelSymbol]bool) traceSignature {
	type pair struct {
		id    int
		value bool
	}
	pairs := make([]pair, len(labels))
	for i, l := range labels {
		pairs[i] = pair{labelIDs[l], values[l]}
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].id != pairs[j].id {
			return pairs[i].id < pairs[j].id
		}
		return !pairs[i].value && pairs[j].value
	})
	var b strings.Builder
	for _, p := range pairs {
		fmt.Fprintf(&b, "%d:%t;", p.id, p.value)
	}
	return b.String()
}

func findLastLabel(labelIDs map[smt.LabelSymbol]int, labels []smt.LabelSymbol) smt.LabelSymbol {
	best := labels[0]
	for _, l := range labels[1:] {
		if labelIDs[l] > labelIDs[best] {
			best = l
		}
	}
	return best
}

func computeFailingTrace(labelIDs map[smt.LabelSymbol]int, labels []smt.LabelSymbol, failingAssertion smt.LabelSymbol) []smt.LabelSymbol {
	trace := make([]smt.LabelSymbol, 0, len(labels))
	for _, l := range labels {
		if l != failingAssertion {
			trace = append(trace, l)
		}
	}
	sort.Slice(trace, func(i, j int) bool { return labelIDs[trace[i]] < labelIDs[trace[j]] })
	return trace
}

// GetAllErrors enumerates every distinct counterexample reachable from one
// failing verification condition by repeatedly flipping the polarity of the
// topologically-last label in the current trace and re-querying the solver,
// per Leino et al.'s label-flipping technique. program is the lowered (SSA)
// fragment the investigator's solver was built from.
func GetAllErrors(ctx context.Context, investigator Investigator, vctx Context, program *low.ProgramFragment) ([]Error, error) {
	labels, err := investigator.GetLabels(ctx)
	if err != nil {
		return nil, err
	}
	model, err := investigator.GetModel(ctx)
	if err != nil {
		return nil, err
	}

	var allLabels []smt.LabelSymbol
	for _, entry := range program.Walk() {
		for _, stmt := range entry.Block.Statements {
			if label := stmt.GetLabel(); label != nil {
				allLabels = append(allLabels, vctx.ConvertKnownLabelNameToSMT(*label))
			}
		}
	}
	labelIDs := make(map[smt.LabelSymbol]int, len(allLabels))
	for i, l := range allLabels {
		labelIDs[l] = i
	}

	failingAssertion := findLastLabel(labelIDs, labels)
	failingTrace := computeFailingTrace(labelIDs, labels, failingAssertion)
	errors := []Error{newError(vctx, program, failingAssertion, failingTrace, model)}

	modelValues := func(m smt.Model, ls []smt.LabelSymbol) map[smt.LabelSymbol]bool {
		out := make(map[smt.LabelSymbol]bool, len(ls))
		for _, l := range ls {
			out[l] = m.GetLabel(l)
		}
		return out
	}

	explored := make(map[traceSignature]bool)
	explored[toTraceSignature(labelIDs, labels, modelValues(model, labels))] = true

	workingSet := make(map[smt.LabelSymbol]bool, len(labels))
	for _, l := range labels {
		workingSet[l] = true
	}

	for len(workingSet) > 0 {
		remaining := make([]smt.LabelSymbol, 0, len(workingSet))
		for l := range workingSet {
			remaining = append(remaining, l)
		}
		last := findLastLabel(labelIDs, remaining)
		delete(workingSet, last)

		traceLabels := make([]smt.LabelSymbol, 0, len(workingSet)+1)
		values := make(map[smt.LabelSymbol]bool, len(workingSet)+1)
		for l := range workingSet {
			traceLabels = append(traceLabels, l)
			values[l] = model.GetLabel(l)
		}
		traceLabels = append(traceLabels, last)
		values[last] = !model.GetLabel(last)

		signature := toTraceSignature(labelIDs, traceLabels, values)
		if explored[signature] {
			continue
		}
		explored[signature] = true

		assertions := make([]smt.Expression, len(traceLabels))
		for i, l := range traceLabels {
			var v smt.Expression = smt.Variable{Name: smt.VariableSymbol(l)}
			if !values[l] {
				v = smt.NotExpr(v)
			}
			assertions[i] = v
		}

		result, err := investigator.CheckWith(ctx, assertions)
		if err != nil {
			return nil, err
		}
		if result == solver.Unsat {
			continue
		}

		newLabels, err := investigator.GetLabels(ctx)
		if err != nil {
			return nil, err
		}
		newModel, err := investigator.GetModel(ctx)
		if err != nil {
			return nil, err
		}

		newFailing := findLastLabel(labelIDs, newLabels)
		newTrace := computeFailingTrace(labelIDs, newLabels, newFailing)
		errors = append(errors, newError(vctx, program, newFailing, newTrace, newModel))

		workingSet = make(map[smt.LabelSymbol]bool, len(newLabels))
		for _, l := range newLabels {
			workingSet[l] = true
		}
		model = newModel
	}

	return errors, nil
}
