package diagnostics

import (
	"fmt"
	"strings"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"svirpti/internal/counterexample"
)

// Fixture documents carry no source positions for basic blocks or labels
// (internal/fixture decodes straight into high.ProgramFragment), so every
// diagnostic is anchored to the top of the document; the message itself
// carries the trace. A future fixture format that threads yaml.Node
// positions through would let this narrow to the offending block.
var wholeDocument = protocol.Range{
	Start: protocol.Position{Line: 0, Character: 0},
	End:   protocol.Position{Line: 0, Character: 1},
}

// ToDiagnostics converts every counterexample into one LSP diagnostic.
func ToDiagnostics(errs []counterexample.Error) []protocol.Diagnostic {
	diagnostics := make([]protocol.Diagnostic, len(errs))
	for i, e := range errs {
		diagnostics[i] = protocol.Diagnostic{
			Range:    wholeDocument,
			Severity: ptrSeverity(protocol.DiagnosticSeverityError),
			Source:   ptrString("svirpti"),
			Message:  fmt.Sprintf("[%s] %s", Code(e), Message(e)),
		}
	}
	return diagnostics
}

// Code returns the categorized diagnostic code for a counterexample.
// Codes in the V0xxx range are reserved for verification failures, so an
// editor or CI log can filter on the prefix alone.
func Code(counterexample.Error) string {
	return CodeAssertionMayFail
}

const (
	// CodeAssertionMayFail: the solver found a model under which a labeled
	// assertion does not hold.
	CodeAssertionMayFail = "V0001"
)

// Message renders the one-line human summary of a counterexample used in
// both the LSP diagnostic and log output.
func Message(e counterexample.Error) string {
	var b strings.Builder
	fmt.Fprintf(&b, "assertion %s can fail; trace: ", e.FailingAssertion)
	for i, id := range e.Trace {
		if i > 0 {
			b.WriteString(" -> ")
		}
		fmt.Fprintf(&b, "bb%d", id)
	}
	if len(e.Model.Variables) > 0 {
		b.WriteString("; model:")
		for _, name := range e.Model.SortedNames() {
			fmt.Fprintf(&b, " %s=%s", name, e.Model.Variables[name])
		}
	}
	return b.String()
}

func ptrSeverity(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity { return &s }
func ptrString(s string) *string                                            { return &s }
