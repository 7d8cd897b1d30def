// Package diagnostics renders counterexample.Error values for humans: a
// colored terminal report (cmd/svirpti) and an LSP protocol.Diagnostic
// conversion (cmd/svirpti-lsp).
package diagnostics

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"svirpti/internal/counterexample"
)

// Print writes a caret-free, trace-oriented report of a single
// counterexample to w: the failing assertion, the basic-block path that
// reaches it, and the variable values the solver found along the way.
func Print(w io.Writer, index int, err counterexample.Error) {
	red := color.New(color.FgRed, color.Bold)
	yellow := color.New(color.FgYellow)
	cyan := color.New(color.FgCyan)

	red.Fprintf(w, "✗ counterexample %d: assertion %s can fail\n", index+1, err.FailingAssertion)

	yellow.Fprint(w, "  trace: ")
	for i, id := range err.Trace {
		if i > 0 {
			fmt.Fprint(w, " -> ")
		}
		fmt.Fprintf(w, "bb%d", id)
	}
	fmt.Fprintln(w)

	if len(err.Model.Variables) == 0 {
		return
	}
	cyan.Fprintln(w, "  model:")
	for _, name := range err.Model.SortedNames() {
		fmt.Fprintf(w, "    %s = %s\n", name, err.Model.Variables[name])
	}
}

// PrintAll writes a report for every counterexample, in order, separated by
// a blank line.
func PrintAll(w io.Writer, errs []counterexample.Error) {
	for i, e := range errs {
		if i > 0 {
			fmt.Fprintln(w)
		}
		Print(w, i, e)
	}
}

// PrintSuccess writes the success report a clean verification gets.
func PrintSuccess(w io.Writer) {
	color.New(color.FgGreen, color.Bold).Fprintln(w, "✓ verification succeeded: no assertion can fail")
}
