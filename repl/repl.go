// Package repl implements a line-oriented interactive loop: load a fixture
// file, verify it, print the result, and reload on request.
package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"svirpti/internal/counterexample"
	"svirpti/internal/diagnostics"
	"svirpti/internal/fixture"
	"svirpti/internal/solver"
	"svirpti/internal/verifier"
)

const prompt = ">> "

// SolverFactory opens a fresh solver session for one verify command.
type SolverFactory func(ctx context.Context) (solver.Solver, error)

// Start runs the REPL against in/out until in is exhausted or a "quit"
// command is read. Commands:
//
//	load <path>   parse and verify the fixture at path
//	reload        re-read and re-verify the last loaded path
//	quit          exit
func Start(in io.Reader, out io.Writer, newSolver SolverFactory) {
	scanner := bufio.NewScanner(in)
	var lastPath string

	for {
		fmt.Fprint(out, prompt)
		if !scanner.Scan() {
			return
		}

		line := scanner.Text()
		switch {
		case line == "quit" || line == "exit":
			return
		case line == "reload":
			if lastPath == "" {
				fmt.Fprintln(out, "no fixture loaded yet")
				continue
			}
			verifyPath(out, newSolver, lastPath)
		case len(line) > 5 && line[:5] == "load ":
			lastPath = line[5:]
			verifyPath(out, newSolver, lastPath)
		default:
			fmt.Fprintln(out, "commands: load <path>, reload, quit")
		}
	}
}

func verifyPath(out io.Writer, newSolver SolverFactory, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(out, "error reading %s: %s\n", path, err)
		return
	}

	program, err := fixture.Parse(data)
	if err != nil {
		fmt.Fprintf(out, "error parsing %s: %s\n", path, err)
		return
	}

	ctx := context.Background()
	sv, err := newSolver(ctx)
	if err != nil {
		fmt.Fprintf(out, "error opening solver: %s\n", err)
		return
	}
	defer sv.Close()

	vctx := verifier.NewStringContext()
	result, err := verifier.Verify(ctx, program, vctx, sv)
	if err != nil {
		fmt.Fprintf(out, "error verifying %s: %s\n", path, err)
		return
	}

	if result.Success() {
		diagnostics.PrintSuccess(out)
		return
	}

	errs, err := counterexample.GetAllErrors(ctx, result.Failure, vctx, result.Lowered)
	if err != nil {
		fmt.Fprintf(out, "error enumerating counterexamples: %s\n", err)
		return
	}
	diagnostics.PrintAll(out, errs)
}
