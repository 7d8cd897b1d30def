package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"

	"svirpti/internal/counterexample"
	"svirpti/internal/diagnostics"
	"svirpti/internal/fixture"
	"svirpti/internal/solver"
	"svirpti/internal/verifier"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: svirpti <fixture.yaml>")
		os.Exit(1)
	}

	if err := run(os.Args[1]); err != nil {
		if !errors.Is(err, errCounterexamples) {
			color.Red("✗ %s", err)
		}
		os.Exit(1)
	}
}

// errCounterexamples is returned by run after it has printed at least one
// counterexample, so the deferred solver Close runs before the process exits.
var errCounterexamples = errors.New("verification found counterexamples")

func run(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	program, err := fixture.Parse(data)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	ctx := context.Background()

	z3, err := solver.NewZ3(ctx, solver.DefaultConfig())
	if err != nil {
		return fmt.Errorf("starting solver: %w", err)
	}
	defer z3.Close()

	vctx := verifier.NewStringContext()
	result, err := verifier.Verify(ctx, program, vctx, z3)
	if err != nil {
		return fmt.Errorf("verifying %s: %w", path, err)
	}

	if result.Success() {
		diagnostics.PrintSuccess(os.Stdout)
		return nil
	}

	errs, err := counterexample.GetAllErrors(ctx, result.Failure, vctx, result.Lowered)
	if err != nil {
		return fmt.Errorf("enumerating counterexamples for %s: %w", path, err)
	}
	diagnostics.PrintAll(os.Stdout, errs)
	return errCounterexamples
}
