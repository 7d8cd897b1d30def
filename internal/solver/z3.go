package solver

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"svirpti/internal/smt"
)

// Config configures the Z3 subprocess; it selects only the executable.
// NewZ3 always sends the same fixed options a Boogie-style label-based
// verifier needs: auto-configuration and model-based quantifier
// instantiation off (they can silently change which counterexample comes
// back), and model production on. No other attributes or options can be set
// through Config, and the session is not copied to a log file.
type Config struct {
	// Z3Path is the z3 executable to run. Empty means read $Z3_EXE, falling
	// back to "z3" on PATH.
	Z3Path string
}

func DefaultConfig() Config {
	path := os.Getenv("Z3_EXE")
	if path == "" {
		path = "z3"
	}
	return Config{Z3Path: path}
}

// Z3 talks SMT-LIB 2 text to a `z3 -in` subprocess. Declarations, Push, Pop
// and Assert only write a command; CheckSat, GetLabels and GetModel also
// block until z3 answers. The methods do not observe their ctx argument: only
// the ctx given to NewZ3 bounds the subprocess, which is killed when it is done.
type Z3 struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stdout *bufio.Reader
}

// NewZ3 starts a z3 subprocess configured for label-based verification.
func NewZ3(ctx context.Context, cfg Config) (*Z3, error) {
	cmd := exec.CommandContext(ctx, cfg.Z3Path, "-in", "-smt2")
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, wrap("start", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, wrap("start", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, wrap("start", err)
	}
	z := &Z3{cmd: cmd, stdin: stdin, stdout: bufio.NewReader(stdout)}
	for _, line := range []string{
		`(set-info :smt-lib-version "2.0")`,
		"(set-option :auto-config false)",
		"(set-option :smt.mbqi false)",
		"(set-option :type-check true)",
		"(set-option :produce-models true)",
	} {
		if err := z.send(line); err != nil {
			z.Close()
			return nil, err
		}
	}
	return z, nil
}

func (z *Z3) send(line string) error {
	_, err := io.WriteString(z.stdin, line+"\n")
	return wrap("write", err)
}

// readResponse reads one reply: either a bare atom (sat/unsat/unknown, or an
// error message) terminated by a newline, or one balanced S-expression.
func (z *Z3) readResponse() (string, error) {
	var b strings.Builder
	depth := 0
	started := false
	for {
		r, _, err := z.stdout.ReadRune()
		if err != nil {
			return "", wrap("read", err)
		}
		switch {
		case r == '(':
			depth++
			started = true
			b.WriteRune(r)
		case r == ')':
			depth--
			b.WriteRune(r)
			if depth == 0 {
				return b.String(), nil
			}
		case depth > 0:
			b.WriteRune(r)
		case r == '\n':
			if started {
				return strings.TrimSpace(b.String()), nil
			}
			// blank line before any content; keep reading
		case r == ' ' || r == '\t' || r == '\r':
			if started {
				b.WriteRune(r)
			}
		default:
			started = true
			b.WriteRune(r)
		}
	}
}

func (z *Z3) DeclareSort(ctx context.Context, sort smt.UninterpretedSortDeclaration) error {
	return z.send(fmt.Sprintf("(declare-sort %s 0)", sort.Name))
}

func (z *Z3) DeclareFunction(ctx context.Context, fn smt.FunctionDeclaration) error {
	params := make([]string, len(fn.Params))
	for i, p := range fn.Params {
		params[i] = smt.RenderSort(p)
	}
	return z.send(fmt.Sprintf("(declare-fun %s (%s) %s)", fn.Name, strings.Join(params, " "), smt.RenderSort(fn.ReturnSort)))
}

func (z *Z3) DeclareLabel(ctx context.Context, label smt.LabelDeclaration) error {
	return z.send(fmt.Sprintf("(declare-const %s Bool)", label.Name))
}

func (z *Z3) DeclareVariable(ctx context.Context, variable smt.VariableDeclaration) error {
	return z.send(fmt.Sprintf("(declare-const %s %s)", variable.Name, smt.RenderSort(variable.Sort)))
}

func (z *Z3) Push(ctx context.Context) error { return z.send("(push 1)") }
func (z *Z3) Pop(ctx context.Context) error  { return z.send("(pop 1)") }

func (z *Z3) Assert(ctx context.Context, assertion smt.Expression) error {
	return z.send(fmt.Sprintf("(assert %s)", smt.RenderExpression(assertion)))
}

func (z *Z3) CheckSat(ctx context.Context) (SatResult, error) {
	if err := z.send("(check-sat)"); err != nil {
		return Unknown, err
	}
	response, err := z.readResponse()
	if err != nil {
		return Unknown, err
	}
	switch response {
	case "sat":
		return Sat, nil
	case "unsat":
		return Unsat, nil
	case "unknown":
		return Unknown, nil
	default:
		return Unknown, wrap("check-sat", fmt.Errorf("unexpected response %q", response))
	}
}

// GetLabels asks Z3 which declared labels are currently lit: a label fires
// when its wrapped expression took the polarity that made the overall
// formula fail, per Leino et al.'s labelled-VC counterexample technique.
func (z *Z3) GetLabels(ctx context.Context) ([]smt.LabelSymbol, error) {
	if err := z.send("(labels)"); err != nil {
		return nil, err
	}
	response, err := z.readResponse()
	if err != nil {
		return nil, err
	}
	exprs, err := parseSExprs(response)
	if err != nil || len(exprs) == 0 {
		return nil, wrap("labels", fmt.Errorf("malformed response %q", response))
	}
	top := exprs[0]
	if top.isAtom() || len(top.list) < 2 || top.list[0].atom != "labels" {
		return nil, wrap("labels", fmt.Errorf("malformed response %q", response))
	}
	names := top.list[1]
	out := make([]smt.LabelSymbol, 0, len(names.list))
	for _, n := range names.list {
		out = append(out, smt.LabelSymbol(unquoteIdent(n.atom)))
	}
	return out, nil
}

func (z *Z3) GetModel(ctx context.Context) (smt.Model, error) {
	if err := z.send("(get-model)"); err != nil {
		return smt.Model{}, err
	}
	response, err := z.readResponse()
	if err != nil {
		return smt.Model{}, err
	}
	exprs, err := parseSExprs(response)
	if err != nil || len(exprs) == 0 || exprs[0].isAtom() {
		return smt.Model{}, wrap("get-model", fmt.Errorf("malformed response %q", response))
	}
	model := exprs[0]
	var items []smt.ModelItem
	for _, entry := range model.list {
		if entry.isAtom() || len(entry.list) == 0 || entry.list[0].atom != "define-fun" {
			continue
		}
		item, err := parseModelEntry(entry)
		if err != nil {
			return smt.Model{}, err
		}
		items = append(items, item)
	}
	return smt.Model{Items: items}, nil
}

// parseModelEntry decodes `(define-fun name ((arg sort) ...) sort value)`.
func parseModelEntry(entry sexpr) (smt.ModelItem, error) {
	if len(entry.list) < 5 {
		return smt.ModelItem{}, wrap("get-model", fmt.Errorf("malformed define-fun %q", entry))
	}
	name := unquoteIdent(entry.list[1].atom)
	argsExpr := entry.list[2]
	sortExpr := entry.list[3]
	valueExpr := entry.list[4]

	args := make([]smt.ModelItemArg, 0, len(argsExpr.list))
	for _, a := range argsExpr.list {
		if a.isAtom() || len(a.list) < 2 {
			continue
		}
		args = append(args, smt.ModelItemArg{Sort: parseSort(a.list[1])})
	}
	sort := parseSort(sortExpr)
	value, err := parseValue(sort, valueExpr)
	if err != nil {
		return smt.ModelItem{}, err
	}
	return smt.ModelItem{Name: name, Args: args, Sort: sort, Value: value}, nil
}

func parseSort(e sexpr) smt.Sort {
	if !e.isAtom() {
		return smt.UninterpretedSort{}
	}
	switch e.atom {
	case "Bool":
		return smt.BoolSort{}
	case "Int":
		return smt.IntSort{}
	case "Real":
		return smt.RealSort{}
	default:
		return smt.UninterpretedSort{Name: smt.UninterpretedSortSymbol(e.atom)}
	}
}

func parseValue(sort smt.Sort, e sexpr) (smt.Value, error) {
	switch sort.(type) {
	case smt.BoolSort:
		return smt.Value{Kind: smt.BoolValue, Bool: e.atom == "true"}, nil
	case smt.IntSort:
		n, err := parseSignedInt(e)
		if err != nil {
			return smt.Value{}, wrap("get-model", err)
		}
		return smt.Value{Kind: smt.IntValue, Int: n}, nil
	case smt.RealSort:
		return smt.Value{}, ErrUnsupportedSort
	default:
		return smt.Value{Kind: smt.UninterpretedValue, Uninterpreted: e.String()}, nil
	}
}

// parseSignedInt handles both `5` and SMT-LIB's `(- 5)` negative literal.
func parseSignedInt(e sexpr) (int64, error) {
	if e.isAtom() {
		return strconv.ParseInt(e.atom, 10, 64)
	}
	if len(e.list) == 2 && e.list[0].atom == "-" {
		n, err := strconv.ParseInt(e.list[1].atom, 10, 64)
		if err != nil {
			return 0, err
		}
		return -n, nil
	}
	return 0, fmt.Errorf("malformed integer literal %q", e)
}

func unquoteIdent(s string) string {
	return strings.Trim(s, "|")
}

// Close terminates the subprocess and releases its pipes.
func (z *Z3) Close() error {
	z.stdin.Close()
	if z.cmd.Process != nil {
		z.cmd.Process.Kill()
	}
	return z.cmd.Wait()
}
