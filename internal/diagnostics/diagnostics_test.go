package diagnostics_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svirpti/internal/counterexample"
	"svirpti/internal/diagnostics"
	"svirpti/internal/high"
	"svirpti/internal/low"
	"svirpti/internal/smt"
)

func sampleError() counterexample.Error {
	return counterexample.Error{
		FailingAssertion: "L0",
		Trace:            []high.BasicBlockID{0, 1, 2},
		Labels:           []high.LabelSymbol{"L0"},
		Model: counterexample.Model{Variables: map[low.VariableSymbol]smt.Value{
			"x@1": {Kind: smt.IntValue, Int: 7},
		}},
	}
}

func TestPrintIncludesFailingAssertionAndTrace(t *testing.T) {
	var buf bytes.Buffer
	diagnostics.Print(&buf, 0, sampleError())
	out := buf.String()
	assert.Contains(t, out, "L0")
	assert.Contains(t, out, "bb0 -> bb1 -> bb2")
	assert.Contains(t, out, "x@1 = 7")
}

func TestPrintAllSeparatesEntriesWithBlankLine(t *testing.T) {
	var buf bytes.Buffer
	diagnostics.PrintAll(&buf, []counterexample.Error{sampleError(), sampleError()})
	assert.Equal(t, 2, bytes.Count(buf.Bytes(), []byte("counterexample")))
	assert.Contains(t, buf.String(), "\n\n")
}

func TestPrintSuccessReportsNoFailures(t *testing.T) {
	var buf bytes.Buffer
	diagnostics.PrintSuccess(&buf)
	assert.Contains(t, buf.String(), "no assertion can fail")
}

func TestToDiagnosticsProducesOneDiagnosticPerError(t *testing.T) {
	diags := diagnostics.ToDiagnostics([]counterexample.Error{sampleError(), sampleError()})
	require.Len(t, diags, 2)
	assert.Contains(t, diags[0].Message, "V0001")
	assert.Contains(t, diags[0].Message, "L0")
}

func TestMessageMentionsTraceAndModel(t *testing.T) {
	msg := diagnostics.Message(sampleError())
	assert.Contains(t, msg, "assertion L0 can fail")
	assert.Contains(t, msg, "trace: bb0 -> bb1 -> bb2")
	assert.Contains(t, msg, "x@1=7")
}
