package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/goalstack/internal/dto"
	"github.com/aretw0/goalstack/pkg/domain"
	"github.com/aretw0/goalstack/pkg/ports"
)

func builtins(t *testing.T) ports.ProblemSource {
	t.Helper()
	c, err := OpenCatalog(CatalogOptions{})
	require.NoError(t, err)
	return c.Source
}

func printer(t *testing.T, format string) (*Printer, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	p, err := NewPrinter(&buf, format, false)
	require.NoError(t, err)
	return p, &buf
}

func TestNewPrinter_UnknownFormat(t *testing.T) {
	_, err := NewPrinter(&bytes.Buffer{}, "xml", false)
	assert.ErrorContains(t, err, "unknown format")
}

func TestSolve_Text(t *testing.T) {
	p, buf := printer(t, FormatText)

	err := Solve(context.Background(), builtins(t), p, RunOptions{Ref: "pair", MaxSteps: -1})
	require.NoError(t, err)
	assert.Equal(t, "plan: 2 operators in 12 steps\n1. PICKUP(A)\n2. STACK(A,B)\n", buf.String())
}

func TestSolve_Bounded(t *testing.T) {
	p, buf := printer(t, FormatText)

	err := Solve(context.Background(), builtins(t), p, RunOptions{Ref: "split-tower", MaxSteps: 0})
	assert.ErrorIs(t, err, domain.ErrIterationLimitExceeded)

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "stopped after 0 of 0 steps with 0 operators\n"), out)
	assert.Contains(t, out, "reached:\nARM: -\n| C |\n| B |\n| A |\n")
}

func TestSolve_JSONTrace(t *testing.T) {
	p, buf := printer(t, FormatJSON)

	err := Solve(context.Background(), builtins(t), p, RunOptions{Ref: "pair", MaxSteps: -1, Trace: true})
	require.NoError(t, err)

	var resp dto.PlanResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.True(t, resp.Done)
	assert.Equal(t, "pair", resp.Problem)
	assert.Equal(t, []string{"PICKUP(A)", "STACK(A,B)"}, resp.Plan)
	assert.Len(t, resp.Trace, 12)
	assert.NotEmpty(t, resp.PlanID)
}

func TestSolve_KeepsDocumentBound(t *testing.T) {
	p, buf := printer(t, FormatText)

	// full-reversal needs more than the default bound and carries its own.
	err := Solve(context.Background(), builtins(t), p, RunOptions{Ref: "full-reversal", MaxSteps: -1})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "plan: ")
}

func TestStep_RunsToCompletion(t *testing.T) {
	p, buf := printer(t, FormatText)

	err := Step(context.Background(), builtins(t), p, StepOptions{RunOptions: RunOptions{Ref: "pair", MaxSteps: -1}})
	require.NoError(t, err)

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "5) ARMEMPTY\n"), out)
	assert.Contains(t, out, "1) ONTABLE(B) ^ ON(A,B) ^ CLEAR(A) ^ ARMEMPTY\n")
	assert.Contains(t, out, "#8 ")
	assert.Contains(t, out, "committed PICKUP(A)")
	assert.Contains(t, out, "#12 ")
	assert.Contains(t, out, "plan: 2 operators in 12 steps\n")
}

func TestStep_Interactive(t *testing.T) {
	p, buf := printer(t, FormatText)
	var prompt bytes.Buffer

	err := Step(context.Background(), builtins(t), p, StepOptions{
		RunOptions:  RunOptions{Ref: "pair", MaxSteps: -1},
		Interactive: true,
		In:          strings.NewReader("\n\nq\n"),
		Prompt:      &prompt,
	})
	require.NoError(t, err)

	assert.Equal(t, 3, strings.Count(prompt.String(), "[enter] step"))
	assert.Contains(t, buf.String(), "#2 ")
	assert.NotContains(t, buf.String(), "#3 ")
}

func TestStep_InteractiveRun(t *testing.T) {
	p, buf := printer(t, FormatText)
	var prompt bytes.Buffer

	err := Step(context.Background(), builtins(t), p, StepOptions{
		RunOptions:  RunOptions{Ref: "pair", MaxSteps: -1},
		Interactive: true,
		In:          strings.NewReader("r\n"),
		Prompt:      &prompt,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, strings.Count(prompt.String(), "[enter] step"))
	assert.Contains(t, buf.String(), "#12 ")
}

func TestStep_Bound(t *testing.T) {
	p, _ := printer(t, FormatJSON)

	err := Step(context.Background(), builtins(t), p, StepOptions{RunOptions: RunOptions{Ref: "pair", MaxSteps: 3}})
	assert.ErrorIs(t, err, domain.ErrIterationLimitExceeded)
}

func TestStep_JSONLines(t *testing.T) {
	p, buf := printer(t, FormatJSON)

	err := Step(context.Background(), builtins(t), p, StepOptions{RunOptions: RunOptions{Ref: "pair", MaxSteps: -1}})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 12)

	var last StepView
	require.NoError(t, json.Unmarshal([]byte(lines[11]), &last))
	assert.Equal(t, 12, last.Record.Index)
	assert.Equal(t, domain.NewArrangement("", []string{"B", "A"}), last.Current)
}

func TestGraph(t *testing.T) {
	out, err := Graph(context.Background(), builtins(t), RunOptions{Ref: "pair", MaxSteps: -1}, 1)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "graph TD\n"))
	assert.Contains(t, out, `"PICKUP(A)"`)
	assert.Contains(t, out, `"STACK(A,B)"`)
	assert.Contains(t, out, "classDef current")
}

func TestValidate(t *testing.T) {
	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("start:\n  table: [[A, B]]\ngoal:\n  table: [[A]]\n"), 0644))

	p, buf := printer(t, FormatText)
	invalid, err := Validate(context.Background(), builtins(t), p, []string{"pair", "missing", bad})
	require.NoError(t, err)
	assert.Equal(t, 2, invalid)

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "ok      pair\ninvalid missing: "), out)
	assert.Contains(t, out, "\ninvalid "+bad+": ")
}

func TestValidate_YAML(t *testing.T) {
	p, buf := printer(t, FormatYAML)
	invalid, err := Validate(context.Background(), builtins(t), p, []string{"pair"})
	require.NoError(t, err)
	assert.Zero(t, invalid)
	assert.Equal(t, "- ref: pair\n  valid: true\n", buf.String())
}
