package tui_test

import (
	"bytes"
	"testing"

	"github.com/aretw0/goalstack/internal/presentation/tui"
	"github.com/aretw0/goalstack/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func report(done bool) tui.Report {
	return tui.Report{
		Name:  "pair",
		Start: domain.NewArrangement("", []string{"A"}, []string{"B"}),
		Goal:  domain.NewArrangement("", []string{"B", "A"}),
		Final: domain.NewArrangement("A", []string{"B"}),
		Plan:  []domain.Operator{domain.Pickup("A"), domain.Stack("A", "B")},
		Steps: 12,
		Done:  done,
		Limit: 36,
	}
}

func TestReport_Markdown(t *testing.T) {
	md := report(true).Markdown()
	assert.Contains(t, md, "# pair\n")
	assert.Contains(t, md, "Solved in **12** steps with **2** operators.")
	assert.Contains(t, md, "1. `PICKUP(A)`\n2. `STACK(A,B)`\n")
	assert.Contains(t, md, "```\nARM: -\n| A | | B |\n-----------\n```")
	assert.NotContains(t, md, "## Reached")
}

func TestReport_Stopped(t *testing.T) {
	r := report(false)
	r.Plan = r.Plan[:1]
	md := r.Markdown()
	assert.Contains(t, md, "**Stopped** after 12 of 36 steps with 1 operators committed.")
	assert.Contains(t, md, "## Reached\n\n```\nARM: A\n")
}

func TestReport_EmptyPlan(t *testing.T) {
	r := report(true)
	r.Name = ""
	r.Plan = nil
	md := r.Markdown()
	assert.Contains(t, md, "# plan\n")
	assert.Contains(t, md, "_Nothing to do._")
}

func TestNewRenderer(t *testing.T) {
	render := tui.NewRenderer("notty", 80)
	out, err := render(report(true).Markdown())
	require.NoError(t, err)
	assert.Contains(t, out, "PICKUP(A)")
	assert.Contains(t, out, "STACK(A,B)")
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	tui.PrintBanner(&buf)
	assert.Contains(t, buf.String(), "|___/")
	assert.NotContains(t, buf.String(), "\x1b[", "a buffer is not a terminal")
}

func TestPalette(t *testing.T) {
	p := tui.PlainPalette()
	assert.Equal(t, "PICKUP(A)", p.Operator("PICKUP(A)"))
	assert.Equal(t, "expand", p.Rule("expand"))
	assert.Equal(t, "note", p.Faint("note"))

	var buf bytes.Buffer
	assert.Equal(t, "x", tui.NewPalette(&buf).Operator("x"))
}
