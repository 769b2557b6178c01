package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/goalstack/internal/presentation/scene"
	"github.com/aretw0/goalstack/pkg/domain"
)

// Report is everything the plan summary shows.
type Report struct {
	Name  string
	Start domain.Arrangement
	Goal  domain.Arrangement
	Final domain.Arrangement
	Plan  []domain.Operator
	Steps int
	Done  bool
	Limit int
}

// Markdown renders the report; pass it through NewRenderer for a terminal.
func (r Report) Markdown() string {
	var sb strings.Builder

	title := r.Name
	if title == "" {
		title = "plan"
	}
	fmt.Fprintf(&sb, "# %s\n\n", title)

	if r.Done {
		fmt.Fprintf(&sb, "Solved in **%d** steps with **%d** operators.\n\n", r.Steps, len(r.Plan))
	} else {
		fmt.Fprintf(&sb, "**Stopped** after %d of %d steps with %d operators committed.\n\n", r.Steps, r.Limit, len(r.Plan))
	}

	sb.WriteString("## Start\n\n")
	writeScene(&sb, r.Start)
	sb.WriteString("## Goal\n\n")
	writeScene(&sb, r.Goal)

	sb.WriteString("## Plan\n\n")
	if len(r.Plan) == 0 {
		sb.WriteString("_Nothing to do._\n\n")
	}
	for i, op := range r.Plan {
		fmt.Fprintf(&sb, "%d. `%s`\n", i+1, op)
	}
	if len(r.Plan) > 0 {
		sb.WriteString("\n")
	}

	if !r.Done {
		sb.WriteString("## Reached\n\n")
		writeScene(&sb, r.Final)
	}
	return sb.String()
}

func writeScene(sb *strings.Builder, a domain.Arrangement) {
	sb.WriteString("```\n")
	sb.WriteString(scene.Render(a))
	sb.WriteString("```\n\n")
}
