package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/goalstack/pkg/domain"
)

// PlanOverlay marks how far a stepwise run has progressed.
// Position is the number of committed operators; states before it are styled
// as visited and the state at Position as current.
type PlanOverlay struct {
	Position int
}

// GenerateMermaid produces a Mermaid flowchart of a plan: one node per world
// state, one edge per operator. States are rendered with Arrangement.String.
// It applies semantic styling:
// - Start: ((Circle))
// - Final (when it matches goal): ([Stadium])
// - Intermediate: [Rectangle]
// The prefix namespaces node IDs so several plans can share one page.
func GenerateMermaid(prefix string, states []domain.Arrangement, plan []domain.Operator, goal *domain.Arrangement, overlay *PlanOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	id := func(i int) string {
		if prefix == "" {
			return fmt.Sprintf("s%d", i)
		}
		return fmt.Sprintf("%s_s%d", sanitizeMermaidID(prefix), i)
	}

	for i, st := range states {
		opener, closer := "[", "]"
		switch {
		case i == 0:
			opener, closer = "((", "))"
		case i == len(states)-1 && goal != nil && domain.ToConditions(st).Equal(domain.ToConditions(*goal)):
			opener, closer = "([", "])"
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", id(i), opener, escapeLabel(st.String()), closer))
	}

	for i, op := range plan {
		if i+1 >= len(states) {
			break
		}
		sb.WriteString(fmt.Sprintf("    %s -- \"%s\" --> %s\n", id(i), op, id(i+1)))
	}

	if overlay != nil && len(states) > 0 {
		sb.WriteString("\n    %% Overlay Styles\n")
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		current := min(max(overlay.Position, 0), len(states)-1)
		for i := 0; i < current; i++ {
			sb.WriteString(fmt.Sprintf("    class %s visited;\n", id(i)))
		}
		sb.WriteString(fmt.Sprintf("    class %s current;\n", id(current)))
	}

	return sb.String()
}

// escapeLabel keeps labels inside their double quotes.
func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "#quot;")
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}

// StatesFromSnapshots decodes every snapshot of a run into an arrangement.
func StatesFromSnapshots(snapshots []domain.Conditions) ([]domain.Arrangement, error) {
	out := make([]domain.Arrangement, len(snapshots))
	for i, s := range snapshots {
		a, err := domain.FromConditions(s)
		if err != nil {
			return nil, fmt.Errorf("snapshot %d: %w", i, err)
		}
		out[i] = a
	}
	return out, nil
}
