// Package scene draws arrangements and goal stacks as plain text.
package scene

import (
	"fmt"
	"strings"

	"github.com/aretw0/goalstack/pkg/domain"
)

// EmptyArm is printed on the ARM line when nothing is held.
const EmptyArm = "-"

// Render draws the arm on the first line, then the stacks side by side from the
// highest level down, then a ground line. Every block occupies a "| X |" cell;
// shorter stacks leave blank cells so columns stay aligned.
//
//	ARM: -
//	| C |
//	| B |
//	| A | | D |
//	-----------
func Render(a domain.Arrangement) string {
	var sb strings.Builder

	arm := EmptyArm
	if held, ok := a.Holding(); ok {
		arm = string(held)
	}
	fmt.Fprintf(&sb, "ARM: %s\n", arm)

	width := 1
	height := 0
	for _, stack := range a.Table {
		height = max(height, len(stack))
		for _, b := range stack {
			width = max(width, len(b))
		}
	}

	blank := strings.Repeat(" ", width+4)
	for level := height - 1; level >= 0; level-- {
		cells := make([]string, len(a.Table))
		for i, stack := range a.Table {
			if level < len(stack) {
				cells[i] = fmt.Sprintf("| %-*s |", width, stack[level])
			} else {
				cells[i] = blank
			}
		}
		sb.WriteString(strings.TrimRight(strings.Join(cells, " "), " "))
		sb.WriteByte('\n')
	}

	if n := len(a.Table); n > 0 {
		sb.WriteString(strings.Repeat("-", n*(width+4)+n-1))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Agenda lists goal-stack entries top first, numbered from the bottom so an
// entry keeps its number while others are pushed above it.
//
//	3) CLEAR(A)
//	2) ON(A,B) ^ CLEAR(A) ^ ARMEMPTY
//	1) STACK(A,B)
func Agenda(entries []domain.Entry) string {
	if len(entries) == 0 {
		return "(empty)\n"
	}
	var sb strings.Builder
	for i := len(entries) - 1; i >= 0; i-- {
		fmt.Fprintf(&sb, "%d) %s\n", i+1, entries[i])
	}
	return sb.String()
}

// Plan lists operators one per line, numbered from 1.
func Plan(ops []domain.Operator) string {
	if len(ops) == 0 {
		return "(no operators)\n"
	}
	var sb strings.Builder
	for i, op := range ops {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, op)
	}
	return sb.String()
}

// Step summarises a step record on one line, e.g.
// "#8 apply PICKUP(A) -> committed PICKUP(A)".
func Step(rec domain.StepRecord) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "#%d %s %s", rec.Index, rec.Rule, rec.Current)
	if len(rec.Pushed) > 0 {
		parts := make([]string, len(rec.Pushed))
		for i, e := range rec.Pushed {
			parts[i] = e.String()
		}
		fmt.Fprintf(&sb, " -> push [%s]", strings.Join(parts, ", "))
	}
	if rec.Committed != nil {
		fmt.Fprintf(&sb, " -> committed %s", rec.Committed)
	}
	if rec.Done {
		sb.WriteString(" (done)")
	}
	return sb.String()
}
