package domain

import "strings"

// Block is an opaque, caller-chosen label. Identity is by equality.
// The empty string is not a valid block.
type Block string

// Arrangement describes the full placement of blocks plus the arm status.
type Arrangement struct {
	// Table holds the stacks. Index 0 of each stack rests on the table,
	// the last index is the topmost (clear) block.
	Table [][]Block `json:"table" yaml:"table" mapstructure:"table"`

	// Arm is the held block, or "" when the arm is empty.
	Arm Block `json:"arm,omitempty" yaml:"arm,omitempty" mapstructure:"arm"`
}

// NewArrangement builds an arrangement from plain string stacks.
// It is a convenience for tests and literal problems.
func NewArrangement(arm string, stacks ...[]string) Arrangement {
	a := Arrangement{Arm: Block(arm), Table: make([][]Block, 0, len(stacks))}
	for _, s := range stacks {
		stack := make([]Block, len(s))
		for i, b := range s {
			stack[i] = Block(b)
		}
		a.Table = append(a.Table, stack)
	}
	return a
}

// Holding reports the held block, if any.
func (a Arrangement) Holding() (Block, bool) {
	return a.Arm, a.Arm != ""
}

// Blocks returns every block of the arrangement, stacks first, arm last.
func (a Arrangement) Blocks() []Block {
	var out []Block
	for _, stack := range a.Table {
		out = append(out, stack...)
	}
	if a.Arm != "" {
		out = append(out, a.Arm)
	}
	return out
}

// Clone returns a deep copy so callers never alias the planner's arrangements.
func (a Arrangement) Clone() Arrangement {
	out := Arrangement{Arm: a.Arm, Table: make([][]Block, len(a.Table))}
	for i, stack := range a.Table {
		out.Table[i] = append([]Block(nil), stack...)
	}
	return out
}

// String renders the arrangement compactly, e.g. "[A B C] [D] arm=E".
func (a Arrangement) String() string {
	var sb strings.Builder
	for i, stack := range a.Table {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteByte('[')
		for j, b := range stack {
			if j > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(string(b))
		}
		sb.WriteByte(']')
	}
	if a.Arm != "" {
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString("arm=" + string(a.Arm))
	}
	return sb.String()
}
