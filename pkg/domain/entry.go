package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// EntryKind tags the three kinds of goal-stack slots.
type EntryKind int

const (
	EntryAtom EntryKind = iota
	EntryConjunction
	EntryOperator
)

func (k EntryKind) String() string {
	switch k {
	case EntryAtom:
		return "atom"
	case EntryConjunction:
		return "conjunction"
	case EntryOperator:
		return "operator"
	default:
		return "unknown"
	}
}

// Entry is one slot of the goal stack. Exactly one payload is meaningful,
// selected by Kind: Atom for EntryAtom, Atoms for EntryConjunction,
// Operator for EntryOperator.
type Entry struct {
	Kind     EntryKind
	Atom     Atom
	Atoms    []Atom
	Operator Operator
}

// AtomEntry wraps a single subgoal.
func AtomEntry(a Atom) Entry {
	return Entry{Kind: EntryAtom, Atom: a}
}

// ConjunctionEntry groups atoms that must all hold before the entry is removed.
func ConjunctionEntry(atoms []Atom) Entry {
	return Entry{Kind: EntryConjunction, Atoms: append([]Atom(nil), atoms...)}
}

// OperatorEntry wraps an operator awaiting application.
func OperatorEntry(op Operator) Entry {
	return Entry{Kind: EntryOperator, Operator: op}
}

// IsOperator reports whether the entry is a pending operator.
func (e Entry) IsOperator() bool { return e.Kind == EntryOperator }

// Members returns the atoms a condition entry requires; nil for operators.
func (e Entry) Members() []Atom {
	switch e.Kind {
	case EntryAtom:
		return []Atom{e.Atom}
	case EntryConjunction:
		return e.Atoms
	}
	return nil
}

// Clone returns a copy that shares no slices with e.
func (e Entry) Clone() Entry {
	if e.Kind == EntryConjunction {
		e.Atoms = append([]Atom(nil), e.Atoms...)
	}
	return e
}

func (e Entry) String() string {
	switch e.Kind {
	case EntryAtom:
		return e.Atom.String()
	case EntryConjunction:
		return JoinAtoms(e.Atoms)
	case EntryOperator:
		return e.Operator.String()
	}
	return ""
}

// MarshalJSON renders entries as {"kind": ..., "text": ...} for adapters.
func (e Entry) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind string `json:"kind"`
		Text string `json:"text"`
	}{Kind: e.Kind.String(), Text: e.String()})
}

// MarshalYAML mirrors MarshalJSON for YAML output.
func (e Entry) MarshalYAML() (any, error) {
	return map[string]string{"kind": e.Kind.String(), "text": e.String()}, nil
}

// UnmarshalJSON parses the {"kind", "text"} form written by MarshalJSON.
func (e *Entry) UnmarshalJSON(data []byte) error {
	var wire struct {
		Kind string `json:"kind"`
		Text string `json:"text"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	switch wire.Kind {
	case "atom":
		a, err := ParseAtom(wire.Text)
		if err != nil {
			return err
		}
		*e = AtomEntry(a)
	case "conjunction":
		var atoms []Atom
		for _, part := range strings.Split(wire.Text, " ^ ") {
			a, err := ParseAtom(part)
			if err != nil {
				return err
			}
			atoms = append(atoms, a)
		}
		*e = ConjunctionEntry(atoms)
	case "operator":
		op, err := ParseOperator(wire.Text)
		if err != nil {
			return err
		}
		*e = OperatorEntry(op)
	default:
		return fmt.Errorf("unknown entry kind %q", wire.Kind)
	}
	return nil
}
