package domain

import (
	"sort"
	"strings"
)

// Conditions is the unordered set of atoms true at one point of the plan.
// A world-state snapshot is a Conditions value that is never mutated once recorded.
type Conditions map[Atom]struct{}

// NewConditions builds a set from the given atoms.
func NewConditions(atoms ...Atom) Conditions {
	c := make(Conditions, len(atoms))
	for _, a := range atoms {
		c[a] = struct{}{}
	}
	return c
}

// Has reports whether the atom is in the set.
func (c Conditions) Has(a Atom) bool {
	_, ok := c[a]
	return ok
}

// HasAll reports whether every atom is in the set.
func (c Conditions) HasAll(atoms []Atom) bool {
	for _, a := range atoms {
		if !c.Has(a) {
			return false
		}
	}
	return true
}

// FirstMissing returns the first atom (in the given order) absent from the set.
func (c Conditions) FirstMissing(atoms []Atom) (Atom, bool) {
	for _, a := range atoms {
		if !c.Has(a) {
			return a, true
		}
	}
	return Atom{}, false
}

// Find returns the first atom (in sorted order) accepted by match.
func (c Conditions) Find(match func(Atom) bool) (Atom, bool) {
	for _, a := range c.Sorted() {
		if match(a) {
			return a, true
		}
	}
	return Atom{}, false
}

// Held returns the block named by the HOLDING atom, if present.
func (c Conditions) Held() (Block, bool) {
	a, ok := c.Find(func(a Atom) bool { return a.Pred == PredHolding })
	return a.X, ok
}

// Clone returns an independent copy.
func (c Conditions) Clone() Conditions {
	out := make(Conditions, len(c))
	for a := range c {
		out[a] = struct{}{}
	}
	return out
}

// Apply returns a new set with del removed and then add inserted.
func (c Conditions) Apply(add, del []Atom) Conditions {
	out := c.Clone()
	for _, a := range del {
		delete(out, a)
	}
	for _, a := range add {
		out[a] = struct{}{}
	}
	return out
}

// Equal reports whether both sets hold exactly the same atoms.
func (c Conditions) Equal(other Conditions) bool {
	if len(c) != len(other) {
		return false
	}
	for a := range c {
		if !other.Has(a) {
			return false
		}
	}
	return true
}

// Sorted returns the atoms in a deterministic order (predicate, then arguments).
func (c Conditions) Sorted() []Atom {
	out := make([]Atom, 0, len(c))
	for a := range c {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Pred != out[j].Pred {
			return out[i].Pred < out[j].Pred
		}
		if out[i].X != out[j].X {
			return out[i].X < out[j].X
		}
		return out[i].Y < out[j].Y
	})
	return out
}

// String joins the sorted atoms with " ^ ".
func (c Conditions) String() string {
	return JoinAtoms(c.Sorted())
}

// JoinAtoms renders atoms as a conjunction, e.g. "CLEAR(B) ^ HOLDING(A)".
func JoinAtoms(atoms []Atom) string {
	parts := make([]string, len(atoms))
	for i, a := range atoms {
		parts[i] = a.String()
	}
	return strings.Join(parts, " ^ ")
}
