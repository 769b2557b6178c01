package domain

import (
	"fmt"
	"sort"
)

// GoalAtoms walks the arrangement stack by stack, bottom to top, and returns its
// atoms in that order: ONTABLE(bottom), each ON(upper,lower), CLEAR(top), and finally
// the arm atom. The order is the one used when goals are layered on the goal stack.
func GoalAtoms(a Arrangement) []Atom {
	var atoms []Atom
	for _, stack := range a.Table {
		for i, b := range stack {
			if i == 0 {
				atoms = append(atoms, OnTable(b))
				continue
			}
			atoms = append(atoms, On(b, stack[i-1]))
		}
		if n := len(stack); n > 0 {
			atoms = append(atoms, Clear(stack[n-1]))
		}
	}
	if held, ok := a.Holding(); ok {
		atoms = append(atoms, Holding(held))
	} else {
		atoms = append(atoms, ArmEmpty())
	}
	return atoms
}

// ToConditions encodes an arrangement as the set of atoms true of it.
func ToConditions(a Arrangement) Conditions {
	return NewConditions(GoalAtoms(a)...)
}

// FromConditions decodes an atom set back into an arrangement.
//
// ONTABLE atoms open stacks, HOLDING sets the arm, and ON atoms are buffered and
// attached to whichever stack currently ends with their lower block. The buffer is
// re-scanned until it empties; a pass that attaches nothing means some ON atom can
// never be placed and ErrMalformedConditions is returned.
// Stacks come back ordered by their bottom block.
func FromConditions(c Conditions) (Arrangement, error) {
	var (
		arr     Arrangement
		pending []Atom
	)

	for _, a := range c.Sorted() {
		switch a.Pred {
		case PredOnTable:
			arr.Table = append(arr.Table, []Block{a.X})
		case PredOn:
			pending = append(pending, a)
		case PredHolding:
			if arr.Arm != "" && arr.Arm != a.X {
				return Arrangement{}, fmt.Errorf("%w: arm holds both %s and %s", ErrMalformedConditions, arr.Arm, a.X)
			}
			arr.Arm = a.X
		}
	}

	sort.SliceStable(arr.Table, func(i, j int) bool {
		return arr.Table[i][0] < arr.Table[j][0]
	})

	for len(pending) > 0 {
		var rest []Atom
		for _, a := range pending {
			if !attach(arr.Table, a) {
				rest = append(rest, a)
			}
		}
		if len(rest) == len(pending) {
			return Arrangement{}, fmt.Errorf("%w: cannot place %s", ErrMalformedConditions, JoinAtoms(rest))
		}
		pending = rest
	}

	return arr, nil
}

func attach(table [][]Block, a Atom) bool {
	for i, stack := range table {
		if stack[len(stack)-1] == a.Y {
			table[i] = append(stack, a.X)
			return true
		}
	}
	return false
}
