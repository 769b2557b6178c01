package domain

import (
	"fmt"
	"strings"
)

// Predicate names one of the five condition kinds.
type Predicate string

const (
	PredOnTable  Predicate = "ONTABLE"
	PredOn       Predicate = "ON"
	PredClear    Predicate = "CLEAR"
	PredHolding  Predicate = "HOLDING"
	PredArmEmpty Predicate = "ARMEMPTY"
)

// Arity returns the number of block arguments the predicate takes.
func (p Predicate) Arity() int {
	switch p {
	case PredOn:
		return 2
	case PredArmEmpty:
		return 0
	default:
		return 1
	}
}

// Valid reports whether p is one of the five known predicates.
func (p Predicate) Valid() bool {
	switch p {
	case PredOnTable, PredOn, PredClear, PredHolding, PredArmEmpty:
		return true
	}
	return false
}

// Atom is one ground predicate fact. It is comparable and used as a set key.
// Unused argument slots are left empty.
type Atom struct {
	Pred Predicate `json:"pred"`
	X    Block     `json:"x,omitempty"`
	Y    Block     `json:"y,omitempty"`
}

func OnTable(x Block) Atom { return Atom{Pred: PredOnTable, X: x} }
func On(x, y Block) Atom   { return Atom{Pred: PredOn, X: x, Y: y} }
func Clear(x Block) Atom   { return Atom{Pred: PredClear, X: x} }
func Holding(x Block) Atom { return Atom{Pred: PredHolding, X: x} }
func ArmEmpty() Atom       { return Atom{Pred: PredArmEmpty} }

// String renders the atom in its textual form, e.g. "ON(A,B)" or "ARMEMPTY".
func (a Atom) String() string {
	switch a.Pred.Arity() {
	case 0:
		return string(a.Pred)
	case 2:
		return fmt.Sprintf("%s(%s,%s)", a.Pred, a.X, a.Y)
	default:
		return fmt.Sprintf("%s(%s)", a.Pred, a.X)
	}
}

// MarshalText lets atoms travel as plain strings in JSON and YAML.
func (a Atom) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText parses the textual form produced by String.
func (a *Atom) UnmarshalText(text []byte) error {
	parsed, err := ParseAtom(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// ParseAtom parses "PRED(X,Y)", "PRED(X)" or "ARMEMPTY". Predicate names are
// case-insensitive; block labels are kept verbatim after trimming spaces.
func ParseAtom(s string) (Atom, error) {
	name, args, err := parseCall(s)
	if err != nil {
		return Atom{}, err
	}
	pred := Predicate(name)
	if !pred.Valid() {
		return Atom{}, fmt.Errorf("%w: %q", ErrUnknownPredicate, strings.TrimSpace(s))
	}
	if len(args) != pred.Arity() {
		return Atom{}, fmt.Errorf("%w: %s takes %d argument(s), got %d", ErrMalformedAtom, pred, pred.Arity(), len(args))
	}

	a := Atom{Pred: pred}
	if len(args) > 0 {
		a.X = Block(args[0])
	}
	if len(args) > 1 {
		a.Y = Block(args[1])
	}
	return a, nil
}

// parseCall splits "NAME(a,b)" into an upper-cased name and trimmed arguments.
// A bare "NAME" has no arguments.
func parseCall(s string) (string, []string, error) {
	s = strings.TrimSpace(s)
	name, rest, hasArgs := strings.Cut(s, "(")
	name = strings.ToUpper(strings.TrimSpace(name))

	var args []string
	if hasArgs {
		inner, ok := strings.CutSuffix(strings.TrimSpace(rest), ")")
		if !ok {
			return "", nil, fmt.Errorf("%w: missing ')' in %q", ErrMalformedAtom, s)
		}
		for _, part := range strings.Split(inner, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				return "", nil, fmt.Errorf("%w: empty argument in %q", ErrMalformedAtom, s)
			}
			args = append(args, part)
		}
	}
	return name, args, nil
}
