package domain

import (
	"fmt"
	"strings"
)

// OperatorKind names one of the four blocks-world actions.
type OperatorKind string

const (
	OpStack   OperatorKind = "STACK"
	OpUnstack OperatorKind = "UNSTACK"
	OpPickup  OperatorKind = "PICKUP"
	OpPutdown OperatorKind = "PUTDOWN"
)

// Arity returns the number of block arguments the operator takes.
func (k OperatorKind) Arity() int {
	if k == OpStack || k == OpUnstack {
		return 2
	}
	return 1
}

// Param is a positional placeholder inside a schema template.
type Param int

const (
	ParamNone Param = iota
	Param1
	Param2
)

// Template is an atom pattern whose arguments refer to operator parameters.
type Template struct {
	Pred Predicate
	X, Y Param
}

func (t Template) bind(p1, p2 Block) Atom {
	pick := func(p Param) Block {
		switch p {
		case Param1:
			return p1
		case Param2:
			return p2
		}
		return ""
	}
	return Atom{Pred: t.Pred, X: pick(t.X), Y: pick(t.Y)}
}

// String renders the template with numeric placeholders, e.g. "ON(1,2)".
func (t Template) String() string {
	return t.bind("1", "2").String()
}

// Schema declares the Precondition, Add and Delete templates of an operator.
type Schema struct {
	Kind OperatorKind
	P    []Template
	A    []Template
	D    []Template
}

var (
	tClear2   = Template{Pred: PredClear, X: Param2}
	tClear1   = Template{Pred: PredClear, X: Param1}
	tHolding1 = Template{Pred: PredHolding, X: Param1}
	tOn12     = Template{Pred: PredOn, X: Param1, Y: Param2}
	tOnTable1 = Template{Pred: PredOnTable, X: Param1}
	tArmEmpty = Template{Pred: PredArmEmpty}
)

// schemas is the operator knowledge base. It is never mutated at runtime.
var schemas = map[OperatorKind]Schema{
	OpStack: {
		Kind: OpStack,
		P:    []Template{tClear2, tHolding1},
		A:    []Template{tOn12, tClear1, tArmEmpty},
		D:    []Template{tClear2, tHolding1},
	},
	OpUnstack: {
		Kind: OpUnstack,
		P:    []Template{tOn12, tClear1, tArmEmpty},
		A:    []Template{tClear2, tHolding1},
		D:    []Template{tOn12, tClear1, tArmEmpty},
	},
	OpPickup: {
		Kind: OpPickup,
		P:    []Template{tOnTable1, tClear1, tArmEmpty},
		A:    []Template{tHolding1},
		D:    []Template{tOnTable1, tClear1, tArmEmpty},
	},
	OpPutdown: {
		Kind: OpPutdown,
		P:    []Template{tHolding1},
		A:    []Template{tOnTable1, tClear1, tArmEmpty},
		D:    []Template{tHolding1},
	},
}

// OperatorKinds lists the operators in table order.
var OperatorKinds = []OperatorKind{OpStack, OpUnstack, OpPickup, OpPutdown}

// Schemas returns a copy of the knowledge base in table order.
func Schemas() []Schema {
	out := make([]Schema, 0, len(OperatorKinds))
	for _, k := range OperatorKinds {
		s := schemas[k]
		out = append(out, Schema{
			Kind: s.Kind,
			P:    append([]Template(nil), s.P...),
			A:    append([]Template(nil), s.A...),
			D:    append([]Template(nil), s.D...),
		})
	}
	return out
}

// Operator is a concrete application of a schema, e.g. STACK(A,B).
// Y is empty for the one-argument operators.
type Operator struct {
	Kind OperatorKind `json:"kind"`
	X    Block        `json:"x"`
	Y    Block        `json:"y,omitempty"`
}

func Stack(x, y Block) Operator   { return Operator{Kind: OpStack, X: x, Y: y} }
func Unstack(x, y Block) Operator { return Operator{Kind: OpUnstack, X: x, Y: y} }
func Pickup(x Block) Operator     { return Operator{Kind: OpPickup, X: x} }
func Putdown(x Block) Operator    { return Operator{Kind: OpPutdown, X: x} }

func (o Operator) String() string {
	if o.Kind.Arity() == 2 {
		return fmt.Sprintf("%s(%s,%s)", o.Kind, o.X, o.Y)
	}
	return fmt.Sprintf("%s(%s)", o.Kind, o.X)
}

// ParseOperator parses the textual form produced by String, e.g. "STACK(A,B)".
// Operator names are case-insensitive.
func ParseOperator(s string) (Operator, error) {
	name, args, err := parseCall(s)
	if err != nil {
		return Operator{}, err
	}
	kind := OperatorKind(name)
	if _, ok := schemas[kind]; !ok {
		return Operator{}, fmt.Errorf("%w: %q", ErrUnknownOperator, strings.TrimSpace(s))
	}
	if len(args) != kind.Arity() {
		return Operator{}, fmt.Errorf("%w: %s takes %d argument(s), got %d", ErrMalformedAtom, kind, kind.Arity(), len(args))
	}

	op := Operator{Kind: kind, X: Block(args[0])}
	if len(args) > 1 {
		op.Y = Block(args[1])
	}
	return op, nil
}

func (o Operator) bind(ts []Template) []Atom {
	out := make([]Atom, len(ts))
	for i, t := range ts {
		out[i] = t.bind(o.X, o.Y)
	}
	return out
}

// Preconditions returns the bound P atoms in schema order.
func (o Operator) Preconditions() []Atom { return o.bind(schemas[o.Kind].P) }

// Adds returns the bound A atoms.
func (o Operator) Adds() []Atom { return o.bind(schemas[o.Kind].A) }

// Deletes returns the bound D atoms.
func (o Operator) Deletes() []Atom { return o.bind(schemas[o.Kind].D) }

// Apply returns the successor snapshot: Delete atoms removed, then Add atoms inserted.
// The input snapshot is left untouched.
func (o Operator) Apply(s Conditions) Conditions {
	return s.Apply(o.Adds(), o.Deletes())
}
