package domain

import "errors"

// ErrInvalidShape is returned when an arrangement is structurally malformed
// (an empty stack or an empty block label).
var ErrInvalidShape = errors.New("invalid arrangement shape")

// ErrDuplicateBlock is returned when a block appears more than once in one arrangement.
var ErrDuplicateBlock = errors.New("duplicate block")

// ErrBlockSetMismatch is returned when start and goal do not use the same blocks.
var ErrBlockSetMismatch = errors.New("start and goal block sets differ")

// ErrEmptyStack is returned when a step is requested on an empty goal stack.
var ErrEmptyStack = errors.New("goal stack is empty")

// ErrNotPrepared is returned when a step is requested before the agenda was prepared.
var ErrNotPrepared = errors.New("planner not prepared")

// ErrIterationLimitExceeded is returned by the bounded driver when the goal stack
// is still non-empty after the maximum number of steps.
var ErrIterationLimitExceeded = errors.New("iteration limit exceeded")

// ErrMalformedConditions is returned when an atom set cannot be decoded into an arrangement.
var ErrMalformedConditions = errors.New("malformed condition set")

// ErrUnknownPredicate is returned when parsing an atom with an unknown predicate name.
var ErrUnknownPredicate = errors.New("unknown predicate")

// ErrUnknownOperator is returned when parsing an operator with an unknown name.
var ErrUnknownOperator = errors.New("unknown operator")

// ErrMalformedAtom is returned when an atom's textual form cannot be parsed.
var ErrMalformedAtom = errors.New("malformed atom")

// ErrProblemNotFound is returned when a problem name cannot be found in a catalog.
var ErrProblemNotFound = errors.New("problem not found")
