package problem

import (
	"errors"
	"fmt"
	"strings"
)

// FieldError represents a single field validation failure.
type FieldError struct {
	Field  string // Document field, e.g. "max_steps" or "goal"
	Reason string // Human-readable reason for failure
	Err    error  // Underlying cause, if any (may wrap a domain sentinel)
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %q: %s", e.Field, e.Reason)
}

func (e *FieldError) Unwrap() error { return e.Err }

// AggregateError represents multiple validation failures.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d validation errors:\n", len(e.Errors))
	for i, err := range e.Errors {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, err.Error())
	}
	return b.String()
}

// Unwrap exposes every failure to errors.Is and errors.As.
func (e *AggregateError) Unwrap() []error { return e.Errors }

// FieldErrors returns every *FieldError carried by err.
// Otherwise returns nil.
func FieldErrors(err error) []*FieldError {
	var aggr *AggregateError
	if !errors.As(err, &aggr) {
		var fe *FieldError
		if errors.As(err, &fe) {
			return []*FieldError{fe}
		}
		return nil
	}

	out := make([]*FieldError, 0, len(aggr.Errors))
	for _, e := range aggr.Errors {
		var fe *FieldError
		if errors.As(e, &fe) {
			out = append(out, fe)
		}
	}
	return out
}

// IsValidation reports whether err came from Validate.
func IsValidation(err error) bool {
	var aggr *AggregateError
	return errors.As(err, &aggr)
}
