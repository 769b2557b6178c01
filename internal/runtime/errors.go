package runtime

import (
	"fmt"

	"github.com/aretw0/goalstack/pkg/domain"
)

// IterationLimitError reports that the bounded driver gave up with work left.
type IterationLimitError struct {
	MaxSteps  int
	Remaining int
	Top       domain.Entry
}

func (e *IterationLimitError) Error() string {
	return fmt.Sprintf("%v after %d steps (%d entries left, top %s)", domain.ErrIterationLimitExceeded, e.MaxSteps, e.Remaining, e.Top)
}

func (e *IterationLimitError) Unwrap() error {
	return domain.ErrIterationLimitExceeded
}
