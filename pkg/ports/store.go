package ports

import (
	"context"

	"github.com/aretw0/goalstack/pkg/problem"
)

// ProblemSource is a read-only catalog of problems.
type ProblemSource interface {
	// Load retrieves a problem by name.
	// Returns domain.ErrProblemNotFound if it does not exist.
	Load(ctx context.Context, name string) (*problem.Problem, error)

	// List returns the names of all problems in lexical order.
	List(ctx context.Context) ([]string, error)
}

// ProblemStore is a writable catalog of problems.
type ProblemStore interface {
	ProblemSource

	// Save stores the problem under its Name, replacing any previous version.
	Save(ctx context.Context, p *problem.Problem) error

	// Delete removes the problem. Deleting a missing problem is not an error.
	Delete(ctx context.Context, name string) error
}
