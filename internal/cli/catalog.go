package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/aretw0/goalstack/pkg/adapters/loam"
	"github.com/aretw0/goalstack/pkg/adapters/memory"
	"github.com/aretw0/goalstack/pkg/adapters/redis"
	"github.com/aretw0/goalstack/pkg/domain"
	"github.com/aretw0/goalstack/pkg/ports"
	"github.com/aretw0/goalstack/pkg/problem"
)

// CatalogOptions selects where named problems come from.
// Redis wins over Dir; with neither, the built-in problems are served from memory.
type CatalogOptions struct {
	Dir           string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string
}

// Catalog is an opened problem source and the function that releases it.
type Catalog struct {
	Source ports.ProblemSource
	Locker ports.DistributedLocker
	Close  func() error
}

// Store returns the catalog as a writable store, if it is one.
func (c *Catalog) Store() (ports.ProblemStore, bool) {
	s, ok := c.Source.(ports.ProblemStore)
	return s, ok
}

// OpenCatalog opens the catalog described by opts.
func OpenCatalog(opts CatalogOptions) (*Catalog, error) {
	switch {
	case opts.RedisAddr != "":
		var storeOpts []redis.Option
		if opts.RedisPrefix != "" {
			storeOpts = append(storeOpts, redis.WithPrefix(opts.RedisPrefix))
		}
		store := redis.New(opts.RedisAddr, opts.RedisPassword, opts.RedisDB, storeOpts...)
		lockPrefix := opts.RedisPrefix
		if lockPrefix == "" {
			lockPrefix = "goalstack:"
		}
		return &Catalog{
			Source: store,
			Locker: redis.NewLocker(store.Client(), lockPrefix),
			Close:  store.Close,
		}, nil

	case opts.Dir != "":
		catalog, err := loam.Open(opts.Dir)
		if err != nil {
			return nil, fmt.Errorf("failed to open catalog %s: %w", opts.Dir, err)
		}
		return &Catalog{Source: catalog, Close: func() error { return nil }}, nil
	}

	store, err := memory.NewFromProblems(BuiltinProblems()...)
	if err != nil {
		return nil, err
	}
	return &Catalog{Source: store, Locker: memory.NewLocker(), Close: func() error { return nil }}, nil
}

// BuiltinProblems are the classic examples served when no catalog is configured.
func BuiltinProblems() []*problem.Problem {
	return []*problem.Problem{
		{
			Name:        "split-tower",
			Description: "Take a three-block tower apart.",
			Start:       domain.NewArrangement("", []string{"A", "B", "C"}),
			Goal:        domain.NewArrangement("", []string{"B"}, []string{"A"}, []string{"C"}),
		},
		{
			Name:        "swap-top",
			Description: "Rebuild a tower with a different pair on the bottom.",
			Start:       domain.NewArrangement("", []string{"C", "B", "A"}),
			Goal:        domain.NewArrangement("", []string{"A", "C"}, []string{"B"}),
		},
		{
			Name:        "pair",
			Description: "Put one block on another.",
			Start:       domain.NewArrangement("", []string{"A"}, []string{"B"}),
			Goal:        domain.NewArrangement("", []string{"B", "A"}),
		},
		(&problem.Problem{
			Name:        "full-reversal",
			Description: "Reverse a three-block tower. Needs more than the default bound.",
			Start:       domain.NewArrangement("", []string{"A", "B", "C"}),
			Goal:        domain.NewArrangement("", []string{"C", "B", "A"}),
		}).WithMaxSteps(100),
	}
}

// ResolveProblem treats ref as a file path when such a file exists and as a
// catalog name otherwise.
func ResolveProblem(ctx context.Context, src ports.ProblemSource, ref string) (*problem.Problem, error) {
	if info, err := os.Stat(ref); err == nil && !info.IsDir() {
		return problem.Load(ref)
	}
	return src.Load(ctx, ref)
}
