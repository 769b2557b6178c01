package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/goalstack/pkg/domain"
	"github.com/aretw0/goalstack/pkg/problem"
)

// Store implements ports.ProblemStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*problem.Problem
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*problem.Problem),
	}
}

// NewFromProblems creates a store seeded with the given problems.
// Every problem must be named.
func NewFromProblems(problems ...*problem.Problem) (*Store, error) {
	s := NewStore()
	for _, p := range problems {
		if p.Name == "" {
			return nil, fmt.Errorf("problem missing name")
		}
		s.data[p.Name] = p.Clone()
	}
	return s, nil
}

// Save stores a copy of the problem.
func (s *Store) Save(ctx context.Context, p *problem.Problem) error {
	if p.Name == "" {
		return fmt.Errorf("problem missing name")
	}
	copied := p.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[p.Name] = copied
	return nil
}

// Load retrieves a copy so callers cannot mutate the stored problem.
func (s *Store) Load(ctx context.Context, name string) (*problem.Problem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.data[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrProblemNotFound, name)
	}
	return p.Clone(), nil
}

// Delete removes the problem.
func (s *Store) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, name)
	return nil
}

// List returns the stored names in lexical order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.data))
	for name := range s.data {
		names = append(names, name)
	}
	sort.Strings(names) // Deterministic order
	return names, nil
}
