package ports

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/aretw0/goalstack/pkg/domain"
	"github.com/aretw0/goalstack/pkg/problem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunProblemStoreContract runs a suite of tests to verify that a ProblemStore implementation
// adheres to the defined interface contract.
func RunProblemStoreContract(t *testing.T, store ProblemStore) {
	ctx := context.Background()
	name := "contract-" + time.Now().Format("20060102150405")

	sample := func(n string) *problem.Problem {
		return (&problem.Problem{
			Name:        n,
			Description: "contract sample",
			Start:       domain.NewArrangement("", []string{"A", "B"}),
			Goal:        domain.NewArrangement("A", []string{"B"}),
		}).WithMaxSteps(12)
	}

	t.Run("Save and Load", func(t *testing.T) {
		p := sample(name)
		require.NoError(t, store.Save(ctx, p), "Save should not return error")

		loaded, err := store.Load(ctx, name)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, p, loaded)
	})

	t.Run("Load returns a copy", func(t *testing.T) {
		loaded, err := store.Load(ctx, name)
		require.NoError(t, err)
		loaded.Start.Table[0][0] = "Z"

		again, err := store.Load(ctx, name)
		require.NoError(t, err)
		assert.Equal(t, domain.Block("A"), again.Start.Table[0][0])
	})

	t.Run("Save replaces", func(t *testing.T) {
		p := sample(name)
		p.Description = "replaced"
		require.NoError(t, store.Save(ctx, p))

		loaded, err := store.Load(ctx, name)
		require.NoError(t, err)
		assert.Equal(t, "replaced", loaded.Description)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+name)
		assert.ErrorIs(t, err, domain.ErrProblemNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, name), "Delete should not return error")

		_, err := store.Load(ctx, name)
		assert.ErrorIs(t, err, domain.ErrProblemNotFound, "Load after Delete should return ErrProblemNotFound")

		assert.NoError(t, store.Delete(ctx, name), "Delete is idempotent")
	})

	t.Run("List", func(t *testing.T) {
		ids := []string{name + "-b", name + "-a", name + "-c"}
		for _, id := range ids {
			require.NoError(t, store.Save(ctx, sample(id)))
		}
		defer func() {
			for _, id := range ids {
				_ = store.Delete(ctx, id)
			}
		}()

		names, err := store.List(ctx)
		require.NoError(t, err)

		var ours []string
		for _, n := range names {
			for _, id := range ids {
				if n == id {
					ours = append(ours, n)
				}
			}
		}
		assert.Equal(t, []string{name + "-a", name + "-b", name + "-c"}, ours, fmt.Sprintf("names should be sorted, got %v", names))
	})
}
