package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/goalstack/internal/testutils"
	"github.com/aretw0/goalstack/pkg/domain"
)

func TestBuiltinProblems_Valid(t *testing.T) {
	for _, p := range BuiltinProblems() {
		assert.NoError(t, p.Validate(), p.Name)
	}
}

func TestOpenCatalog_Memory(t *testing.T) {
	c, err := OpenCatalog(CatalogOptions{})
	require.NoError(t, err)
	defer c.Close()

	names, err := c.Source.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"full-reversal", "pair", "split-tower", "swap-top"}, names)

	_, ok := c.Store()
	assert.True(t, ok)
	assert.NotNil(t, c.Locker)
}

func TestOpenCatalog_Dir(t *testing.T) {
	dir, _ := testutils.SetupTestRepo(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "stack.json"), []byte(`{
  "start": {"table": [["A"], ["B"]]},
  "goal": {"table": [["B", "A"]]}
}`), 0644))

	c, err := OpenCatalog(CatalogOptions{Dir: dir})
	require.NoError(t, err)
	defer c.Close()

	p, err := c.Source.Load(context.Background(), "stack")
	require.NoError(t, err)
	assert.Equal(t, domain.NewArrangement("", []string{"B", "A"}), p.Goal)

	_, ok := c.Store()
	assert.False(t, ok, "directory catalogs are read-only")
	assert.Nil(t, c.Locker)
}

func TestOpenCatalog_Redis(t *testing.T) {
	mr := miniredis.RunT(t)

	c, err := OpenCatalog(CatalogOptions{RedisAddr: mr.Addr(), RedisPrefix: "test:"})
	require.NoError(t, err)
	defer c.Close()

	store, ok := c.Store()
	require.True(t, ok)
	require.NoError(t, store.Save(context.Background(), BuiltinProblems()[2]))

	p, err := c.Source.Load(context.Background(), "pair")
	require.NoError(t, err)
	assert.Equal(t, "pair", p.Name)

	unlock, err := c.Locker.Lock(context.Background(), "problem:pair", time.Second)
	require.NoError(t, err)
	require.NoError(t, unlock(context.Background()))
}

func TestResolveProblem(t *testing.T) {
	c, err := OpenCatalog(CatalogOptions{})
	require.NoError(t, err)
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "mine.yaml")
	require.NoError(t, os.WriteFile(path, []byte("start:\n  table: [[A]]\ngoal:\n  table: [[A]]\n"), 0644))

	p, err := ResolveProblem(ctx, c.Source, path)
	require.NoError(t, err)
	assert.Equal(t, "mine", p.Name)

	p, err = ResolveProblem(ctx, c.Source, "split-tower")
	require.NoError(t, err)
	assert.Equal(t, "split-tower", p.Name)

	_, err = ResolveProblem(ctx, c.Source, "missing")
	assert.ErrorIs(t, err, domain.ErrProblemNotFound)
}
