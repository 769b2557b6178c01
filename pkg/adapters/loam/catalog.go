package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/goalstack/pkg/domain"
	"github.com/aretw0/goalstack/pkg/problem"
	"github.com/aretw0/loam"
)

// Catalog adapts a Loam repository of problem documents to ports.ProblemSource.
// Documents may be Markdown with front matter (the body becomes the description
// when none is set) or plain JSON objects.
type Catalog struct {
	Repo *loam.TypedRepository[ProblemMetadata]
}

// New creates a new Loam adapter.
func New(repo *loam.TypedRepository[ProblemMetadata]) *Catalog {
	return &Catalog{
		Repo: repo,
	}
}

// Open initializes a read-only, strict Loam repository at dir.
// Strict mode makes JSON and YAML documents agree on numeric types (json.Number).
func Open(dir string) (*Catalog, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}

	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}

	return New(loam.NewTypedRepository[ProblemMetadata](repo)), nil
}

// Load finds the document whose normalized name matches and decodes it.
// The result is not validated.
func (c *Catalog) Load(ctx context.Context, name string) (*problem.Problem, error) {
	docs, err := c.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	for _, doc := range docs {
		if docName(doc.Data.Name, doc.ID) != name {
			continue
		}
		// List leaves Content empty; the body only comes back from Get.
		full, err := c.Repo.Get(ctx, doc.ID)
		if err != nil {
			return nil, fmt.Errorf("loam get failed for %s: %w", doc.ID, err)
		}
		p, err := problem.Decode(full.Data.toMap(name, strings.TrimSpace(full.Content)))
		if err != nil {
			return nil, fmt.Errorf("document %s: %w", doc.ID, err)
		}
		return p, nil
	}

	return nil, fmt.Errorf("%w: %s", domain.ErrProblemNotFound, name)
}

// List returns every problem name in lexical order.
// Two documents resolving to the same name are reported as an error.
func (c *Catalog) List(ctx context.Context) ([]string, error) {
	docs, err := c.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	seen := make(map[string]string)
	names := make([]string, 0, len(docs))

	for _, doc := range docs {
		name := docName(doc.Data.Name, doc.ID)
		if existingPath, ok := seen[name]; ok {
			return nil, fmt.Errorf("collision detected: problem '%s' is defined in both '%s' and '%s'", name, existingPath, doc.ID)
		}
		seen[name] = doc.ID
		names = append(names, name)
	}

	sort.Strings(names)
	return names, nil
}

// docName prefers the declared name and falls back to the file name.
func docName(declared, docID string) string {
	if declared != "" {
		return declared
	}
	return trimExtension(docID)
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}
