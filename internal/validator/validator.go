package validator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/goalstack/pkg/domain"
)

// BlockSet is the set of blocks used by an arrangement.
type BlockSet map[domain.Block]struct{}

// Sorted returns the blocks in lexical order.
func (s BlockSet) Sorted() []domain.Block {
	out := make([]domain.Block, 0, len(s))
	for b := range s {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ValidateArrangement checks one arrangement in isolation and returns its block set.
// Empty stacks and empty labels are rejected with domain.ErrInvalidShape; a block
// seen twice (in two stacks, or in a stack and the arm) with domain.ErrDuplicateBlock.
func ValidateArrangement(name string, a domain.Arrangement) (BlockSet, error) {
	blocks := make(BlockSet)

	for i, stack := range a.Table {
		if len(stack) == 0 {
			return nil, fmt.Errorf("%s: %w: stack %d is empty", name, domain.ErrInvalidShape, i)
		}
		for _, b := range stack {
			if err := checkBlock(name, blocks, b); err != nil {
				return nil, err
			}
		}
	}

	if held, ok := a.Holding(); ok {
		if strings.TrimSpace(string(held)) == "" {
			return nil, fmt.Errorf("%s: %w: arm holds a blank label", name, domain.ErrInvalidShape)
		}
		if _, seen := blocks[held]; seen {
			return nil, fmt.Errorf("%s: %w: block %q is both on the table and in the arm", name, domain.ErrDuplicateBlock, held)
		}
		blocks[held] = struct{}{}
	}

	return blocks, nil
}

func checkBlock(name string, blocks BlockSet, b domain.Block) error {
	if strings.TrimSpace(string(b)) == "" {
		return fmt.Errorf("%s: %w: empty block label", name, domain.ErrInvalidShape)
	}
	if _, seen := blocks[b]; seen {
		return fmt.Errorf("%s: %w: block %q appears more than once", name, domain.ErrDuplicateBlock, b)
	}
	blocks[b] = struct{}{}
	return nil
}

// ValidatePair validates start and goal independently, then checks that both use
// exactly the same blocks. Nothing is returned until every check passed.
func ValidatePair(start, goal domain.Arrangement) error {
	startBlocks, err := ValidateArrangement("start", start)
	if err != nil {
		return err
	}
	goalBlocks, err := ValidateArrangement("goal", goal)
	if err != nil {
		return err
	}

	if len(startBlocks) != len(goalBlocks) {
		return fmt.Errorf("%w: start has %d blocks, goal has %d", domain.ErrBlockSetMismatch, len(startBlocks), len(goalBlocks))
	}

	var missing []string
	for _, b := range startBlocks.Sorted() {
		if _, ok := goalBlocks[b]; !ok {
			missing = append(missing, string(b))
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: goal lacks %s", domain.ErrBlockSetMismatch, strings.Join(missing, ", "))
	}

	return nil
}
