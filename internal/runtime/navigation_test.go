package runtime

import (
	"context"
	"testing"

	"github.com/aretw0/goalstack/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// primed returns a prepared engine whose agenda and latest snapshot are replaced.
func primed(snapshot domain.Conditions, entries ...domain.Entry) *Engine {
	e := NewEngine(domain.Arrangement{}, domain.Arrangement{})
	e.Prepare()
	e.trace = []domain.Conditions{snapshot}
	e.stack = append(goalStack(nil), entries...)
	return e
}

func TestSelectOperator(t *testing.T) {
	tests := []struct {
		name     string
		goal     domain.Atom
		snapshot domain.Conditions
		want     domain.Operator
		ok       bool
	}{
		{
			name:     "clear a covered block",
			goal:     domain.Clear("A"),
			snapshot: domain.NewConditions(domain.On("B", "A"), domain.OnTable("A"), domain.Clear("B"), domain.ArmEmpty()),
			want:     domain.Unstack("B", "A"),
			ok:       true,
		},
		{
			name:     "clear an uncovered block",
			goal:     domain.Clear("A"),
			snapshot: domain.NewConditions(domain.Holding("A")),
			want:     domain.Pickup("A"),
			ok:       true,
		},
		{
			name:     "on with empty arm",
			goal:     domain.On("A", "B"),
			snapshot: domain.NewConditions(domain.ArmEmpty()),
			want:     domain.Stack("A", "B"),
			ok:       true,
		},
		{
			name:     "on while holding puts down",
			goal:     domain.On("A", "B"),
			snapshot: domain.NewConditions(domain.Holding("C")),
			want:     domain.Putdown("A"),
			ok:       true,
		},
		{
			name:     "ontable",
			goal:     domain.OnTable("A"),
			snapshot: domain.NewConditions(),
			want:     domain.Putdown("A"),
			ok:       true,
		},
		{
			name:     "holding a table block",
			goal:     domain.Holding("A"),
			snapshot: domain.NewConditions(domain.OnTable("A")),
			want:     domain.Pickup("A"),
			ok:       true,
		},
		{
			name:     "holding a stacked block",
			goal:     domain.Holding("A"),
			snapshot: domain.NewConditions(domain.On("A", "B")),
			want:     domain.Unstack("A", "B"),
			ok:       true,
		},
		{
			name:     "holding fallback",
			goal:     domain.Holding("A"),
			snapshot: domain.NewConditions(),
			want:     domain.Putdown("A"),
			ok:       true,
		},
		{
			name:     "armempty while holding",
			goal:     domain.ArmEmpty(),
			snapshot: domain.NewConditions(domain.Holding("B")),
			want:     domain.Putdown("B"),
			ok:       true,
		},
		{
			name:     "armempty with nothing held",
			goal:     domain.ArmEmpty(),
			snapshot: domain.NewConditions(),
			ok:       false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := selectOperator(tt.goal, tt.snapshot)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestStep_OnWhileHoldingExpandsToPutdown(t *testing.T) {
	goal := domain.On("A", "B")
	e := primed(
		domain.NewConditions(domain.Holding("C"), domain.OnTable("A"), domain.OnTable("B"), domain.Clear("A"), domain.Clear("B")),
		domain.ConjunctionEntry([]domain.Atom{goal}),
		domain.AtomEntry(goal),
	)

	rec, err := e.Step(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.RuleExpand, rec.Rule)

	assert.Equal(t, []domain.Entry{
		domain.ConjunctionEntry([]domain.Atom{goal}),
		domain.OperatorEntry(domain.Putdown("A")),
		domain.ConjunctionEntry([]domain.Atom{domain.Holding("A")}),
		domain.AtomEntry(domain.Holding("A")),
	}, e.GoalStack())
}

func TestStep_ArmEmptyWithNothingHeld(t *testing.T) {
	// ARMEMPTY is unmet but nothing is held, so no operator can be chosen.
	e := primed(
		domain.NewConditions(domain.OnTable("A"), domain.Clear("A")),
		domain.OperatorEntry(domain.Pickup("A")),
		domain.AtomEntry(domain.ArmEmpty()),
	)

	rec, err := e.Step(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.RuleExpand, rec.Rule)
	assert.Len(t, rec.Popped, 1)
	assert.Empty(t, rec.Pushed)
	assert.Equal(t, []domain.Entry{domain.OperatorEntry(domain.Pickup("A"))}, e.GoalStack())
}

func TestStep_HoldingGuardCommitsOperator(t *testing.T) {
	snapshot := domain.NewConditions(domain.Holding("A"), domain.OnTable("B"), domain.Clear("B"))
	e := primed(snapshot,
		domain.OperatorEntry(domain.Putdown("A")),
		domain.AtomEntry(domain.Holding("A")),
	)

	rec, err := e.Step(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.RuleResolve, rec.Rule)
	require.NotNil(t, rec.Committed)
	assert.Equal(t, domain.Putdown("A"), *rec.Committed)
	assert.True(t, rec.Done)
	assert.Len(t, rec.Popped, 2)

	assert.Equal(t, []domain.Operator{domain.Putdown("A")}, e.History())
	assert.True(t, e.Latest().Has(domain.OnTable("A")))
	assert.True(t, e.Latest().Has(domain.ArmEmpty()))
}

func TestStep_ResolvePushesFirstMissing(t *testing.T) {
	e := primed(
		domain.NewConditions(domain.OnTable("A"), domain.ArmEmpty()),
		domain.OperatorEntry(domain.Pickup("A")),
		domain.ConjunctionEntry([]domain.Atom{domain.OnTable("A"), domain.Clear("A"), domain.ArmEmpty()}),
	)

	rec, err := e.Step(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.RuleResolve, rec.Rule)
	assert.Equal(t, []domain.Entry{domain.AtomEntry(domain.Clear("A"))}, rec.Pushed)
	assert.Nil(t, rec.Committed)
	assert.Equal(t, []domain.Entry{
		domain.OperatorEntry(domain.Pickup("A")),
		domain.AtomEntry(domain.Clear("A")),
	}, e.GoalStack())
}

func TestCommit_SkipsRepeatedOperator(t *testing.T) {
	e := primed(domain.NewConditions(domain.OnTable("A"), domain.Clear("A"), domain.ArmEmpty()),
		domain.OperatorEntry(domain.Pickup("A")),
		domain.OperatorEntry(domain.Pickup("A")),
	)

	first, err := e.Step(context.Background())
	require.NoError(t, err)
	require.NotNil(t, first.Committed)

	second, err := e.Step(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.RuleApply, second.Rule)
	assert.Nil(t, second.Committed)

	assert.Len(t, e.History(), 1)
	assert.Len(t, e.Snapshots(), 2)
}
