package observability_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/aretw0/goalstack/internal/runtime"
	"github.com/aretw0/goalstack/pkg/domain"
	"github.com/aretw0/goalstack/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, hooks domain.LifecycleHooks) *runtime.Engine {
	t.Helper()
	e := runtime.NewEngine(
		domain.NewArrangement("", []string{"A"}, []string{"B"}),
		domain.NewArrangement("", []string{"B", "A"}),
		runtime.WithLifecycleHooks(hooks),
	)
	e.Prepare()
	require.NoError(t, e.RunToCompletion(context.Background(), 100))
	return e
}

func TestMetrics_Hooks(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := observability.NewMetrics(reg)

	e := run(t, m.Hooks())
	m.ObserveRun(nil)

	var steps float64
	for _, rule := range []domain.Rule{domain.RuleSatisfied, domain.RuleApply, domain.RuleResolve, domain.RuleExpand} {
		steps += testutil.ToFloat64(m.Steps.WithLabelValues(rule.String()))
	}
	assert.Equal(t, float64(e.Steps()), steps)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Operators.WithLabelValues("PICKUP")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Operators.WithLabelValues("STACK")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Runs.WithLabelValues(observability.OutcomeComplete)))
	assert.Equal(t, 1, testutil.CollectAndCount(m.PlanLength))

	count, err := testutil.GatherAndCount(reg, "goalstack_runs_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestOutcome(t *testing.T) {
	limit := &runtime.IterationLimitError{MaxSteps: 1}

	assert.Equal(t, observability.OutcomeComplete, observability.Outcome(nil))
	assert.Equal(t, observability.OutcomeLimit, observability.Outcome(limit))
	assert.Equal(t, observability.OutcomeInvalid, observability.Outcome(fmt.Errorf("goal: %w", domain.ErrDuplicateBlock)))
	assert.Equal(t, observability.OutcomeCancelled, observability.Outcome(context.Canceled))
	assert.Equal(t, observability.OutcomeError, observability.Outcome(errors.New("boom")))
}

func TestLoggingHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	run(t, observability.LoggingHooks(logger).Merge(domain.LifecycleHooks{}))

	out := buf.String()
	assert.Contains(t, out, "operator=PICKUP(A)")
	assert.Contains(t, out, "operator=STACK(A,B)")
	assert.Contains(t, out, `msg="plan complete"`)
	assert.NotContains(t, out, "msg=step")
}
