package observability

import (
	"context"
	"errors"

	"github.com/aretw0/goalstack/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels for finished runs.
const (
	OutcomeComplete  = "complete"
	OutcomeLimit     = "iteration_limit"
	OutcomeInvalid   = "invalid"
	OutcomeCancelled = "cancelled"
	OutcomeError     = "error"
)

// Metrics holds the planner collectors.
type Metrics struct {
	Steps      *prometheus.CounterVec
	Operators  *prometheus.CounterVec
	Runs       *prometheus.CounterVec
	PlanLength prometheus.Histogram
	PlanSteps  prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered (useful in tests).
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Steps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "goalstack_steps_total",
				Help: "Total number of planner steps by rule",
			},
			[]string{"rule"},
		),
		Operators: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "goalstack_operators_committed_total",
				Help: "Total number of operators committed to plans",
			},
			[]string{"operator"},
		),
		Runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "goalstack_runs_total",
				Help: "Total number of bounded runs by outcome",
			},
			[]string{"outcome"},
		),
		PlanLength: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "goalstack_plan_length",
			Help:    "Number of operators in completed plans",
			Buckets: prometheus.LinearBuckets(0, 2, 10),
		}),
		PlanSteps: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "goalstack_plan_steps",
			Help:    "Number of steps taken by completed plans",
			Buckets: prometheus.ExponentialBuckets(4, 2, 8),
		}),
	}

	if reg != nil {
		reg.MustRegister(m.Steps, m.Operators, m.Runs, m.PlanLength, m.PlanSteps)
	}
	return m
}

// Hooks returns lifecycle hooks feeding the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStep: func(ctx context.Context, e *domain.StepEvent) {
			m.Steps.WithLabelValues(e.Record.Rule.String()).Inc()
		},
		OnCommit: func(ctx context.Context, e *domain.CommitEvent) {
			m.Operators.WithLabelValues(string(e.Operator.Kind)).Inc()
		},
		OnComplete: func(ctx context.Context, e *domain.CompleteEvent) {
			m.PlanLength.Observe(float64(e.PlanSize))
			m.PlanSteps.Observe(float64(e.Steps))
		},
	}
}

// ObserveRun counts a finished run by the outcome err implies.
func (m *Metrics) ObserveRun(err error) {
	m.Runs.WithLabelValues(Outcome(err)).Inc()
}

// Outcome classifies the error returned by a bounded run.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeComplete
	case errors.Is(err, domain.ErrIterationLimitExceeded):
		return OutcomeLimit
	case errors.Is(err, domain.ErrInvalidShape),
		errors.Is(err, domain.ErrDuplicateBlock),
		errors.Is(err, domain.ErrBlockSetMismatch):
		return OutcomeInvalid
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return OutcomeCancelled
	}
	return OutcomeError
}
