package runtime

import (
	"context"
	"io"
	"log/slog"

	"github.com/aretw0/goalstack/pkg/domain"
)

// Engine is the goal-stack planner core.
// It owns the agenda (goal stack), the operator history and the snapshot trace,
// and advances them one transition at a time. An Engine is not safe for concurrent use.
type Engine struct {
	start domain.Arrangement
	goal  domain.Arrangement

	stack    goalStack
	history  []domain.Operator
	trace    []domain.Conditions
	steps    int
	prepared bool

	hooks  domain.LifecycleHooks
	logger *slog.Logger
}

// EngineOption defines a functional option for configuring the Engine.
type EngineOption func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewEngine creates an engine for an already validated start/goal pair.
// The arrangements are copied; Prepare must be called before stepping.
func NewEngine(start, goal domain.Arrangement, opts ...EngineOption) *Engine {
	e := &Engine{
		start:  start.Clone(),
		goal:   goal.Clone(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Prepare (re)initializes the agenda from the stored start and goal.
// snapshot[0] is the start encoding; the goal conjunction sits at the bottom of the
// goal stack with each goal atom layered on top of it.
func (e *Engine) Prepare() {
	goalAtoms := domain.GoalAtoms(e.goal)

	e.stack = e.stack[:0]
	e.history = nil
	e.trace = []domain.Conditions{domain.ToConditions(e.start)}
	e.steps = 0

	e.stack.push(domain.ConjunctionEntry(goalAtoms))
	for _, a := range goalAtoms {
		e.stack.push(domain.AtomEntry(a))
	}
	e.prepared = true

	e.logger.Debug("agenda prepared", "goal", domain.JoinAtoms(goalAtoms), "start", e.trace[0].String())
}

// Start returns a copy of the stored start arrangement.
func (e *Engine) Start() domain.Arrangement { return e.start.Clone() }

// Goal returns a copy of the stored goal arrangement.
func (e *Engine) Goal() domain.Arrangement { return e.goal.Clone() }

// Prepared reports whether Prepare has been called.
func (e *Engine) Prepared() bool { return e.prepared }

// Done reports whether the plan is complete (prepared and goal stack empty).
func (e *Engine) Done() bool { return e.prepared && e.stack.empty() }

// Steps returns the number of steps taken since the last Prepare.
func (e *Engine) Steps() int { return e.steps }

// GoalStack returns a copy of the agenda, bottom entry first.
func (e *Engine) GoalStack() []domain.Entry {
	out := make([]domain.Entry, len(e.stack))
	for i, entry := range e.stack {
		out[i] = entry.Clone()
	}
	return out
}

// History returns a copy of the committed operators, i.e. the plan so far.
func (e *Engine) History() []domain.Operator {
	return append([]domain.Operator(nil), e.history...)
}

// Snapshots returns copies of every recorded world state, oldest first.
func (e *Engine) Snapshots() []domain.Conditions {
	out := make([]domain.Conditions, len(e.trace))
	for i, s := range e.trace {
		out[i] = s.Clone()
	}
	return out
}

// Snapshot returns a copy of the world state after k committed operators.
func (e *Engine) Snapshot(k int) (domain.Conditions, bool) {
	if k < 0 || k >= len(e.trace) {
		return nil, false
	}
	return e.trace[k].Clone(), true
}

// Latest returns a copy of the newest snapshot, or nil before Prepare.
func (e *Engine) Latest() domain.Conditions {
	if len(e.trace) == 0 {
		return nil
	}
	return e.trace[len(e.trace)-1].Clone()
}

func (e *Engine) latest() domain.Conditions {
	return e.trace[len(e.trace)-1]
}

// RunToCompletion steps until the goal stack empties.
// It returns an *IterationLimitError (matching domain.ErrIterationLimitExceeded) when
// maxSteps steps were taken and work remains. A cancelled context stops the loop
// between steps; the agenda stays valid and can be resumed.
func (e *Engine) RunToCompletion(ctx context.Context, maxSteps int) error {
	if !e.prepared {
		return domain.ErrNotPrepared
	}

	for taken := 0; !e.stack.empty(); taken++ {
		if taken >= maxSteps {
			e.logger.Warn("iteration limit reached", "max_steps", maxSteps, "remaining", len(e.stack))
			return &IterationLimitError{MaxSteps: maxSteps, Remaining: len(e.stack), Top: e.stack.top()}
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := e.Step(ctx); err != nil {
			return err
		}
	}
	return nil
}
