package goalstack

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/aretw0/goalstack/internal/runtime"
	"github.com/aretw0/goalstack/internal/validator"
	"github.com/aretw0/goalstack/pkg/domain"
	"github.com/aretw0/goalstack/pkg/problem"
)

// Planner is the high-level entry point for the goalstack library.
// It validates a start/goal pair once, then wraps the internal runtime with a
// mutex so adapters may share one planner safely.
type Planner struct {
	mu       sync.Mutex
	runtime  *runtime.Engine
	maxSteps int
	hooks    domain.LifecycleHooks
	logger   *slog.Logger
	Name     string

	// pending holds hook calls raised under mu; they run once mu is released
	// so hooks may call back into the Planner.
	pending []func()
}

// Option defines a functional option for configuring the Planner.
type Option func(*Planner)

// WithLifecycleHooks registers observability hooks.
// Hooks run after the planner releases its lock, so they may read the planner
// (History, GoalStack, ...). Events raised by one call are delivered in order
// when that call returns.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(p *Planner) {
		p.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the planner.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Planner) {
		p.logger = logger
	}
}

// WithName labels the planner; the name is added to every log line.
func WithName(name string) Option {
	return func(p *Planner) {
		p.Name = name
	}
}

// Result summarises a finished (or abandoned) run.
type Result struct {
	Plan      []domain.Operator   `json:"plan"`
	Steps     int                 `json:"steps"`
	Done      bool                `json:"done"`
	Final     domain.Arrangement  `json:"final"`
	Snapshots []domain.Conditions `json:"-"`
}

// New validates the arrangements and builds a planner bounded by maxSteps.
// Validation failures wrap domain.ErrInvalidShape, domain.ErrDuplicateBlock or
// domain.ErrBlockSetMismatch. The arrangements are copied.
func New(start, goal domain.Arrangement, maxSteps int, opts ...Option) (*Planner, error) {
	if err := validator.ValidatePair(start, goal); err != nil {
		return nil, err
	}
	if maxSteps < 0 {
		return nil, fmt.Errorf("max steps must not be negative, got %d", maxSteps)
	}

	p := &Planner{maxSteps: maxSteps}
	for _, opt := range opts {
		opt(p)
	}

	// Ensure logger is initialized (so we don't pass nil to runtime, which would overwrite its default)
	if p.logger == nil {
		p.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if p.Name != "" {
		p.logger = p.logger.With("problem", p.Name)
	}

	p.runtime = runtime.NewEngine(start, goal,
		runtime.WithLifecycleHooks(p.deferred(p.hooks)),
		runtime.WithLogger(p.logger),
	)
	return p, nil
}

// FromProblem validates a problem document and builds a planner for it.
// Validation failures are returned as *problem.AggregateError.
func FromProblem(doc *problem.Problem, opts ...Option) (*Planner, error) {
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	if doc.Name != "" {
		opts = append([]Option{WithName(doc.Name)}, opts...)
	}
	return New(doc.Start, doc.Goal, doc.Bound(), opts...)
}

// Prepare resets the goal stack, history and snapshots from the stored start and goal.
func (p *Planner) Prepare() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.runtime.Prepare()
}

// Step performs exactly one transition. It fails with domain.ErrNotPrepared before
// Prepare and domain.ErrEmptyStack once the plan is complete.
func (p *Planner) Step(ctx context.Context) (domain.StepRecord, error) {
	p.mu.Lock()
	defer p.flush()
	return p.runtime.Step(ctx)
}

// StepBounded is Step guarded by the bound given to New. The check and the
// step happen under one lock; at the bound with work left it returns an error
// matching domain.ErrIterationLimitExceeded and takes no step.
func (p *Planner) StepBounded(ctx context.Context) (domain.StepRecord, error) {
	p.mu.Lock()
	defer p.flush()
	if p.runtime.Prepared() && !p.runtime.Done() && p.runtime.Steps() >= p.maxSteps {
		agenda := p.runtime.GoalStack()
		return domain.StepRecord{}, &runtime.IterationLimitError{
			MaxSteps:  p.maxSteps,
			Remaining: len(agenda),
			Top:       agenda[len(agenda)-1],
		}
	}
	return p.runtime.Step(ctx)
}

// RunToCompletion steps until the goal stack empties or maxSteps steps were taken.
// The limit case returns an error matching domain.ErrIterationLimitExceeded.
func (p *Planner) RunToCompletion(ctx context.Context, maxSteps int) error {
	p.mu.Lock()
	defer p.flush()
	return p.runtime.RunToCompletion(ctx, maxSteps)
}

// Solve prepares and runs with the bound given to New.
// The Result is filled in even when the bound is hit.
func (p *Planner) Solve(ctx context.Context) (*Result, error) {
	p.mu.Lock()
	defer p.flush()

	p.runtime.Prepare()
	runErr := p.runtime.RunToCompletion(ctx, p.maxSteps)

	final, err := p.currentArrangement()
	if err != nil {
		return nil, err
	}

	res := &Result{
		Plan:      p.runtime.History(),
		Steps:     p.runtime.Steps(),
		Done:      p.runtime.Done(),
		Final:     final,
		Snapshots: p.runtime.Snapshots(),
	}
	return res, runErr
}

// flush releases mu and then runs the hook calls queued while it was held.
func (p *Planner) flush() {
	pending := p.pending
	p.pending = nil
	p.mu.Unlock()
	for _, call := range pending {
		call()
	}
}

// deferred wraps hooks so that each call is queued instead of run in place.
// The engine only raises events while mu is held.
func (p *Planner) deferred(h domain.LifecycleHooks) domain.LifecycleHooks {
	var out domain.LifecycleHooks
	if h.OnStep != nil {
		out.OnStep = func(ctx context.Context, e *domain.StepEvent) {
			p.pending = append(p.pending, func() { h.OnStep(ctx, e) })
		}
	}
	if h.OnCommit != nil {
		out.OnCommit = func(ctx context.Context, e *domain.CommitEvent) {
			p.pending = append(p.pending, func() { h.OnCommit(ctx, e) })
		}
	}
	if h.OnComplete != nil {
		out.OnComplete = func(ctx context.Context, e *domain.CompleteEvent) {
			p.pending = append(p.pending, func() { h.OnComplete(ctx, e) })
		}
	}
	return out
}

// CurrentArrangement decodes the latest snapshot, or returns the stored start
// before any snapshot exists.
func (p *Planner) CurrentArrangement() (domain.Arrangement, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.currentArrangement()
}

func (p *Planner) currentArrangement() (domain.Arrangement, error) {
	latest := p.runtime.Latest()
	if latest == nil {
		return p.runtime.Start(), nil
	}
	return domain.FromConditions(latest)
}

// GoalStack returns a copy of the agenda, bottom entry first.
func (p *Planner) GoalStack() []domain.Entry {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.runtime.GoalStack()
}

// History returns a copy of the committed operators.
func (p *Planner) History() []domain.Operator {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.runtime.History()
}

// Snapshots returns copies of every recorded world state, oldest first.
func (p *Planner) Snapshots() []domain.Conditions {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.runtime.Snapshots()
}

// Snapshot returns the world state after k committed operators.
func (p *Planner) Snapshot(k int) (domain.Conditions, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.runtime.Snapshot(k)
}

// Done reports whether the planner was prepared and its goal stack is empty.
func (p *Planner) Done() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.runtime.Done()
}

// Steps returns the number of steps taken since the last Prepare.
func (p *Planner) Steps() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.runtime.Steps()
}

// Start returns a copy of the start arrangement.
func (p *Planner) Start() domain.Arrangement { return p.runtime.Start() }

// Goal returns a copy of the goal arrangement.
func (p *Planner) Goal() domain.Arrangement { return p.runtime.Goal() }

// MaxSteps returns the bound given to New.
func (p *Planner) MaxSteps() int { return p.maxSteps }
