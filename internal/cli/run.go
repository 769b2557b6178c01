package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/aretw0/goalstack"
	"github.com/aretw0/goalstack/internal/dto"
	"github.com/aretw0/goalstack/internal/presentation/graph"
	"github.com/aretw0/goalstack/internal/presentation/tui"
	"github.com/aretw0/goalstack/pkg/domain"
	"github.com/aretw0/goalstack/pkg/observability"
	"github.com/aretw0/goalstack/pkg/ports"
	"github.com/aretw0/goalstack/pkg/problem"
	"github.com/google/uuid"
)

// RunOptions contains the configuration shared by solve, step and graph.
type RunOptions struct {
	// Ref is a problem file path or a catalog name.
	Ref string

	// MaxSteps overrides the document's bound when not negative.
	MaxSteps int

	// Trace includes every step record in structured output.
	Trace bool

	Logger *slog.Logger
}

// load resolves the problem and applies the bound override.
func load(ctx context.Context, src ports.ProblemSource, opts RunOptions) (*problem.Problem, error) {
	doc, err := ResolveProblem(ctx, src, opts.Ref)
	if err != nil {
		return nil, err
	}
	if opts.MaxSteps >= 0 {
		doc.WithMaxSteps(opts.MaxSteps)
	}
	return doc, nil
}

func newPlanner(doc *problem.Problem, logger *slog.Logger, extra domain.LifecycleHooks) (*goalstack.Planner, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	hooks := observability.LoggingHooks(logger).Merge(extra)
	return goalstack.FromProblem(doc,
		goalstack.WithLogger(logger),
		goalstack.WithLifecycleHooks(hooks),
	)
}

func report(doc *problem.Problem, res *goalstack.Result) tui.Report {
	return tui.Report{
		Name:  doc.Name,
		Start: doc.Start,
		Goal:  doc.Goal,
		Final: res.Final,
		Plan:  res.Plan,
		Steps: res.Steps,
		Done:  res.Done,
		Limit: doc.Bound(),
	}
}

// Solve plans a problem and prints the result. A bounded stop is printed and
// then returned as an error matching domain.ErrIterationLimitExceeded.
func Solve(ctx context.Context, src ports.ProblemSource, printer *Printer, opts RunOptions) error {
	doc, err := load(ctx, src, opts)
	if err != nil {
		return err
	}

	var records []domain.StepRecord
	var extra domain.LifecycleHooks
	if opts.Trace {
		extra.OnStep = func(_ context.Context, e *domain.StepEvent) { records = append(records, e.Record) }
	}

	planner, err := newPlanner(doc, opts.Logger, extra)
	if err != nil {
		return err
	}

	res, runErr := planner.Solve(ctx)
	if res == nil {
		return runErr
	}

	resp := dto.NewPlanResponse(uuid.NewString(), doc.Name, res, runErr)
	resp.Trace = records
	if err := printer.Result(report(doc, res), resp); err != nil {
		return err
	}
	return runErr
}

// StepOptions configure an interactive walk through the goal stack.
type StepOptions struct {
	RunOptions

	// Interactive waits for a line on In before every step.
	Interactive bool
	In          io.Reader
	Prompt      io.Writer
}

// Step advances the planner one step at a time, printing every record.
// In interactive mode an empty line steps, "r" runs to the end and "q" stops.
func Step(ctx context.Context, src ports.ProblemSource, printer *Printer, opts StepOptions) error {
	doc, err := load(ctx, src, opts.RunOptions)
	if err != nil {
		return err
	}
	planner, err := newPlanner(doc, opts.Logger, domain.LifecycleHooks{})
	if err != nil {
		return err
	}

	planner.Prepare()
	if printer.Format == FormatText {
		if err := printer.Agenda(planner.GoalStack()); err != nil {
			return err
		}
	}

	var lines *bufio.Scanner
	if opts.Interactive {
		lines = bufio.NewScanner(opts.In)
	}

	for !planner.Done() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if lines != nil {
			fmt.Fprint(opts.Prompt, "[enter] step  [r] run  [q] quit > ")
			if !lines.Scan() {
				return lines.Err()
			}
			switch strings.ToLower(strings.TrimSpace(lines.Text())) {
			case "q", "quit":
				return nil
			case "r", "run":
				lines = nil
			}
		}

		rec, err := planner.StepBounded(ctx)
		if err != nil {
			return err
		}
		current, err := planner.CurrentArrangement()
		if err != nil {
			return err
		}
		if err := printer.Step(StepView{Record: rec, Agenda: planner.GoalStack(), Current: current}); err != nil {
			return err
		}
	}

	if printer.Format != FormatText {
		return nil
	}
	res := &goalstack.Result{Plan: planner.History(), Steps: planner.Steps(), Done: true}
	res.Final, _ = planner.CurrentArrangement()
	return printer.Result(report(doc, res), dto.PlanResponse{})
}

// Graph plans a problem and returns its Mermaid flowchart. A non-negative
// position highlights the state after that many operators.
func Graph(ctx context.Context, src ports.ProblemSource, opts RunOptions, position int) (string, error) {
	doc, err := load(ctx, src, opts)
	if err != nil {
		return "", err
	}
	planner, err := newPlanner(doc, opts.Logger, domain.LifecycleHooks{})
	if err != nil {
		return "", err
	}

	res, runErr := planner.Solve(ctx)
	if res == nil {
		return "", runErr
	}
	states, err := graph.StatesFromSnapshots(res.Snapshots)
	if err != nil {
		return "", err
	}

	var overlay *graph.PlanOverlay
	if position >= 0 {
		overlay = &graph.PlanOverlay{Position: position}
	}
	goal := doc.Goal
	return graph.GenerateMermaid(doc.Name, states, res.Plan, &goal, overlay), runErr
}

// ValidationResult reports one checked problem.
type ValidationResult struct {
	Ref   string `json:"ref" yaml:"ref"`
	Valid bool   `json:"valid" yaml:"valid"`
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Validate checks every reference and prints one line (or record) per problem.
// It returns the number of invalid problems.
func Validate(ctx context.Context, src ports.ProblemSource, printer *Printer, refs []string) (int, error) {
	var (
		results []ValidationResult
		invalid int
	)
	for _, ref := range refs {
		r := ValidationResult{Ref: ref, Valid: true}
		doc, err := ResolveProblem(ctx, src, ref)
		if err == nil {
			err = doc.Validate()
		}
		if err != nil {
			r.Valid = false
			r.Error = strings.TrimSpace(err.Error())
			invalid++
		}
		results = append(results, r)
	}

	if printer.Format != FormatText {
		return invalid, printer.Structured(results)
	}
	for _, r := range results {
		if r.Valid {
			fmt.Fprintf(printer.Out, "ok      %s\n", r.Ref)
			continue
		}
		fmt.Fprintf(printer.Out, "invalid %s: %s\n", r.Ref, r.Error)
	}
	return invalid, nil
}
