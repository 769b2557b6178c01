package runtime

import (
	"context"

	"github.com/aretw0/goalstack/pkg/domain"
)

// Step performs exactly one transition of the goal-stack algorithm.
//
// The rules are tried in priority order against the top entry (current), the
// entry beneath it (next) and the latest snapshot:
//
//  1. current already holds and next is not an operator: pop it.
//  2. current is an operator: pop and commit it.
//  3. current is a conjunction, or HOLDING(x) directly above an operator: re-check it,
//     pushing back the first unmet atom or committing the operator underneath.
//  4. current is an atom: replace it with the operator that establishes it,
//     layered under its preconditions.
func (e *Engine) Step(ctx context.Context) (domain.StepRecord, error) {
	if !e.prepared {
		return domain.StepRecord{}, domain.ErrNotPrepared
	}
	if e.stack.empty() {
		return domain.StepRecord{}, domain.ErrEmptyStack
	}

	e.steps++
	current, _ := e.stack.peek(0)
	next, hasNext := e.stack.peek(1)
	snapshot := e.latest()

	rec := domain.StepRecord{Index: e.steps, Current: current.Clone()}

	switch {
	case isSatisfied(current, snapshot) && hasNext && !next.IsOperator():
		rec.Rule = domain.RuleSatisfied
		rec.Popped = append(rec.Popped, e.stack.pop())

	case current.IsOperator():
		rec.Rule = domain.RuleApply
		rec.Popped = append(rec.Popped, e.stack.pop())
		e.commit(ctx, current.Operator, &rec)

	case current.Kind == domain.EntryConjunction || isHoldingGuard(current, next, hasNext):
		rec.Rule = domain.RuleResolve
		e.resolve(ctx, snapshot, &rec)

	default:
		rec.Rule = domain.RuleExpand
		rec.Popped = append(rec.Popped, e.stack.pop())
		e.expand(current.Atom, snapshot, &rec)
	}

	rec.Done = e.stack.empty()

	e.logger.Debug("step",
		"index", rec.Index,
		"rule", rec.Rule.String(),
		"current", rec.Current.String(),
		"depth", len(e.stack),
	)
	e.emitStep(ctx, rec)
	if rec.Done {
		e.logger.Info("plan complete", "steps", e.steps, "operators", len(e.history))
		e.emitComplete(ctx)
	}

	return rec, nil
}

func isSatisfied(entry domain.Entry, snapshot domain.Conditions) bool {
	members := entry.Members()
	return members != nil && snapshot.HasAll(members)
}

func isHoldingGuard(current, next domain.Entry, hasNext bool) bool {
	return current.Kind == domain.EntryAtom &&
		current.Atom.Pred == domain.PredHolding &&
		hasNext && next.IsOperator()
}

// resolve pops a conjunction (or holding guard) and re-tests its members.
// The first unmet member goes back on top to be expanded later. When every member
// holds and an operator is now on top, that operator is committed.
func (e *Engine) resolve(ctx context.Context, snapshot domain.Conditions, rec *domain.StepRecord) {
	entry := e.stack.pop()
	rec.Popped = append(rec.Popped, entry)

	if missing, ok := snapshot.FirstMissing(entry.Members()); ok {
		pushed := domain.AtomEntry(missing)
		e.stack.push(pushed)
		rec.Pushed = append(rec.Pushed, pushed)
		return
	}

	if e.stack.empty() {
		return
	}

	if top := e.stack.top(); top.IsOperator() {
		rec.Popped = append(rec.Popped, e.stack.pop())
		e.commit(ctx, top.Operator, rec)
	}
}

// commit appends op to the history and records its successor snapshot.
// An operator equal to the last committed one is not applied twice.
func (e *Engine) commit(ctx context.Context, op domain.Operator, rec *domain.StepRecord) {
	if n := len(e.history); n > 0 && e.history[n-1] == op {
		e.logger.Debug("operator already committed", "operator", op.String())
		return
	}

	next := op.Apply(e.latest())
	e.history = append(e.history, op)
	e.trace = append(e.trace, next)

	committed := op
	rec.Committed = &committed

	e.logger.Info("operator committed", "operator", op.String(), "position", len(e.history))
	e.emitCommit(ctx, op, next)
}

// expand selects the operator that establishes an unmet atom and layers it on the
// goal stack: the operator first, then its precondition conjunction, then each
// precondition atom on top.
func (e *Engine) expand(goal domain.Atom, snapshot domain.Conditions, rec *domain.StepRecord) {
	op, ok := selectOperator(goal, snapshot)
	if !ok {
		e.logger.Warn("no operator establishes goal", "goal", goal.String())
		return
	}

	pre := op.Preconditions()
	layered := make([]domain.Entry, 0, len(pre)+2)
	layered = append(layered, domain.OperatorEntry(op), domain.ConjunctionEntry(pre))
	for _, a := range pre {
		layered = append(layered, domain.AtomEntry(a))
	}

	for _, entry := range layered {
		e.stack.push(entry)
	}
	rec.Pushed = append(rec.Pushed, layered...)
}

// selectOperator is the per-predicate operator policy.
func selectOperator(goal domain.Atom, s domain.Conditions) (domain.Operator, bool) {
	switch goal.Pred {
	case domain.PredClear:
		if on, found := s.Find(func(a domain.Atom) bool { return a.Pred == domain.PredOn && a.Y == goal.X }); found {
			return domain.Unstack(on.X, goal.X), true
		}
		return domain.Pickup(goal.X), true

	case domain.PredOn:
		// An occupied arm puts the upper block down instead of stacking it.
		if _, held := s.Held(); held {
			return domain.Putdown(goal.X), true
		}
		return domain.Stack(goal.X, goal.Y), true

	case domain.PredOnTable:
		return domain.Putdown(goal.X), true

	case domain.PredHolding:
		if s.Has(domain.OnTable(goal.X)) {
			return domain.Pickup(goal.X), true
		}
		if on, found := s.Find(func(a domain.Atom) bool { return a.Pred == domain.PredOn && a.X == goal.X }); found {
			return domain.Unstack(goal.X, on.Y), true
		}
		return domain.Putdown(goal.X), true

	case domain.PredArmEmpty:
		if held, ok := s.Held(); ok {
			return domain.Putdown(held), true
		}
	}
	return domain.Operator{}, false
}
