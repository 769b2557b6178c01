package domain

import (
	"context"
	"fmt"
	"time"
)

// Rule identifies which transition of the iteration engine fired.
type Rule int

const (
	RuleNone Rule = iota
	// RuleSatisfied pops a subgoal that already holds.
	RuleSatisfied
	// RuleApply pops and commits an operator.
	RuleApply
	// RuleResolve re-checks a conjunction (or a HOLDING guard) above an operator.
	RuleResolve
	// RuleExpand replaces an unmet atom with the operator that establishes it.
	RuleExpand
)

func (r Rule) String() string {
	switch r {
	case RuleSatisfied:
		return "satisfied"
	case RuleApply:
		return "apply"
	case RuleResolve:
		return "resolve"
	case RuleExpand:
		return "expand"
	default:
		return "none"
	}
}

// MarshalText renders the rule name in JSON and YAML.
func (r Rule) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText accepts the names produced by String.
func (r *Rule) UnmarshalText(text []byte) error {
	for _, candidate := range []Rule{RuleNone, RuleSatisfied, RuleApply, RuleResolve, RuleExpand} {
		if candidate.String() == string(text) {
			*r = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown rule %q", text)
}

// StepRecord describes what one call of the step function did.
// It exists for presentation only and has no bearing on planning.
type StepRecord struct {
	// Index is the 1-based step number since the last prepare.
	Index int `json:"index"`

	// Rule is the transition that fired.
	Rule Rule `json:"rule"`

	// Current is the entry that was on top when the step started.
	Current Entry `json:"current"`

	// Popped lists entries removed from the goal stack, in removal order.
	Popped []Entry `json:"popped,omitempty"`

	// Pushed lists entries added to the goal stack, bottom first.
	Pushed []Entry `json:"pushed,omitempty"`

	// Committed is set when an operator was appended to the history.
	Committed *Operator `json:"committed,omitempty"`

	// Done is true when the goal stack is empty after this step.
	Done bool `json:"done"`
}

// EventType defines the category of the event.
type EventType string

const (
	EventStep     EventType = "step"
	EventCommit   EventType = "commit"
	EventComplete EventType = "complete"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// StepEvent is emitted after every step.
type StepEvent struct {
	EventBase
	Record StepRecord `json:"record"`
}

// CommitEvent is emitted when an operator joins the history.
type CommitEvent struct {
	EventBase
	Operator Operator   `json:"operator"`
	Position int        `json:"position"`
	Snapshot Conditions `json:"-"`
}

// CompleteEvent is emitted once the goal stack empties.
type CompleteEvent struct {
	EventBase
	Steps    int `json:"steps"`
	PlanSize int `json:"plan_size"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnStep     func(context.Context, *StepEvent)
	OnCommit   func(context.Context, *CommitEvent)
	OnComplete func(context.Context, *CompleteEvent)
}

// Merge returns hooks that call h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnStep: func(ctx context.Context, e *StepEvent) {
			if h.OnStep != nil {
				h.OnStep(ctx, e)
			}
			if other.OnStep != nil {
				other.OnStep(ctx, e)
			}
		},
		OnCommit: func(ctx context.Context, e *CommitEvent) {
			if h.OnCommit != nil {
				h.OnCommit(ctx, e)
			}
			if other.OnCommit != nil {
				other.OnCommit(ctx, e)
			}
		},
		OnComplete: func(ctx context.Context, e *CompleteEvent) {
			if h.OnComplete != nil {
				h.OnComplete(ctx, e)
			}
			if other.OnComplete != nil {
				other.OnComplete(ctx, e)
			}
		},
	}
}
