package runtime

import (
	"context"
	"time"

	"github.com/aretw0/goalstack/pkg/domain"
)

func (e *Engine) emitStep(ctx context.Context, rec domain.StepRecord) {
	if e.hooks.OnStep == nil {
		return
	}
	e.hooks.OnStep(ctx, &domain.StepEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventStep},
		Record:    rec,
	})
}

func (e *Engine) emitCommit(ctx context.Context, op domain.Operator, snapshot domain.Conditions) {
	if e.hooks.OnCommit == nil {
		return
	}
	e.hooks.OnCommit(ctx, &domain.CommitEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventCommit},
		Operator:  op,
		Position:  len(e.history),
		Snapshot:  snapshot.Clone(),
	})
}

func (e *Engine) emitComplete(ctx context.Context) {
	if e.hooks.OnComplete == nil {
		return
	}
	e.hooks.OnComplete(ctx, &domain.CompleteEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventComplete},
		Steps:     e.steps,
		PlanSize:  len(e.history),
	})
}
