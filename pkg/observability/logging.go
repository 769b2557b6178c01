package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/goalstack/pkg/domain"
)

// LoggingHooks logs commits and completions at Info and steps at Debug.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStep: func(ctx context.Context, e *domain.StepEvent) {
			logger.DebugContext(ctx, "step",
				"index", e.Record.Index,
				"rule", e.Record.Rule.String(),
				"current", e.Record.Current.String(),
			)
		},
		OnCommit: func(ctx context.Context, e *domain.CommitEvent) {
			logger.InfoContext(ctx, "operator",
				"position", e.Position,
				"operator", e.Operator.String(),
			)
		},
		OnComplete: func(ctx context.Context, e *domain.CompleteEvent) {
			logger.InfoContext(ctx, "plan complete",
				"steps", e.Steps,
				"operators", e.PlanSize,
			)
		},
	}
}
