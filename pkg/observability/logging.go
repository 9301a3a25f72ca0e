package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/reattach/pkg/domain"
)

// LogHooks returns lifecycle hooks that write each event to logger.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnRunStart: func(ctx context.Context, e *domain.RunEvent) {
			logger.InfoContext(ctx, "run_start",
				"run_id", e.RunID,
				"document_id", e.DocumentID,
				"mode", e.Mode,
				"selected", e.Selected,
			)
		},
		OnRunFinish: func(ctx context.Context, e *domain.RunEvent) {
			attrs := []any{"run_id", e.RunID, "document_id", e.DocumentID}
			if e.Report != nil {
				attrs = append(attrs, "message", e.Report.Message)
			}
			logger.InfoContext(ctx, "run_finish", attrs...)
		},
		OnItem: func(ctx context.Context, e *domain.ItemEvent) {
			logger.DebugContext(ctx, "item",
				"run_id", e.RunID,
				"node_id", e.Item.NodeID,
				"outcome", e.Item.Outcome,
			)
		},
		OnFontLoad: func(ctx context.Context, e *domain.FontEvent) {
			if e.Err != nil {
				logger.WarnContext(ctx, "font_load", "run_id", e.RunID, "font", e.Font.String(), "err", e.Err)
				return
			}
			logger.DebugContext(ctx, "font_load", "run_id", e.RunID, "font", e.Font.String(), "duration", e.Duration)
		},
	}
}
