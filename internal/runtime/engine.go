package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/reattach/internal/logging"
	"github.com/aretw0/reattach/pkg/domain"
	"github.com/aretw0/reattach/pkg/fonts"
	"github.com/aretw0/reattach/pkg/ports"
	"github.com/google/uuid"
)

// Engine swaps detached frames for fresh template instances.
type Engine struct {
	logger      *slog.Logger
	hooks       domain.LifecycleHooks
	fontTimeout time.Duration
	now         func() time.Time
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithLifecycleHooks registers observability callbacks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithFontTimeout bounds each font load request. Zero waits forever.
func WithFontTimeout(d time.Duration) EngineOption {
	return func(e *Engine) {
		e.fontTimeout = d
	}
}

// WithClock overrides the time source used for report timestamps.
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) {
		e.now = now
	}
}

// NewEngine creates an Engine.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		logger: logging.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Reattach processes the host's current selection in order.
//
// Each item is independent: a missing template, a host failure or a failed
// override copy is recorded on the report and the run moves on. An error is
// returned only when the selection itself cannot be read.
func (e *Engine) Reattach(ctx context.Context, host ports.Host, mode domain.Mode) (*domain.Report, error) {
	if mode != domain.ModeReattach && mode != domain.ModeCopyOverrides {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownMode, mode)
	}

	selection, err := host.Selection(ctx)
	if err != nil {
		return nil, fmt.Errorf("read selection: %w", err)
	}

	report := &domain.Report{
		ID:         uuid.NewString(),
		DocumentID: host.DocumentID(),
		Mode:       mode,
		StartedAt:  e.now(),
		Items:      []domain.ItemResult{},
	}
	logger := e.logger.With("run_id", report.ID, "document_id", report.DocumentID)

	if e.hooks.OnRunStart != nil {
		e.hooks.OnRunStart(ctx, &domain.RunEvent{
			EventBase:  domain.EventBase{Timestamp: report.StartedAt, Type: domain.EventRunStart, RunID: report.ID},
			DocumentID: report.DocumentID,
			Mode:       mode,
			Selected:   len(selection),
		})
	}

	if len(selection) == 0 {
		report.Message = domain.MessageEmptySelection
	} else {
		r := &run{
			host:      host,
			mode:      mode,
			logger:    logger,
			templates: newTemplateCache(host),
			preloader: fonts.NewPreloader(host,
				fonts.WithTimeout(e.fontTimeout),
				fonts.WithLifecycleHooks(e.hooks),
				fonts.WithLogger(logger),
				fonts.WithRunID(report.ID),
			),
		}
		for _, node := range selection {
			item := r.process(ctx, node)
			report.Record(item)
			logger.Debug("item processed", "node_id", item.NodeID, "node_name", item.NodeName, "outcome", item.Outcome)
			if e.hooks.OnItem != nil {
				e.hooks.OnItem(ctx, &domain.ItemEvent{
					EventBase: domain.EventBase{Timestamp: e.now(), Type: domain.EventItem, RunID: report.ID},
					Item:      item,
				})
			}
		}
		report.Message = report.Summary()
	}

	report.FinishedAt = e.now()
	logger.Info("reattach finished", "mode", mode, "processed", report.Processed, "skipped", report.Skipped, "failed", report.Failed)

	if e.hooks.OnRunFinish != nil {
		e.hooks.OnRunFinish(ctx, &domain.RunEvent{
			EventBase:  domain.EventBase{Timestamp: report.FinishedAt, Type: domain.EventRunFinish, RunID: report.ID},
			DocumentID: report.DocumentID,
			Mode:       mode,
			Selected:   len(selection),
			Report:     report,
		})
	}
	return report, nil
}
