package reattach

import (
	"context"
	"log/slog"
	"time"

	"github.com/aretw0/reattach/internal/logging"
	"github.com/aretw0/reattach/internal/runtime"
	"github.com/aretw0/reattach/pkg/domain"
	"github.com/aretw0/reattach/pkg/ports"
	"github.com/aretw0/reattach/pkg/session"
)

// Engine is the high-level entry point for the reattach library.
// It wraps the internal runtime with per-document locking and report persistence.
type Engine struct {
	runtime     *runtime.Engine
	guard       *session.Guard
	store       ports.ReportStore
	locker      ports.DistributedLocker
	hooks       domain.LifecycleHooks
	logger      *slog.Logger
	fontTimeout time.Duration
	lockTTL     time.Duration
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithReportStore persists every run report.
func WithReportStore(store ports.ReportStore) Option {
	return func(e *Engine) {
		e.store = store
	}
}

// WithLocker serialises runs on the same document across processes.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(e *Engine) {
		e.locker = locker
	}
}

// WithFontTimeout bounds each font load request.
func WithFontTimeout(d time.Duration) Option {
	return func(e *Engine) {
		e.fontTimeout = d
	}
}

// WithLockTTL sets how long a distributed lock outlives a crashed holder.
func WithLockTTL(d time.Duration) Option {
	return func(e *Engine) {
		e.lockTTL = d
	}
}

// New initializes a new Engine.
func New(opts ...Option) *Engine {
	eng := &Engine{}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}

	eng.runtime = runtime.NewEngine(
		runtime.WithLogger(eng.logger),
		runtime.WithLifecycleHooks(eng.hooks),
		runtime.WithFontTimeout(eng.fontTimeout),
	)

	guardOpts := []session.Option{session.WithLogger(eng.logger), session.WithTTL(eng.lockTTL)}
	if eng.locker != nil {
		guardOpts = append(guardOpts, session.WithLocker(eng.locker))
	}
	eng.guard = session.NewGuard(guardOpts...)
	return eng
}

// Run reattaches the host's current selection.
//
// Runs on the same document are serialised. The report is saved when a
// store is configured; a failing store is logged and does not fail the run.
// Hosts implementing ports.ResultReporter receive the report message.
func (e *Engine) Run(ctx context.Context, host ports.Host, mode domain.Mode) (*domain.Report, error) {
	var report *domain.Report
	err := e.guard.WithLock(ctx, host.DocumentID(), func(ctx context.Context) error {
		var err error
		report, err = e.runtime.Reattach(ctx, host, mode)
		return err
	})
	if err != nil {
		return nil, err
	}

	if e.store != nil {
		if err := e.store.Save(ctx, report); err != nil {
			e.logger.Warn("Failed to save report", "report_id", report.ID, "err", err)
		}
	}

	if reporter, ok := host.(ports.ResultReporter); ok {
		if err := reporter.Close(ctx, report.Message); err != nil {
			e.logger.Warn("Failed to deliver result to host", "report_id", report.ID, "err", err)
		}
	}
	return report, nil
}

// Report loads a stored report.
func (e *Engine) Report(ctx context.Context, id string) (*domain.Report, error) {
	if e.store == nil {
		return nil, domain.ErrReportNotFound
	}
	return e.store.Load(ctx, id)
}

// Reports lists stored report IDs.
func (e *Engine) Reports(ctx context.Context) ([]string, error) {
	if e.store == nil {
		return nil, nil
	}
	return e.store.List(ctx)
}
