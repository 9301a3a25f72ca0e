package fonts

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/reattach/internal/logging"
	"github.com/aretw0/reattach/pkg/domain"
	"github.com/aretw0/reattach/pkg/ports"
	"golang.org/x/sync/errgroup"
)

// Preloader loads every font used by a set of trees before they are mutated.
type Preloader struct {
	loader  ports.FontLoader
	timeout time.Duration
	hooks   domain.LifecycleHooks
	logger  *slog.Logger
	runID   string
}

// Option configures the Preloader.
type Option func(*Preloader)

// WithTimeout bounds each font request. Zero (the default) waits forever.
func WithTimeout(d time.Duration) Option {
	return func(p *Preloader) {
		p.timeout = d
	}
}

// WithLifecycleHooks reports each request through hooks.OnFontLoad.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(p *Preloader) {
		p.hooks = hooks
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Preloader) {
		p.logger = logger
	}
}

// WithRunID tags emitted events with a run ID.
func WithRunID(id string) Option {
	return func(p *Preloader) {
		p.runID = id
	}
}

// NewPreloader creates a Preloader backed by loader.
func NewPreloader(loader ports.FontLoader, opts ...Option) *Preloader {
	p := &Preloader{
		loader: loader,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Preload issues one load request per font found in roots, concurrently, and
// waits for all of them. The first failure cancels the remaining requests and
// is returned; nothing is retried.
func (p *Preloader) Preload(ctx context.Context, roots ...*domain.Node) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, root := range roots {
		for _, font := range Extract(root) {
			g.Go(func() error {
				return p.load(ctx, font)
			})
		}
	}
	return g.Wait()
}

func (p *Preloader) load(ctx context.Context, font domain.FontName) error {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	start := time.Now()
	err := p.loader.LoadFont(ctx, font)

	if p.hooks.OnFontLoad != nil {
		p.hooks.OnFontLoad(ctx, &domain.FontEvent{
			EventBase: domain.EventBase{Timestamp: start, Type: domain.EventFontLoad, RunID: p.runID},
			Font:      font,
			Duration:  time.Since(start),
			Err:       err,
		})
	}

	if err != nil {
		p.logger.Debug("font load failed", "font", font.String(), "err", err)
		return fmt.Errorf("load font %s: %w", font, err)
	}
	return nil
}
