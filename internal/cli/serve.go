package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/reattach/internal/config"
	httpAdapter "github.com/aretw0/reattach/pkg/adapters/http"
	"github.com/aretw0/reattach/pkg/adapters/mcp"
	"github.com/aretw0/reattach/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// shutdownTimeout gives outstanding requests a deadline for completion.
const shutdownTimeout = 5 * time.Second

// ServeOptions configures the serve command.
type ServeOptions struct {
	CommonOptions
	Port int // Overrides http.port when non-zero
}

// NewHTTPHandler wires the engine, the event stream and Prometheus metrics
// into the HTTP API.
func NewHTTPHandler(cfg *config.Config, backends *Backends, logger *slog.Logger) (http.Handler, error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics, err := observability.NewMetrics(reg)
	if err != nil {
		return nil, err
	}

	streams := httpAdapter.NewStreamManager(logger)
	hooks := observability.LogHooks(logger).Merge(metrics.Hooks()).Merge(streams.Hooks())
	engine := createEngine(cfg, backends, logger, hooks)

	return httpAdapter.NewHandler(engine,
		httpAdapter.WithStreams(streams),
		httpAdapter.WithLogger(logger),
		httpAdapter.WithMetricsHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})),
	)
}

// Serve starts the HTTP API and blocks until ctx is cancelled.
func Serve(ctx context.Context, opts ServeOptions) error {
	cfg, logger, err := loadConfig(opts.CommonOptions)
	if err != nil {
		return err
	}
	if opts.Port != 0 {
		cfg.HTTP.Port = opts.Port
	}

	backends, err := OpenBackends(ctx, cfg.Store, logger)
	if err != nil {
		return err
	}
	defer backends.Close()

	handler, err := NewHTTPHandler(cfg, backends, logger)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("Starting reattach server", "address", srv.Addr, "store", cfg.Store.Driver)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		logger.Info("Start shutdown")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("Graceful shutdown did not complete", "timeout", shutdownTimeout, "err", err)
			return srv.Close()
		}
		logger.Info("Server stopped gracefully")
		return nil
	}
}

// MCPOptions configures the mcp command.
type MCPOptions struct {
	CommonOptions
	Transport string // stdio (default) or sse
	Port      int
}

// ServeMCP exposes the engine as a Model Context Protocol server.
func ServeMCP(ctx context.Context, opts MCPOptions) error {
	cfg, logger, err := loadConfig(opts.CommonOptions)
	if err != nil {
		return err
	}

	backends, err := OpenBackends(ctx, cfg.Store, logger)
	if err != nil {
		return err
	}
	defer backends.Close()

	engine := createEngine(cfg, backends, logger, observability.LogHooks(logger))
	srv := mcp.NewServer(engine, logger)

	switch opts.Transport {
	case "", "stdio":
		logger.Info("Starting reattach MCP server (stdio)")
		return srv.ServeStdio()
	case "sse":
		port := opts.Port
		if port == 0 {
			port = cfg.HTTP.Port
		}
		err := srv.ServeSSE(ctx, port)
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
	return fmt.Errorf("unknown transport %q (supported: stdio, sse)", opts.Transport)
}
