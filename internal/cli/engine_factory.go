package cli

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/reattach"
	"github.com/aretw0/reattach/internal/config"
	"github.com/aretw0/reattach/pkg/adapters/file"
	"github.com/aretw0/reattach/pkg/adapters/memory"
	"github.com/aretw0/reattach/pkg/adapters/redis"
	"github.com/aretw0/reattach/pkg/adapters/sqlite"
	"github.com/aretw0/reattach/pkg/domain"
	"github.com/aretw0/reattach/pkg/persistence/middleware"
	"github.com/aretw0/reattach/pkg/ports"
)

// LockPrefix namespaces distributed run locks in Redis.
const LockPrefix = "reattach:"

// Backends are the report store and locker selected by configuration.
type Backends struct {
	Store  ports.ReportStore
	Locker ports.DistributedLocker
	closer func() error
}

// Close releases the connections held by the backends.
func (b *Backends) Close() error {
	if b == nil || b.closer == nil {
		return nil
	}
	return b.closer()
}

// OpenBackends initializes the report store for cfg.Driver and wraps it with
// the configured redaction and encryption.
// The redis driver also provides a distributed locker sharing the store's client.
func OpenBackends(ctx context.Context, cfg config.StoreConfig, logger *slog.Logger) (*Backends, error) {
	b, err := openBackends(ctx, cfg, logger)
	if err != nil || b.Store == nil {
		return b, err
	}
	mws, err := storeMiddleware(cfg)
	if err != nil {
		_ = b.Close()
		return nil, err
	}
	b.Store = middleware.Chain(b.Store, mws...)
	return b, nil
}

// storeMiddleware masks before it seals, so redaction sees plain text.
func storeMiddleware(cfg config.StoreConfig) ([]middleware.Middleware, error) {
	var mws []middleware.Middleware
	if len(cfg.Redact) > 0 {
		pii, err := middleware.NewPIIMiddleware(cfg.Redact)
		if err != nil {
			return nil, fmt.Errorf("invalid redact pattern: %w", err)
		}
		mws = append(mws, pii)
	}
	if cfg.EncryptionKey != "" {
		enc := middleware.EncryptionConfig{}
		var err error
		if enc.ActiveKey, err = base64.StdEncoding.DecodeString(cfg.EncryptionKey); err != nil {
			return nil, fmt.Errorf("invalid encryption key: %w", err)
		}
		for _, k := range cfg.FallbackKeys {
			key, err := base64.StdEncoding.DecodeString(k)
			if err != nil {
				return nil, fmt.Errorf("invalid fallback key: %w", err)
			}
			enc.FallbackKeys = append(enc.FallbackKeys, key)
		}
		if err := enc.Validate(); err != nil {
			return nil, err
		}
		mws = append(mws, middleware.NewEncryptionMiddleware(enc))
	}
	return mws, nil
}

func openBackends(ctx context.Context, cfg config.StoreConfig, logger *slog.Logger) (*Backends, error) {
	switch cfg.Driver {
	case "", "none":
		return &Backends{}, nil
	case "memory":
		return &Backends{Store: memory.NewStore()}, nil
	case "file":
		return &Backends{Store: file.NewStore(cfg.Path)}, nil
	case "redis":
		store := redis.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, redis.WithTTL(cfg.TTL))
		if err := store.Client().Ping(ctx).Err(); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.RedisAddr, err)
		}
		return &Backends{
			Store:  store,
			Locker: redis.NewLocker(store.Client(), LockPrefix),
			closer: store.Close,
		}, nil
	case "sqlite":
		store, err := sqlite.Open(cfg.Path)
		if err != nil {
			return nil, err
		}
		if cfg.TTL > 0 {
			n, err := store.Prune(ctx, time.Now().Add(-cfg.TTL))
			if err != nil {
				_ = store.Close()
				return nil, err
			}
			logger.Debug("Pruned expired reports", "count", n)
		}
		return &Backends{Store: store, closer: store.Close}, nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
}

// createEngine initializes a reattach engine with standard CLI conventions.
func createEngine(cfg *config.Config, backends *Backends, logger *slog.Logger, hooks domain.LifecycleHooks) *reattach.Engine {
	opts := []reattach.Option{
		reattach.WithLogger(logger),
		reattach.WithLifecycleHooks(hooks),
		reattach.WithFontTimeout(cfg.FontTimeout),
		reattach.WithLockTTL(cfg.Lock.TTL),
	}
	if backends != nil && backends.Store != nil {
		opts = append(opts, reattach.WithReportStore(backends.Store))
	}
	if backends != nil && backends.Locker != nil {
		opts = append(opts, reattach.WithLocker(backends.Locker))
	}
	return reattach.New(opts...)
}

// resolveMode picks the run mode: an explicit flag wins over configuration.
func resolveMode(flag string, copyOverrides bool, cfg *config.Config) (domain.Mode, error) {
	switch {
	case copyOverrides:
		return domain.ModeCopyOverrides, nil
	case flag != "":
		return domain.ParseMode(flag)
	case cfg.Mode != "":
		return domain.ParseMode(cfg.Mode)
	}
	return domain.ModeReattach, nil
}

// ErrNoStore is returned by report commands when no store is configured.
var ErrNoStore = errors.New("no report store configured (set store.driver)")
