package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/reattach/internal/logging"
	"github.com/aretw0/reattach/pkg/ports"
)

// DefaultLockTTL bounds how long a distributed lock survives a crashed holder.
const DefaultLockTTL = 30 * time.Second

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Guard grants exclusive access to a document for the duration of a run.
// It uses reference counting to garbage collect unused locks.
type Guard struct {
	mu    sync.Mutex
	locks map[string]*lockEntry

	locker ports.DistributedLocker
	ttl    time.Duration
	logger *slog.Logger
}

// Option configures the Guard.
type Option func(*Guard)

// WithLocker enables distributed locking.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(g *Guard) {
		g.locker = locker
	}
}

// WithTTL sets the distributed lock TTL.
func WithTTL(ttl time.Duration) Option {
	return func(g *Guard) {
		if ttl > 0 {
			g.ttl = ttl
		}
	}
}

// WithLogger configures a logger for the Guard.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Guard) {
		g.logger = logger
	}
}

// NewGuard creates a Guard.
func NewGuard(opts ...Option) *Guard {
	g := &Guard{
		locks:  make(map[string]*lockEntry),
		ttl:    DefaultLockTTL,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller must lock entry.mu, and call release(documentID) after unlocking.
func (g *Guard) acquire(documentID string) *lockEntry {
	g.mu.Lock()
	defer g.mu.Unlock()

	entry, exists := g.locks[documentID]
	if !exists {
		entry = &lockEntry{}
		g.locks[documentID] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it reaches zero.
func (g *Guard) release(documentID string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	entry, exists := g.locks[documentID]
	if !exists {
		return
	}

	entry.refs--
	if entry.refs <= 0 {
		delete(g.locks, documentID)
	}
}

// active returns the number of documents with a live lock entry.
func (g *Guard) active() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.locks)
}

// WithLock executes fn while holding the lock for documentID.
func (g *Guard) WithLock(ctx context.Context, documentID string, fn func(context.Context) error) error {
	entry := g.acquire(documentID)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		g.release(documentID)
	}()

	if g.locker != nil {
		unlock, err := g.locker.Lock(ctx, "reattach:doc:"+documentID, g.ttl)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			if err := unlock(context.WithoutCancel(ctx)); err != nil {
				g.logger.Warn("Failed to release distributed lock (will expire via TTL)",
					"document_id", documentID,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}
