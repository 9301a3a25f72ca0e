package runtime

import (
	"context"

	"github.com/aretw0/reattach/pkg/domain"
	"github.com/aretw0/reattach/pkg/ports"
)

// templateCache memoizes template lookups by name for a single run.
// A miss is cached as nil so repeated names do not search the document again.
// Lookup errors are not cached.
type templateCache struct {
	host    ports.Host
	entries map[string]*domain.Node
}

func newTemplateCache(host ports.Host) *templateCache {
	return &templateCache{host: host, entries: make(map[string]*domain.Node)}
}

// Resolve returns the first instance named name, or nil when there is none.
func (c *templateCache) Resolve(ctx context.Context, name string) (*domain.Node, error) {
	if tmpl, ok := c.entries[name]; ok {
		return tmpl, nil
	}
	tmpl, err := c.host.FindNode(ctx, domain.IsTemplateNamed(name))
	if err != nil {
		return nil, err
	}
	c.entries[name] = tmpl
	return tmpl, nil
}
