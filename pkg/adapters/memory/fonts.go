package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/aretw0/reattach/pkg/domain"
)

// FontCatalog implements ports.FontLoader over a fixed set of fonts.
// Safe for concurrent use.
type FontCatalog struct {
	mu        sync.Mutex
	available map[domain.FontName]bool // nil means every font is available
	loads     map[domain.FontName]int
}

// NewFontCatalog creates a catalog. A nil list makes every font loadable;
// an empty non-nil list makes none loadable.
func NewFontCatalog(available []domain.FontName) *FontCatalog {
	c := &FontCatalog{loads: make(map[domain.FontName]int)}
	if available != nil {
		c.available = make(map[domain.FontName]bool, len(available))
		for _, f := range available {
			c.available[f] = true
		}
	}
	return c
}

// LoadFont marks font as loaded. Loading an already loaded font succeeds.
func (c *FontCatalog) LoadFont(ctx context.Context, font domain.FontName) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.loads[font]++
	if c.available != nil && !c.available[font] {
		return fmt.Errorf("%w: %s", domain.ErrFontUnavailable, font)
	}
	return nil
}

// Loads returns how many times font was requested.
func (c *FontCatalog) Loads(font domain.FontName) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loads[font]
}
