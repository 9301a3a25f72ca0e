package ports

import (
	"context"

	"github.com/aretw0/reattach/pkg/domain"
)

// FontLoader makes fonts available for text mutation.
type FontLoader interface {
	// LoadFont resolves once the font can be used. It is idempotent: loading
	// the same font repeatedly is safe. Implementations must be safe for
	// concurrent use, since fonts of one item are loaded in parallel.
	LoadFont(ctx context.Context, font domain.FontName) error
}

// Host is the document-editing environment the engine drives.
//
// Nodes returned by a Host are live handles: mutating them (as the override
// copier does) mutates the document.
type Host interface {
	FontLoader

	// DocumentID identifies the document, used as the run lock key.
	DocumentID() string

	// Selection returns the nodes currently selected, in selection order.
	Selection(ctx context.Context) ([]*domain.Node, error)

	// FindNode returns the first attached node (in host order) matching the
	// predicate, or nil when none does.
	FindNode(ctx context.Context, match domain.Predicate) (*domain.Node, error)

	// CreateInstance returns a fresh, detached copy of the template with
	// independent property storage.
	CreateInstance(ctx context.Context, template *domain.Node) (*domain.Node, error)

	// Parent returns the container holding node.
	// Returns domain.ErrNodeNotFound if the node is not attached.
	Parent(ctx context.Context, node *domain.Node) (*domain.Node, error)

	// AppendChild attaches child as the last child of parent.
	AppendChild(ctx context.Context, parent, child *domain.Node) error

	// Remove detaches node from the document.
	Remove(ctx context.Context, node *domain.Node) error

	// SetPosition moves node.
	SetPosition(ctx context.Context, node *domain.Node, x, y float64) error

	// Resize sets the dimensions of node.
	Resize(ctx context.Context, node *domain.Node, width, height float64) error
}

// ResultReporter is implemented by hosts that display the final result of a
// run (e.g. closing a plugin with a toast message).
type ResultReporter interface {
	Close(ctx context.Context, message string) error
}
