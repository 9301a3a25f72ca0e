package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/aretw0/reattach/pkg/domain"
	"github.com/google/uuid"
	"github.com/mohae/deepcopy"
)

// Document implements ports.Host over an in-memory node tree.
//
// The engine drives one run at a time; the mutex only guards against readers
// (tree inspection, snapshots) racing with a run.
type Document struct {
	*FontCatalog

	mu        sync.RWMutex
	doc       *domain.Document
	parents   map[*domain.Node]*domain.Node
	selection []string
	result    string
}

// NewDocument validates doc and serves it as a host.
// The document is mutated in place by reattach runs.
func NewDocument(doc *domain.Document) (*Document, error) {
	if doc == nil || doc.Root == nil {
		return nil, fmt.Errorf("%w: document has no root", domain.ErrInvalidNode)
	}
	if err := doc.Root.Validate(); err != nil {
		return nil, err
	}

	d := &Document{
		FontCatalog: NewFontCatalog(doc.AvailableFonts),
		doc:         doc,
		parents:     make(map[*domain.Node]*domain.Node),
		selection:   slices.Clone(doc.Selection),
	}
	d.index(doc.Root)
	return d, nil
}

// index records parent links for n's descendants.
func (d *Document) index(n *domain.Node) {
	for _, child := range n.Children {
		d.parents[child] = n
		d.index(child)
	}
}

// unindex forgets n and its descendants.
func (d *Document) unindex(n *domain.Node) {
	delete(d.parents, n)
	for _, child := range n.Children {
		d.unindex(child)
	}
}

// Select replaces the current selection with ids.
func (d *Document) Select(ids ...string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.selection = slices.Clone(ids)
}

// SelectWhere replaces the current selection with every node matching pred,
// in pre-order. It returns the number of selected nodes.
func (d *Document) SelectWhere(pred domain.Predicate) int {
	d.mu.Lock()
	defer d.mu.Unlock()

	var ids []string
	domain.Walk(d.doc.Root, func(n *domain.Node) bool {
		if pred(n) {
			ids = append(ids, n.ID)
		}
		return true
	})
	d.selection = ids
	return len(ids)
}

// Snapshot returns the document with its current tree and selection.
// The returned value shares no storage with the host.
func (d *Document) Snapshot() *domain.Document {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := deepcopy.Copy(d.doc).(*domain.Document)
	out.Selection = slices.Clone(d.selection)
	return out
}

// Result returns the message passed to Close, if any.
func (d *Document) Result() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.result
}

// DocumentID implements ports.Host.
func (d *Document) DocumentID() string {
	return d.doc.ID
}

// Selection implements ports.Host. Selected IDs that no longer exist are
// reported as ErrNodeNotFound.
func (d *Document) Selection(ctx context.Context) ([]*domain.Node, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	byID := make(map[string]*domain.Node)
	domain.Walk(d.doc.Root, func(n *domain.Node) bool {
		if _, seen := byID[n.ID]; !seen {
			byID[n.ID] = n
		}
		return true
	})

	out := make([]*domain.Node, 0, len(d.selection))
	for _, id := range d.selection {
		n, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("selection %q: %w", id, domain.ErrNodeNotFound)
		}
		out = append(out, n)
	}
	return out, nil
}

// FindNode implements ports.Host with a depth-first pre-order search.
func (d *Document) FindNode(ctx context.Context, pred domain.Predicate) (*domain.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	var found *domain.Node
	domain.Walk(d.doc.Root, func(n *domain.Node) bool {
		if pred(n) {
			found = n
			return false
		}
		return true
	})
	return found, nil
}

// CreateInstance implements ports.Host. The clone gets fresh IDs throughout
// and is not attached to the tree.
func (d *Document) CreateInstance(ctx context.Context, template *domain.Node) (*domain.Node, error) {
	if template == nil {
		return nil, fmt.Errorf("create instance: %w", domain.ErrNodeNotFound)
	}

	d.mu.RLock()
	inst, ok := deepcopy.Copy(template).(*domain.Node)
	d.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("create instance of %q: %w", template.Name, domain.ErrClone)
	}

	inst.Category = domain.CategoryInstance
	domain.Walk(inst, func(n *domain.Node) bool {
		n.ID = uuid.NewString()
		return true
	})
	return inst, nil
}

// Parent implements ports.Host.
func (d *Document) Parent(ctx context.Context, node *domain.Node) (*domain.Node, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	parent, ok := d.parents[node]
	if !ok {
		return nil, fmt.Errorf("parent of %q: %w", node.ID, domain.ErrNodeNotFound)
	}
	return parent, nil
}

// AppendChild implements ports.Host.
func (d *Document) AppendChild(ctx context.Context, parent, child *domain.Node) error {
	if !parent.Category.IsContainer() {
		return fmt.Errorf("%w: %s %q cannot hold children", domain.ErrInvalidNode, parent.Category, parent.ID)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, attached := d.parents[parent]; !attached && parent != d.doc.Root {
		return fmt.Errorf("append to %q: %w", parent.ID, domain.ErrNodeNotFound)
	}
	parent.Children = append(parent.Children, child)
	d.parents[child] = parent
	d.index(child)
	return nil
}

// Remove implements ports.Host.
func (d *Document) Remove(ctx context.Context, node *domain.Node) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	parent, ok := d.parents[node]
	if !ok {
		return fmt.Errorf("remove %q: %w", node.ID, domain.ErrNodeNotFound)
	}
	parent.Children = slices.DeleteFunc(parent.Children, func(c *domain.Node) bool { return c == node })
	d.unindex(node)
	return nil
}

// SetPosition implements ports.Host.
func (d *Document) SetPosition(ctx context.Context, node *domain.Node, x, y float64) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	node.X, node.Y = x, y
	return nil
}

// Resize implements ports.Host.
func (d *Document) Resize(ctx context.Context, node *domain.Node, width, height float64) error {
	if width < 0 || height < 0 {
		return fmt.Errorf("%w: negative size %gx%g", domain.ErrInvalidNode, width, height)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	node.Width, node.Height = width, height
	return nil
}

// Close implements ports.ResultReporter.
func (d *Document) Close(ctx context.Context, message string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.result = message
	return nil
}
