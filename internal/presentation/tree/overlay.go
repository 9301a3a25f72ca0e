package tree

import "github.com/aretw0/reattach/pkg/domain"

// NewOverlay marks the selection of doc and, per selected frame, the
// instance a run would resolve as its template.
func NewOverlay(doc *domain.Document) *Overlay {
	return &Overlay{
		Selected:  doc.Selection,
		Templates: templatesFor(doc),
	}
}

// templatesFor returns, per selected frame, the first instance that shares its name.
func templatesFor(doc *domain.Document) []string {
	selected := make(map[string]bool, len(doc.Selection))
	for _, id := range doc.Selection {
		selected[id] = true
	}

	var names []string
	domain.Walk(doc.Root, func(n *domain.Node) bool {
		if selected[n.ID] && n.IsFrame() {
			names = append(names, n.Name)
		}
		return true
	})

	var ids []string
	for _, name := range names {
		match := domain.IsTemplateNamed(name)
		domain.Walk(doc.Root, func(n *domain.Node) bool {
			if match(n) {
				ids = append(ids, n.ID)
				return false
			}
			return true
		})
	}
	return ids
}
