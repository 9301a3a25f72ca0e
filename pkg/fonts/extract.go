package fonts

import "github.com/aretw0/reattach/pkg/domain"

// Extract returns the font of every text node under root, in depth-first
// pre-order. The list is not deduplicated.
func Extract(root *domain.Node) []domain.FontName {
	var out []domain.FontName
	domain.Walk(root, func(n *domain.Node) bool {
		if f := n.Font(); n.IsText() && f != nil {
			out = append(out, *f)
		}
		return true
	})
	return out
}
