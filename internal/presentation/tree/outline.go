package tree

import (
	"fmt"
	"slices"
	"strings"

	"github.com/aretw0/reattach/pkg/domain"
)

// Outline renders the tree under root as a nested Markdown list.
// Selected nodes are marked in bold, templates in italics.
func Outline(root *domain.Node, overlay *Overlay) string {
	var sb strings.Builder
	writeOutline(&sb, root, 0, overlay)
	return sb.String()
}

func writeOutline(sb *strings.Builder, n *domain.Node, depth int, overlay *Overlay) {
	if n == nil {
		return
	}
	name := n.Name
	if name == "" {
		name = n.ID
	}
	item := fmt.Sprintf("%s `%s` (%s)", name, n.Category, n.ID)
	if overlay != nil {
		switch {
		case slices.Contains(overlay.Selected, n.ID):
			item = "**" + item + "** (selected)"
		case slices.Contains(overlay.Templates, n.ID):
			item = "_" + item + "_ (template)"
		}
	}
	if f := n.Font(); f != nil {
		item += " · " + f.String()
	}
	fmt.Fprintf(sb, "%s- %s\n", strings.Repeat("  ", depth), item)

	for _, c := range n.Children {
		writeOutline(sb, c, depth+1, overlay)
	}
}
