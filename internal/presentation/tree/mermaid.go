// Package tree renders design-document trees for humans: Mermaid diagrams
// for docs and browsers, and an indented outline for terminals.
package tree

import (
	"fmt"
	"strings"

	"github.com/aretw0/reattach/pkg/domain"
)

// Overlay contains run data to visualize on the tree.
type Overlay struct {
	Selected  []string // node IDs in the selection
	Templates []string // node IDs that resolve as templates
}

// GenerateMermaid produces a Mermaid flowchart of the tree under root.
// It applies semantic styling:
// - Page: ((Circle))
// - Frame: [Rectangle]
// - Instance and Component: ([Stadium])
// - Group: {{Hexagon}}
// - Text: [/Parallelogram/]
// - Shapes: [(Cylinder)]
// It also applies overlay styles (Selected/Template) if provided.
func GenerateMermaid(root *domain.Node, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	ids := newIDSet()
	domain.Walk(root, func(n *domain.Node) bool {
		safeID := ids.get(n)

		opener, closer := shape(n.Category)
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", safeID, opener, label(n), closer)

		for _, c := range n.Children {
			if c != nil {
				fmt.Fprintf(&sb, "    %s --> %s\n", safeID, ids.get(c))
			}
		}
		return true
	})

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef selected fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")
		sb.WriteString("    classDef template fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")

		writeClass(&sb, ids, overlay.Templates, "template")
		writeClass(&sb, ids, overlay.Selected, "selected")
	}

	return sb.String()
}

func writeClass(sb *strings.Builder, ids *idSet, nodeIDs []string, class string) {
	seen := make(map[string]bool)
	for _, id := range nodeIDs {
		safeID, ok := ids.byNodeID[id]
		if !ok || seen[safeID] {
			continue
		}
		seen[safeID] = true
		fmt.Fprintf(sb, "    class %s %s;\n", safeID, class)
	}
}

func shape(c domain.Category) (string, string) {
	switch c {
	case domain.CategoryPage:
		return "((", "))"
	case domain.CategoryInstance, domain.CategoryComponent:
		return "([", "])"
	case domain.CategoryGroup:
		return "{{", "}}"
	case domain.CategoryText:
		return "[/", "/]"
	case domain.CategoryRectangle, domain.CategoryEllipse, domain.CategoryVector:
		return "[(", ")]"
	}
	return "[", "]"
}

func label(n *domain.Node) string {
	name := n.Name
	if name == "" {
		name = n.ID
	}
	out := fmt.Sprintf("%s <br/> %s", escape(name), n.Category)
	if n.IsText() && n.Text.Characters != "" {
		out += " <br/> " + escape(truncate(n.Text.Characters, 24))
	}
	return out
}

func escape(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}

// idSet hands out Mermaid-safe IDs. Node IDs that collide after sanitizing,
// or repeat, get a numeric suffix.
type idSet struct {
	byNode   map[*domain.Node]string
	byNodeID map[string]string
	used     map[string]int
}

func newIDSet() *idSet {
	return &idSet{
		byNode:   make(map[*domain.Node]string),
		byNodeID: make(map[string]string),
		used:     make(map[string]int),
	}
}

func (s *idSet) get(n *domain.Node) string {
	if id, ok := s.byNode[n]; ok {
		return id
	}
	id := sanitizeMermaidID(n.ID)
	if count := s.used[id]; count > 0 {
		s.used[id]++
		id = fmt.Sprintf("%s_%d", id, count)
	} else {
		s.used[id] = 1
	}
	s.byNode[n] = id
	if _, ok := s.byNodeID[n.ID]; !ok {
		s.byNodeID[n.ID] = id
	}
	return id
}

func sanitizeMermaidID(id string) string {
	if id == "" {
		return "node"
	}
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, ":", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
