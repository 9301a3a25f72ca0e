package domain

import (
	"fmt"
	"iter"
)

// Category is the variant tag of a Node.
type Category string

const (
	// CategoryPage is the top-level container of a document.
	CategoryPage Category = "PAGE"
	// CategoryFrame is a free-standing container. Only frames are eligible for reattachment.
	CategoryFrame Category = "FRAME"
	// CategoryGroup is a lightweight container.
	CategoryGroup Category = "GROUP"
	// CategoryComponent is a template definition.
	CategoryComponent Category = "COMPONENT"
	// CategoryInstance is a node created from a template.
	CategoryInstance Category = "INSTANCE"

	// CategoryText is a leaf holding characters and typography.
	CategoryText Category = "TEXT"

	// Shape leaves. They carry appearance but no children and no text.
	CategoryRectangle Category = "RECTANGLE"
	CategoryEllipse   Category = "ELLIPSE"
	CategoryVector    Category = "VECTOR"
)

// IsContainer reports whether nodes of this category own children.
func (c Category) IsContainer() bool {
	switch c {
	case CategoryPage, CategoryFrame, CategoryGroup, CategoryComponent, CategoryInstance:
		return true
	}
	return false
}

// Known reports whether c is one of the categories above.
func (c Category) Known() bool {
	switch c {
	case CategoryText, CategoryRectangle, CategoryEllipse, CategoryVector:
		return true
	}
	return c.IsContainer()
}

// Node is an entity in a design-document tree.
//
// Fields valid for every category live on the node itself and in the embedded
// Appearance. Children is only meaningful on containers and Text only on text
// nodes; Validate enforces both.
type Node struct {
	ID       string   `json:"id" yaml:"id"`
	Category Category `json:"type" yaml:"type"`
	Name     string   `json:"name" yaml:"name"`

	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`

	Appearance `yaml:",inline"`

	// Children is the ordered child list of a container.
	Children []*Node `json:"children,omitempty" yaml:"children,omitempty"`

	// Text holds characters and typography of a text node.
	Text *TextProps `json:"text,omitempty" yaml:"text,omitempty"`
}

// IsFrame reports whether the node is a frame.
func (n *Node) IsFrame() bool {
	return n != nil && n.Category == CategoryFrame
}

// IsText reports whether the node is a text node.
func (n *Node) IsText() bool {
	return n != nil && n.Category == CategoryText
}

// HasChildren reports whether the node owns at least one child.
func (n *Node) HasChildren() bool {
	return n != nil && len(n.Children) > 0
}

// Font returns the font of a text node, or nil.
func (n *Node) Font() *FontName {
	if n == nil || n.Text == nil {
		return nil
	}
	return n.Text.Style.FontName
}

// Validate checks that the subtree only uses fields valid for each node's category.
func (n *Node) Validate() error {
	if n == nil {
		return fmt.Errorf("%w: nil node", ErrInvalidNode)
	}
	if n.ID == "" {
		return fmt.Errorf("%w: node %q has no id", ErrInvalidNode, n.Name)
	}
	if !n.Category.Known() {
		return fmt.Errorf("%w: node %s has unknown type %q", ErrInvalidNode, n.ID, n.Category)
	}
	if len(n.Children) > 0 && !n.Category.IsContainer() {
		return fmt.Errorf("%w: %s node %s cannot have children", ErrInvalidNode, n.Category, n.ID)
	}
	if n.Text != nil && n.Category != CategoryText {
		return fmt.Errorf("%w: %s node %s cannot carry text", ErrInvalidNode, n.Category, n.ID)
	}
	for i, child := range n.Children {
		if child == nil {
			return fmt.Errorf("%w: node %s has nil child at %d", ErrInvalidNode, n.ID, i)
		}
		if err := child.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Walk visits the subtree rooted at n in depth-first pre-order.
// Returning false from fn stops the walk.
func Walk(n *Node, fn func(*Node) bool) bool {
	if n == nil {
		return true
	}
	if !fn(n) {
		return false
	}
	for _, child := range n.Children {
		if !Walk(child, fn) {
			return false
		}
	}
	return true
}

// ZipChildren pairs the children of src and dst by position.
//
// Pairing stops at the end of the shorter child list: extra children on either
// side are never yielded. Positions where either side holds a nil entry are
// skipped. This is the structural contract the override copier relies on; it
// assumes dst was cloned from a template sharing src's shape.
func ZipChildren(src, dst *Node) iter.Seq2[*Node, *Node] {
	return func(yield func(*Node, *Node) bool) {
		if src == nil || dst == nil {
			return
		}
		n := min(len(src.Children), len(dst.Children))
		for i := range n {
			s, d := src.Children[i], dst.Children[i]
			if s == nil || d == nil {
				continue
			}
			if !yield(s, d) {
				return
			}
		}
	}
}

// Predicate selects nodes during a document lookup.
type Predicate func(*Node) bool

// IsTemplateNamed matches instance nodes carrying the given name.
func IsTemplateNamed(name string) Predicate {
	return func(n *Node) bool {
		return n.Category == CategoryInstance && n.Name == name
	}
}

// CopyDirection pairs the source and destination of one override copy step.
type CopyDirection struct {
	Source      *Node
	Destination *Node
}

// BothText reports whether both ends are text nodes.
func (d CopyDirection) BothText() bool {
	return d.Source.IsText() && d.Destination.IsText()
}
