package dsl

import "github.com/aretw0/reattach/pkg/domain"

// Ptr returns a pointer to v. Handy for optional scalar properties.
func Ptr[T any](v T) *T {
	return &v
}

// Solid returns an opaque solid paint.
func Solid(r, g, b float64) domain.Paint {
	return domain.Paint{Type: "SOLID", Color: &domain.Color{R: r, G: g, B: b, A: 1}}
}

// Shadow returns a visible drop shadow effect.
func Shadow(radius float64) domain.Effect {
	return domain.Effect{
		Type:    "DROP_SHADOW",
		Color:   &domain.Color{A: 0.25},
		Offset:  &domain.Vector{Y: 2},
		Radius:  radius,
		Visible: true,
	}
}

// NodeBuilder provides a fluent API for configuring a node.
type NodeBuilder struct {
	node *domain.Node
}

func newNode(category domain.Category, id, name string) *NodeBuilder {
	return &NodeBuilder{node: &domain.Node{ID: id, Category: category, Name: name}}
}

// Page starts a page (document root) node.
func Page(id string) *NodeBuilder { return newNode(domain.CategoryPage, id, id) }

// Frame starts a frame node.
func Frame(id, name string) *NodeBuilder { return newNode(domain.CategoryFrame, id, name) }

// Group starts a group node.
func Group(id, name string) *NodeBuilder { return newNode(domain.CategoryGroup, id, name) }

// Component starts a component (template definition) node.
func Component(id, name string) *NodeBuilder { return newNode(domain.CategoryComponent, id, name) }

// Instance starts an instance node.
func Instance(id, name string) *NodeBuilder { return newNode(domain.CategoryInstance, id, name) }

// Rect starts a rectangle node.
func Rect(id, name string) *NodeBuilder { return newNode(domain.CategoryRectangle, id, name) }

// Text starts a text node with empty text props.
func Text(id, name string) *NodeBuilder {
	b := newNode(domain.CategoryText, id, name)
	b.node.Text = &domain.TextProps{}
	return b
}

// At sets the position.
func (b *NodeBuilder) At(x, y float64) *NodeBuilder {
	b.node.X, b.node.Y = x, y
	return b
}

// Size sets the dimensions.
func (b *NodeBuilder) Size(w, h float64) *NodeBuilder {
	b.node.Width, b.node.Height = w, h
	return b
}

// Fill appends a fill paint.
func (b *NodeBuilder) Fill(p domain.Paint) *NodeBuilder {
	b.node.Fills = append(b.node.Fills, p)
	return b
}

// Stroke appends a stroke paint and sets the stroke weight.
func (b *NodeBuilder) Stroke(p domain.Paint, weight float64) *NodeBuilder {
	b.node.Strokes = append(b.node.Strokes, p)
	b.node.StrokeWeight = Ptr(weight)
	return b
}

// Background appends a background paint.
func (b *NodeBuilder) Background(p domain.Paint) *NodeBuilder {
	b.node.Backgrounds = append(b.node.Backgrounds, p)
	return b
}

// Opacity sets the opacity.
func (b *NodeBuilder) Opacity(v float64) *NodeBuilder {
	b.node.Opacity = Ptr(v)
	return b
}

// Effect appends an effect.
func (b *NodeBuilder) Effect(e domain.Effect) *NodeBuilder {
	b.node.Effects = append(b.node.Effects, e)
	return b
}

// EffectStyle sets the shared effect style id.
func (b *NodeBuilder) EffectStyle(id string) *NodeBuilder {
	b.node.EffectStyleID = id
	return b
}

// Children appends child nodes.
func (b *NodeBuilder) Children(kids ...*NodeBuilder) *NodeBuilder {
	for _, k := range kids {
		b.node.Children = append(b.node.Children, k.node)
	}
	return b
}

// Characters sets the text content. Only valid on text nodes.
func (b *NodeBuilder) Characters(s string) *NodeBuilder {
	b.text().Characters = s
	return b
}

// Font sets the font. Only valid on text nodes.
func (b *NodeBuilder) Font(family, style string) *NodeBuilder {
	b.text().Style.FontName = &domain.FontName{Family: family, Style: style}
	return b
}

// FontSize sets the font size. Only valid on text nodes.
func (b *NodeBuilder) FontSize(v float64) *NodeBuilder {
	b.text().Style.FontSize = Ptr(v)
	return b
}

// Align sets the horizontal alignment. Only valid on text nodes.
func (b *NodeBuilder) Align(h string) *NodeBuilder {
	b.text().Style.TextAlignHorizontal = h
	return b
}

// TextStyle sets the shared text style id. Only valid on text nodes.
func (b *NodeBuilder) TextStyle(id string) *NodeBuilder {
	b.text().Style.TextStyleID = id
	return b
}

func (b *NodeBuilder) text() *domain.TextProps {
	if b.node.Text == nil {
		b.node.Text = &domain.TextProps{}
	}
	return b.node.Text
}

// Build returns the underlying node.
func (b *NodeBuilder) Build() *domain.Node {
	return b.node
}
