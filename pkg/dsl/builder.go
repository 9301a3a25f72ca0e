package dsl

import (
	"fmt"

	"github.com/aretw0/reattach/pkg/domain"
)

// Builder manages the document construction.
type Builder struct {
	doc domain.Document
}

// New creates a new document builder.
func New(id string) *Builder {
	return &Builder{doc: domain.Document{ID: id, Name: id}}
}

// Root sets the document root node.
func (b *Builder) Root(root *NodeBuilder) *Builder {
	b.doc.Root = root.Build()
	return b
}

// Select appends node IDs to the stored selection.
func (b *Builder) Select(ids ...string) *Builder {
	b.doc.Selection = append(b.doc.Selection, ids...)
	return b
}

// Fonts restricts the fonts the document can load.
func (b *Builder) Fonts(fonts ...domain.FontName) *Builder {
	if b.doc.AvailableFonts == nil {
		b.doc.AvailableFonts = []domain.FontName{}
	}
	b.doc.AvailableFonts = append(b.doc.AvailableFonts, fonts...)
	return b
}

// Build validates and returns the document.
func (b *Builder) Build() (*domain.Document, error) {
	if b.doc.Root == nil {
		return nil, fmt.Errorf("document %s has no root", b.doc.ID)
	}
	if err := b.doc.Root.Validate(); err != nil {
		return nil, fmt.Errorf("failed to build document %s: %w", b.doc.ID, err)
	}
	doc := b.doc
	return &doc, nil
}
