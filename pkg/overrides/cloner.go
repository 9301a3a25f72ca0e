package overrides

import (
	"fmt"

	"github.com/aretw0/reattach/pkg/domain"
	"github.com/mohae/deepcopy"
)

// field is the copy rule for one property.
type field struct {
	present func(n *domain.Node) bool
	assign  func(dst, src *domain.Node) error
}

var fields = map[domain.Property]field{
	domain.PropEffectStyleID: stringField(func(n *domain.Node) *string { return &n.EffectStyleID }),
	domain.PropEffects:       sliceField(func(n *domain.Node) *[]domain.Effect { return &n.Effects }),

	domain.PropFills:        sliceField(func(n *domain.Node) *[]domain.Paint { return &n.Fills }),
	domain.PropStrokes:      sliceField(func(n *domain.Node) *[]domain.Paint { return &n.Strokes }),
	domain.PropStrokeWeight: ptrField(func(n *domain.Node) **float64 { return &n.StrokeWeight }),
	domain.PropStrokeAlign:  stringField(func(n *domain.Node) *string { return &n.StrokeAlign }),
	domain.PropStrokeCap:    stringField(func(n *domain.Node) *string { return &n.StrokeCap }),
	domain.PropStrokeJoin:   stringField(func(n *domain.Node) *string { return &n.StrokeJoin }),
	domain.PropDashPattern:  sliceField(func(n *domain.Node) *[]float64 { return &n.DashPattern }),
	domain.PropOpacity:      ptrField(func(n *domain.Node) **float64 { return &n.Opacity }),
	domain.PropBackgrounds:  sliceField(func(n *domain.Node) *[]domain.Paint { return &n.Backgrounds }),

	domain.PropCharacters: stringField(func(n *domain.Node) *string {
		if n.Text == nil {
			return nil
		}
		return &n.Text.Characters
	}),

	domain.PropFontName:            ptrField(styleRef(func(s *domain.TextStyle) **domain.FontName { return &s.FontName })),
	domain.PropFontSize:            ptrField(styleRef(func(s *domain.TextStyle) **float64 { return &s.FontSize })),
	domain.PropTextAlignHorizontal: stringField(styleRef(func(s *domain.TextStyle) *string { return &s.TextAlignHorizontal })),
	domain.PropTextAlignVertical:   stringField(styleRef(func(s *domain.TextStyle) *string { return &s.TextAlignVertical })),
	domain.PropLetterSpacing:       ptrField(styleRef(func(s *domain.TextStyle) **domain.Measure { return &s.LetterSpacing })),
	domain.PropLineHeight:          ptrField(styleRef(func(s *domain.TextStyle) **domain.Measure { return &s.LineHeight })),
	domain.PropParagraphSpacing:    ptrField(styleRef(func(s *domain.TextStyle) **float64 { return &s.ParagraphSpacing })),
	domain.PropParagraphIndent:     ptrField(styleRef(func(s *domain.TextStyle) **float64 { return &s.ParagraphIndent })),
	domain.PropTextCase:            stringField(styleRef(func(s *domain.TextStyle) *string { return &s.TextCase })),
	domain.PropTextDecoration:      stringField(styleRef(func(s *domain.TextStyle) *string { return &s.TextDecoration })),
	domain.PropTextStyleID:         stringField(styleRef(func(s *domain.TextStyle) *string { return &s.TextStyleID })),
}

// CloneProperties deep-copies each listed property that is present on the
// source into the destination.
//
// Absent source values (nil pointers, empty slices and strings) leave the
// destination untouched. A nil source or destination makes the call a no-op.
// Text-only properties are rejected with domain.ErrPropertyScope when the
// destination is not a text node.
func CloneProperties(dir domain.CopyDirection, props ...domain.Property) error {
	src, dst := dir.Source, dir.Destination
	if src == nil || dst == nil {
		return nil
	}

	for _, p := range props {
		f, ok := fields[p]
		if !ok {
			return fmt.Errorf("%w: %q", domain.ErrUnknownProperty, p)
		}
		if domain.ScopeOf(p) == domain.ScopeText && !dst.IsText() {
			return fmt.Errorf("%w: %s on %s node %q", domain.ErrPropertyScope, p, dst.Category, dst.Name)
		}
		if !f.present(src) {
			continue
		}
		if domain.ScopeOf(p) == domain.ScopeText && dst.Text == nil {
			dst.Text = &domain.TextProps{}
		}
		if err := f.assign(dst, src); err != nil {
			return fmt.Errorf("copy %s from %q to %q: %w", p, src.Name, dst.Name, err)
		}
	}
	return nil
}

// styleRef adapts a TextStyle accessor to a node accessor. It yields nil for
// nodes without text props.
func styleRef[T any](ref func(*domain.TextStyle) *T) func(*domain.Node) *T {
	return func(n *domain.Node) *T {
		if n.Text == nil {
			return nil
		}
		return ref(&n.Text.Style)
	}
}

func stringField(ref func(*domain.Node) *string) field {
	return field{
		present: func(n *domain.Node) bool {
			v := ref(n)
			return v != nil && *v != ""
		},
		assign: func(dst, src *domain.Node) error {
			*ref(dst) = *ref(src)
			return nil
		},
	}
}

func sliceField[T any](ref func(*domain.Node) *[]T) field {
	return field{
		present: func(n *domain.Node) bool {
			v := ref(n)
			return v != nil && len(*v) > 0
		},
		assign: func(dst, src *domain.Node) error {
			v, err := clone(*ref(src))
			if err != nil {
				return err
			}
			*ref(dst) = v
			return nil
		},
	}
}

func ptrField[T any](ref func(*domain.Node) **T) field {
	return field{
		present: func(n *domain.Node) bool {
			v := ref(n)
			return v != nil && *v != nil
		},
		assign: func(dst, src *domain.Node) error {
			v, err := clone(*ref(src))
			if err != nil {
				return err
			}
			*ref(dst) = v
			return nil
		},
	}
}

// clone returns a deep copy of v sharing no mutable storage with it.
func clone[T any](v T) (T, error) {
	c, ok := deepcopy.Copy(v).(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: %T", domain.ErrClone, v)
	}
	return c, nil
}
