package overrides

import "github.com/aretw0/reattach/pkg/domain"

// Copy applies the overrides of dir.Source onto dir.Destination, recursively.
//
// Effect and color properties are copied for every pair. When both ends are
// text nodes, font style and characters follow and the walk stops there.
// Otherwise children are paired by position with domain.ZipChildren: a pair
// missing on either side is skipped, and a node without children ends the
// branch. Neither is an error.
//
// Callers must have loaded every font of both trees before calling Copy.
// The first property error aborts the copy.
func Copy(dir domain.CopyDirection) error {
	if dir.Source == nil || dir.Destination == nil {
		return nil
	}

	if err := CloneProperties(dir, domain.EffectProperties()...); err != nil {
		return err
	}
	if err := CloneProperties(dir, domain.ColorProperties()...); err != nil {
		return err
	}

	if dir.BothText() {
		if err := CloneProperties(dir, domain.FontStyleProperties()...); err != nil {
			return err
		}
		return CloneProperties(dir, domain.TextContentProperties()...)
	}

	if !dir.Source.HasChildren() || !dir.Destination.HasChildren() {
		return nil
	}

	for src, dst := range domain.ZipChildren(dir.Source, dir.Destination) {
		if err := Copy(domain.CopyDirection{Source: src, Destination: dst}); err != nil {
			return err
		}
	}
	return nil
}
