package domain

// Property is the key of a copyable node property.
type Property string

// Scope restricts which destination categories may receive a property.
type Scope int

const (
	// ScopeAny properties may be written to nodes of every category.
	ScopeAny Scope = iota
	// ScopeText properties may only be written to text nodes.
	ScopeText
)

// Effect properties.
const (
	PropEffectStyleID Property = "effectStyleId"
	PropEffects       Property = "effects"
)

// Color and appearance properties.
const (
	PropFills        Property = "fills"
	PropStrokes      Property = "strokes"
	PropStrokeWeight Property = "strokeWeight"
	PropStrokeAlign  Property = "strokeAlign"
	PropStrokeCap    Property = "strokeCap"
	PropStrokeJoin   Property = "strokeJoin"
	PropDashPattern  Property = "dashPattern"
	PropOpacity      Property = "opacity"
	PropBackgrounds  Property = "backgrounds"
)

// Text content properties.
const (
	PropCharacters Property = "characters"
)

// Font style properties.
const (
	PropFontName            Property = "fontName"
	PropFontSize            Property = "fontSize"
	PropTextAlignHorizontal Property = "textAlignHorizontal"
	PropTextAlignVertical   Property = "textAlignVertical"
	PropLetterSpacing       Property = "letterSpacing"
	PropLineHeight          Property = "lineHeight"
	PropParagraphSpacing    Property = "paragraphSpacing"
	PropParagraphIndent     Property = "paragraphIndent"
	PropTextCase            Property = "textCase"
	PropTextDecoration      Property = "textDecoration"
	PropTextStyleID         Property = "textStyleId"
)

// EffectProperties returns the effect property set.
func EffectProperties() []Property {
	return []Property{PropEffectStyleID, PropEffects}
}

// ColorProperties returns the color and appearance property set.
func ColorProperties() []Property {
	return []Property{
		PropFills,
		PropStrokes,
		PropStrokeWeight,
		PropStrokeAlign,
		PropStrokeCap,
		PropStrokeJoin,
		PropDashPattern,
		PropOpacity,
		PropBackgrounds,
	}
}

// TextContentProperties returns the text content property set.
func TextContentProperties() []Property {
	return []Property{PropCharacters}
}

// FontStyleProperties returns the font style property set.
func FontStyleProperties() []Property {
	return []Property{
		PropFontName,
		PropFontSize,
		PropTextAlignHorizontal,
		PropTextAlignVertical,
		PropLetterSpacing,
		PropLineHeight,
		PropParagraphSpacing,
		PropParagraphIndent,
		PropTextCase,
		PropTextDecoration,
		PropTextStyleID,
	}
}

// ScopeOf returns the scope of p. Font style and text content properties are
// text-only; everything else may land on any category.
func ScopeOf(p Property) Scope {
	switch p {
	case PropCharacters,
		PropFontName, PropFontSize, PropTextAlignHorizontal, PropTextAlignVertical,
		PropLetterSpacing, PropLineHeight, PropParagraphSpacing, PropParagraphIndent,
		PropTextCase, PropTextDecoration, PropTextStyleID:
		return ScopeText
	}
	return ScopeAny
}
