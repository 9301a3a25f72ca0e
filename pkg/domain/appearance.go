package domain

import "strconv"

// Appearance groups the effect and color properties every category may carry.
// Pointer and slice fields are absent when nil or empty.
type Appearance struct {
	EffectStyleID string   `json:"effectStyleId,omitempty" yaml:"effectStyleId,omitempty"`
	Effects       []Effect `json:"effects,omitempty" yaml:"effects,omitempty"`

	Fills        []Paint   `json:"fills,omitempty" yaml:"fills,omitempty"`
	Strokes      []Paint   `json:"strokes,omitempty" yaml:"strokes,omitempty"`
	StrokeWeight *float64  `json:"strokeWeight,omitempty" yaml:"strokeWeight,omitempty"`
	StrokeAlign  string    `json:"strokeAlign,omitempty" yaml:"strokeAlign,omitempty"`
	StrokeCap    string    `json:"strokeCap,omitempty" yaml:"strokeCap,omitempty"`
	StrokeJoin   string    `json:"strokeJoin,omitempty" yaml:"strokeJoin,omitempty"`
	DashPattern  []float64 `json:"dashPattern,omitempty" yaml:"dashPattern,omitempty"`
	Opacity      *float64  `json:"opacity,omitempty" yaml:"opacity,omitempty"`
	Backgrounds  []Paint   `json:"backgrounds,omitempty" yaml:"backgrounds,omitempty"`
}

// Color is an RGBA color with channels in [0, 1].
type Color struct {
	R float64 `json:"r" yaml:"r"`
	G float64 `json:"g" yaml:"g"`
	B float64 `json:"b" yaml:"b"`
	A float64 `json:"a" yaml:"a"`
}

// ColorStop is a position on a gradient.
type ColorStop struct {
	Position float64 `json:"position" yaml:"position"`
	Color    Color   `json:"color" yaml:"color"`
}

// Paint is a fill, stroke or background layer.
type Paint struct {
	Type          string      `json:"type" yaml:"type"` // SOLID, GRADIENT_LINEAR, IMAGE, ...
	Color         *Color      `json:"color,omitempty" yaml:"color,omitempty"`
	Opacity       *float64    `json:"opacity,omitempty" yaml:"opacity,omitempty"`
	Visible       *bool       `json:"visible,omitempty" yaml:"visible,omitempty"`
	BlendMode     string      `json:"blendMode,omitempty" yaml:"blendMode,omitempty"`
	GradientStops []ColorStop `json:"gradientStops,omitempty" yaml:"gradientStops,omitempty"`
	ImageHash     string      `json:"imageHash,omitempty" yaml:"imageHash,omitempty"`
}

// Vector is a 2D offset.
type Vector struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Effect is a shadow or blur.
type Effect struct {
	Type      string  `json:"type" yaml:"type"` // DROP_SHADOW, INNER_SHADOW, LAYER_BLUR, BACKGROUND_BLUR
	Color     *Color  `json:"color,omitempty" yaml:"color,omitempty"`
	Offset    *Vector `json:"offset,omitempty" yaml:"offset,omitempty"`
	Radius    float64 `json:"radius" yaml:"radius"`
	Spread    float64 `json:"spread,omitempty" yaml:"spread,omitempty"`
	Visible   bool    `json:"visible" yaml:"visible"`
	BlendMode string  `json:"blendMode,omitempty" yaml:"blendMode,omitempty"`
}

// FontName identifies a font family and style. It must be loaded before any
// text property referencing it is written.
type FontName struct {
	Family string `json:"family" yaml:"family"`
	Style  string `json:"style" yaml:"style"`
}

func (f FontName) String() string {
	if f.Style == "" {
		return f.Family
	}
	return f.Family + " " + f.Style
}

// Measure is a value with a unit (PIXELS, PERCENT, AUTO).
type Measure struct {
	Value float64 `json:"value" yaml:"value"`
	Unit  string  `json:"unit" yaml:"unit"`
}

func (m Measure) String() string {
	if m.Unit == "AUTO" {
		return "auto"
	}
	v := strconv.FormatFloat(m.Value, 'f', -1, 64)
	if m.Unit == "PERCENT" {
		return v + "%"
	}
	return v + "px"
}

// TextProps are the text-only fields of a Node.
type TextProps struct {
	Characters string    `json:"characters,omitempty" yaml:"characters,omitempty"`
	Style      TextStyle `json:"style" yaml:"style"`
}

// TextStyle is the typography of a text node.
type TextStyle struct {
	FontName            *FontName `json:"fontName,omitempty" yaml:"fontName,omitempty"`
	FontSize            *float64  `json:"fontSize,omitempty" yaml:"fontSize,omitempty"`
	TextAlignHorizontal string    `json:"textAlignHorizontal,omitempty" yaml:"textAlignHorizontal,omitempty"`
	TextAlignVertical   string    `json:"textAlignVertical,omitempty" yaml:"textAlignVertical,omitempty"`
	LetterSpacing       *Measure  `json:"letterSpacing,omitempty" yaml:"letterSpacing,omitempty"`
	LineHeight          *Measure  `json:"lineHeight,omitempty" yaml:"lineHeight,omitempty"`
	ParagraphSpacing    *float64  `json:"paragraphSpacing,omitempty" yaml:"paragraphSpacing,omitempty"`
	ParagraphIndent     *float64  `json:"paragraphIndent,omitempty" yaml:"paragraphIndent,omitempty"`
	TextCase            string    `json:"textCase,omitempty" yaml:"textCase,omitempty"`
	TextDecoration      string    `json:"textDecoration,omitempty" yaml:"textDecoration,omitempty"`
	TextStyleID         string    `json:"textStyleId,omitempty" yaml:"textStyleId,omitempty"`
}
