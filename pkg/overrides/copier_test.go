package overrides_test

import (
	"testing"

	"github.com/aretw0/reattach/pkg/domain"
	"github.com/aretw0/reattach/pkg/dsl"
	"github.com/aretw0/reattach/pkg/overrides"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// card builds a frame/instance pair sharing one shape:
// root > [title text, body group > [caption text, icon rect]].
func styledCard() *domain.Node {
	return dsl.Frame("src", "Card").
		Fill(dsl.Solid(1, 1, 1)).
		Effect(dsl.Shadow(8)).
		Children(
			dsl.Text("src-title", "Title").Font("Inter", "Bold").FontSize(24).Align("CENTER").Characters("Pricing"),
			dsl.Group("src-body", "Body").Opacity(0.8).Children(
				dsl.Text("src-caption", "Caption").Font("Inter", "Italic").Characters("per month").TextStyle("S:caption"),
				dsl.Rect("src-icon", "Icon").Fill(dsl.Solid(0, 0.5, 1)).Stroke(dsl.Solid(0, 0, 0), 1),
			),
		).Build()
}

func defaultCard() *domain.Node {
	return dsl.Instance("dst", "Card").
		Fill(dsl.Solid(0.9, 0.9, 0.9)).
		Children(
			dsl.Text("dst-title", "Title").Font("Inter", "Regular").FontSize(16).Characters("Title"),
			dsl.Group("dst-body", "Body").Children(
				dsl.Text("dst-caption", "Caption").Font("Inter", "Regular").Characters("Caption"),
				dsl.Rect("dst-icon", "Icon"),
			),
		).Build()
}

func TestCopy_CongruentTrees(t *testing.T) {
	src, dst := styledCard(), defaultCard()

	require.NoError(t, overrides.Copy(domain.CopyDirection{Source: src, Destination: dst}))

	assert.Equal(t, src.Fills, dst.Fills)
	assert.Equal(t, src.Effects, dst.Effects)

	title := dst.Children[0]
	assert.Equal(t, "Pricing", title.Text.Characters)
	assert.Equal(t, src.Children[0].Text.Style, title.Text.Style)

	body := dst.Children[1]
	assert.Equal(t, 0.8, *body.Opacity)

	caption := body.Children[0]
	assert.Equal(t, "per month", caption.Text.Characters)
	assert.Equal(t, "S:caption", caption.Text.Style.TextStyleID)
	assert.Equal(t, domain.FontName{Family: "Inter", Style: "Italic"}, *caption.Font())

	icon := body.Children[1]
	assert.Equal(t, src.Children[1].Children[1].Fills, icon.Fills)
	assert.Equal(t, 1.0, *icon.StrokeWeight)

	// ids, names and geometry are not overrides
	assert.Equal(t, "dst-title", title.ID)
}

func TestCopy_DestinationIsIndependent(t *testing.T) {
	src, dst := styledCard(), defaultCard()
	require.NoError(t, overrides.Copy(domain.CopyDirection{Source: src, Destination: dst}))

	src.Effects[0].Offset.Y = 40
	src.Children[0].Text.Style.FontName.Style = "Black"
	*src.Children[1].Opacity = 0.1

	assert.Equal(t, 2.0, dst.Effects[0].Offset.Y)
	assert.Equal(t, "Bold", dst.Children[0].Font().Style)
	assert.Equal(t, 0.8, *dst.Children[1].Opacity)
}

func TestCopy_AbsentPropertiesKeepDefaults(t *testing.T) {
	src := dsl.Frame("src", "Card").Children(
		dsl.Text("t", "Title").Characters("Only text"),
	).Build()
	dst := defaultCard()

	require.NoError(t, overrides.Copy(domain.CopyDirection{Source: src, Destination: dst}))

	assert.Equal(t, 0.9, dst.Fills[0].Color.R)
	assert.Equal(t, "Only text", dst.Children[0].Text.Characters)
	assert.Equal(t, "Regular", dst.Children[0].Font().Style)
	assert.Equal(t, 16.0, *dst.Children[0].Text.Style.FontSize)
}

func TestCopy_Idempotent(t *testing.T) {
	once, twice := defaultCard(), defaultCard()
	src := styledCard()

	require.NoError(t, overrides.Copy(domain.CopyDirection{Source: src, Destination: once}))
	require.NoError(t, overrides.Copy(domain.CopyDirection{Source: src, Destination: twice}))
	require.NoError(t, overrides.Copy(domain.CopyDirection{Source: src, Destination: twice}))

	assert.Equal(t, once, twice)
}

func TestCopy_ExtraSourceChildIsSkipped(t *testing.T) {
	src := dsl.Frame("src", "List").Children(
		dsl.Rect("s0", "Row").Fill(dsl.Solid(1, 0, 0)),
		dsl.Rect("s1", "Row").Fill(dsl.Solid(0, 1, 0)),
		dsl.Rect("s2", "Row").Fill(dsl.Solid(0, 0, 1)),
	).Build()
	dst := dsl.Instance("dst", "List").Children(
		dsl.Rect("d0", "Row"),
		dsl.Rect("d1", "Row"),
	).Build()

	require.NoError(t, overrides.Copy(domain.CopyDirection{Source: src, Destination: dst}))

	require.Len(t, dst.Children, 2)
	assert.Equal(t, src.Children[0].Fills, dst.Children[0].Fills)
	assert.Equal(t, src.Children[1].Fills, dst.Children[1].Fills)
}

func TestCopy_ExtraDestinationChildIsUntouched(t *testing.T) {
	src := dsl.Frame("src", "List").Children(
		dsl.Rect("s0", "Row").Fill(dsl.Solid(1, 0, 0)),
	).Build()
	dst := dsl.Instance("dst", "List").Children(
		dsl.Rect("d0", "Row"),
		dsl.Rect("d1", "Row"),
	).Build()

	require.NoError(t, overrides.Copy(domain.CopyDirection{Source: src, Destination: dst}))

	assert.Equal(t, src.Children[0].Fills, dst.Children[0].Fills)
	assert.Empty(t, dst.Children[1].Fills)
}

func TestCopy_MismatchedCategoriesCopyAppearanceOnly(t *testing.T) {
	src := dsl.Text("src", "Label").Fill(dsl.Solid(1, 0, 0)).Font("Inter", "Bold").Characters("Hi").Build()
	dst := dsl.Frame("dst", "Label").Children(dsl.Rect("r", "Box")).Build()

	require.NoError(t, overrides.Copy(domain.CopyDirection{Source: src, Destination: dst}))

	assert.Equal(t, src.Fills, dst.Fills)
	assert.Nil(t, dst.Text)
	assert.Empty(t, dst.Children[0].Fills)
}

func TestCopy_NilEnds(t *testing.T) {
	assert.NoError(t, overrides.Copy(domain.CopyDirection{}))
	assert.NoError(t, overrides.Copy(domain.CopyDirection{Source: styledCard()}))
}
