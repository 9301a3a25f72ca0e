package fonts_test

import (
	"testing"

	"github.com/aretw0/reattach/pkg/domain"
	"github.com/aretw0/reattach/pkg/dsl"
	"github.com/aretw0/reattach/pkg/fonts"
	"github.com/stretchr/testify/assert"
)

func TestExtract(t *testing.T) {
	t.Run("No text nodes", func(t *testing.T) {
		root := dsl.Frame("f", "Card").Children(dsl.Rect("r", "Bg")).Build()
		assert.Empty(t, fonts.Extract(root))
	})

	t.Run("Shared font is not deduplicated", func(t *testing.T) {
		root := dsl.Frame("f", "Card").Children(
			dsl.Text("t1", "Title").Font("Inter", "Bold"),
			dsl.Group("g", "Body").Children(
				dsl.Text("t2", "Caption").Font("Inter", "Bold"),
			),
		).Build()

		got := fonts.Extract(root)
		assert.Equal(t, []domain.FontName{
			{Family: "Inter", Style: "Bold"},
			{Family: "Inter", Style: "Bold"},
		}, got)
	})

	t.Run("Pre-order", func(t *testing.T) {
		root := dsl.Frame("f", "Card").Children(
			dsl.Group("g", "Body").Children(dsl.Text("deep", "Deep").Font("Roboto", "Regular")),
			dsl.Text("shallow", "Shallow").Font("Inter", "Medium"),
		).Build()

		got := fonts.Extract(root)
		assert.Equal(t, "Roboto", got[0].Family)
		assert.Equal(t, "Inter", got[1].Family)
	})

	t.Run("Text without font", func(t *testing.T) {
		root := dsl.Text("t", "Plain").Characters("hi").Build()
		assert.Empty(t, fonts.Extract(root))
	})

	t.Run("Nil root", func(t *testing.T) {
		assert.Empty(t, fonts.Extract(nil))
	})
}
