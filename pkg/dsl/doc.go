/*
Package dsl provides a fluent builder for design documents.

It is mostly used to write fixtures for tests and examples without spelling out
nested domain.Node literals.

Example usage:

	doc, err := dsl.New("landing").
		Root(dsl.Page("page").Children(
			dsl.Frame("f1", "Card").At(10, 20).Size(200, 120).
				Fill(dsl.Solid(1, 0, 0)).
				Children(dsl.Text("t1", "Title").Font("Inter", "Bold").Characters("Hello")),
			dsl.Instance("i1", "Card").Size(200, 120).
				Children(dsl.Text("t2", "Title").Font("Inter", "Regular").Characters("Title")),
		)).
		Select("f1").
		Build()
*/
package dsl
