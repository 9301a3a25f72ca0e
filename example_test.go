package reattach_test

import (
	"context"
	"fmt"
	"log"

	"github.com/aretw0/reattach"
	"github.com/aretw0/reattach/pkg/adapters/memory"
	"github.com/aretw0/reattach/pkg/domain"
	"github.com/aretw0/reattach/pkg/dsl"
)

// ExampleEngine_Run demonstrates reattaching a detached frame to its template
// while keeping the frame's overrides.
func ExampleEngine_Run() {
	// 1. Describe the document: a "Button" template instance and a detached copy of it.
	doc, err := dsl.New("design").
		Root(dsl.Page("page").Children(
			dsl.Instance("button", "Button").Fill(dsl.Solid(0, 0, 1)).Children(
				dsl.Text("button-label", "Label").Characters("Click").Font("Inter", "Medium"),
			),
			dsl.Frame("detached", "Button").At(10, 10).Size(120, 40).Fill(dsl.Solid(1, 0, 0)).Children(
				dsl.Text("detached-label", "Label").Characters("Buy now").Font("Inter", "Medium"),
			),
		)).
		Select("detached").
		Build()
	if err != nil {
		log.Fatal(err)
	}

	// 2. Serve it from memory
	host, err := memory.NewDocument(doc)
	if err != nil {
		log.Fatal(err)
	}

	// 3. Run
	report, err := reattach.New().Run(context.Background(), host, domain.ModeCopyOverrides)
	if err != nil {
		log.Fatal(err)
	}

	inst, _ := host.FindNode(context.Background(), func(n *domain.Node) bool {
		return n.ID == report.Items[0].InstanceID
	})
	fmt.Println(report.Message)
	fmt.Println(inst.Category, inst.Width, inst.Height, inst.Children[0].Text.Characters)

	// Output:
	// 1 processed, 0 skipped
	// INSTANCE 120 40 Buy now
}
