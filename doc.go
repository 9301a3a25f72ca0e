/*
Package reattach swaps detached design frames back for live template instances.

A designer often "detaches" an instance of a reusable component to tweak it,
losing the link to the component. Reattach walks the current selection, finds
for every frame the first instance in the document with the same name, inserts
a fresh instance of it at the frame's position and size, and removes the frame.
In copy-overrides mode the frame's effects, colors, fonts and text are copied
onto the new instance first, so the visual result is preserved.

# Concept

The engine never talks to an editor directly. The editor ("Host") is a driven
port (ports.Host) that exposes the selection, node lookup, instantiation and
tree mutation. The in-memory adapter (pkg/adapters/memory) serves documents
loaded from YAML or JSON files, which is what the CLI, HTTP server and MCP
server use.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/reattach"
		"github.com/aretw0/reattach/pkg/adapters/file"
		"github.com/aretw0/reattach/pkg/adapters/memory"
		"github.com/aretw0/reattach/pkg/domain"
	)

	func main() {
		doc, err := file.LoadDocument("design.yaml")
		if err != nil {
			log.Fatal(err)
		}
		host, err := memory.NewDocument(doc)
		if err != nil {
			log.Fatal(err)
		}

		eng := reattach.New(reattach.WithReportStore(memory.NewStore()))
		report, err := eng.Run(context.Background(), host, domain.ModeCopyOverrides)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(report.Message) // "2 processed, 1 skipped"

		if err := file.SaveDocument("design.yaml", host.Snapshot()); err != nil {
			log.Fatal(err)
		}
	}
*/
package reattach
