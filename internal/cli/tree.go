package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/aretw0/reattach/internal/presentation/tree"
)

// TreeOptions configures the tree command.
type TreeOptions struct {
	DocumentPath string
	Format       string // outline (default) or mermaid
	Select       []string
	Where        string
	Stdout       io.Writer
}

// PrintTree renders the document tree, highlighting the selection and the
// template each selected frame would be swapped for.
func PrintTree(opts TreeOptions) error {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	host, err := loadHost(opts.DocumentPath, opts.Where, opts.Select)
	if err != nil {
		return err
	}
	doc := host.Snapshot()
	overlay := tree.NewOverlay(doc)

	switch opts.Format {
	case "", "outline":
		return printMarkdown(opts.Stdout, tree.Outline(doc.Root, overlay))
	case "mermaid":
		_, err := fmt.Fprint(opts.Stdout, tree.GenerateMermaid(doc.Root, overlay))
		return err
	}
	return fmt.Errorf("unknown format %q (want outline or mermaid)", opts.Format)
}
