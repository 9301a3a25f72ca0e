package main

import (
	"github.com/aretw0/reattach/internal/cli"
	"github.com/spf13/cobra"
)

var treeCmd = &cobra.Command{
	Use:   "tree <document>",
	Short: "Render the node tree of a document",
	Long:  `Prints the document tree as a Markdown outline or a Mermaid graph, highlighting the selection and the templates it resolves to.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := cli.TreeOptions{
			DocumentPath: args[0],
			Stdout:       cmd.OutOrStdout(),
		}
		opts.Format, _ = cmd.Flags().GetString("format")
		opts.Select, _ = cmd.Flags().GetStringSlice("select")
		opts.Where, _ = cmd.Flags().GetString("where")
		return cli.PrintTree(opts)
	},
}

func init() {
	rootCmd.AddCommand(treeCmd)
	treeCmd.Flags().StringP("format", "f", "outline", "Output format: outline or mermaid")
	treeCmd.Flags().StringSlice("select", nil, "Node IDs to highlight instead of the stored selection")
	treeCmd.Flags().String("where", "", "Selection expression to highlight")
}
