package main

import (
	"context"

	"github.com/aretw0/reattach/internal/cli"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run <document>",
	Short: "Reattach the selected frames of a document file",
	Long: `Loads a design document (YAML or JSON), swaps every selected frame for an
instance of its template and writes the document back.

The selection stored in the document is used unless --select or --where is given.`,
	Example: `  reattach run design.yaml
  reattach run design.json --copy-overrides --where 'type == "FRAME" && name startsWith "Card"'
  reattach run design.yaml --select f1,f2 --dry-run --json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := cli.RunOptions{
			CommonOptions: commonOptions(cmd),
			DocumentPath:  args[0],
			Stdout:        cmd.OutOrStdout(),
		}
		opts.Out, _ = cmd.Flags().GetString("out")
		opts.Mode, _ = cmd.Flags().GetString("mode")
		opts.CopyOverrides, _ = cmd.Flags().GetBool("copy-overrides")
		opts.Select, _ = cmd.Flags().GetStringSlice("select")
		opts.Where, _ = cmd.Flags().GetString("where")
		opts.DryRun, _ = cmd.Flags().GetBool("dry-run")
		opts.JSON, _ = cmd.Flags().GetBool("json")

		ctx := cli.NewSignalContext(context.Background())
		defer ctx.Cancel()
		return cli.Execute(ctx, opts)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().String("mode", "", "Run mode: reattach or copyOverrides (default from config)")
	runCmd.Flags().Bool("copy-overrides", false, "Copy the frame's overrides onto the new instance")
	runCmd.Flags().StringSlice("select", nil, "Node IDs to select instead of the stored selection")
	runCmd.Flags().String("where", "", "Selection expression evaluated against every node")
	runCmd.Flags().StringP("out", "o", "", "Write the result here instead of overwriting the input")
	runCmd.Flags().Bool("dry-run", false, "Report what would happen without writing the document")
	runCmd.Flags().Bool("json", false, "Print the report as JSON")
	runCmd.MarkFlagsMutuallyExclusive("mode", "copy-overrides")
	runCmd.MarkFlagsMutuallyExclusive("select", "where")
}
