package main

import (
	"github.com/aretw0/reattach/internal/cli"
	"github.com/spf13/cobra"
)

var reportsCmd = &cobra.Command{
	Use:   "reports",
	Short: "Inspect stored run reports",
}

var reportsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored report IDs",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.ListReports(cmd.Context(), reportsOptions(cmd))
	},
}

var reportsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a stored report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.ShowReport(cmd.Context(), reportsOptions(cmd), args[0])
	},
}

var reportsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a stored report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.DeleteReport(cmd.Context(), reportsOptions(cmd), args[0])
	},
}

func reportsOptions(cmd *cobra.Command) cli.ReportsOptions {
	jsonOut, _ := cmd.Flags().GetBool("json")
	return cli.ReportsOptions{
		CommonOptions: commonOptions(cmd),
		JSON:          jsonOut,
		Stdout:        cmd.OutOrStdout(),
	}
}

func init() {
	rootCmd.AddCommand(reportsCmd)
	reportsCmd.AddCommand(reportsListCmd, reportsShowCmd, reportsDeleteCmd)
	reportsCmd.PersistentFlags().Bool("json", false, "Print JSON")
}
