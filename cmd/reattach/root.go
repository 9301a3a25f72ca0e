package main

import (
	"fmt"
	"os"

	"github.com/aretw0/reattach/internal/cli"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "reattach",
	Short: "Reattach detached frames to their template instances",
	Long: `Reattach swaps each selected frame for a fresh instance of the template
that shares its name, optionally copying the frame's overrides onto it.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringP("config", "c", "", "Config file (YAML or JSON)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
}

func commonOptions(cmd *cobra.Command) cli.CommonOptions {
	configPath, _ := cmd.Flags().GetString("config")
	debug, _ := cmd.Flags().GetBool("debug")
	return cli.CommonOptions{ConfigPath: configPath, Debug: debug}
}
