package main

import (
	"context"

	"github.com/aretw0/reattach/internal/cli"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Exposes the reattach engine as a JSON API over HTTP, with run events on
/events (SSE), Prometheus metrics on /metrics and the API contract on /swagger.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		port, _ := cmd.Flags().GetInt("port")

		ctx := cli.NewSignalContext(context.Background())
		defer ctx.Cancel()
		return cli.Serve(ctx, cli.ServeOptions{CommonOptions: commonOptions(cmd), Port: port})
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 0, "Port to listen on (default from config, 8080)")
}
