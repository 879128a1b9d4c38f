package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ironsheep/scan-diagrams/internal/server"
)

func (c *CLI) serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the JSON-RPC tool server on stdin and stdout",
		Long: `serve speaks the line-delimited JSON-RPC tool protocol on stdin/stdout.
Logs go to stderr so they never mix with responses.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			logger.Debug("starting tool server", "version", version)

			srv := server.New(c.Config, logger)
			return srv.Run(ctx, os.Stdin, os.Stdout)
		},
	}
}
