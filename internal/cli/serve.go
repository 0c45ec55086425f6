package cli

import (
	"github.com/spf13/cobra"

	"github.com/ironsheep/regionswap-mcp/internal/server"
)

func newServeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server over stdin/stdout",
		Long:  `Serve answers MCP JSON-RPC requests on stdin and writes responses to stdout. Configure it as a stdio server in your MCP client.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			logger.Info("regionswap MCP server starting", "version", version, "commit", commit)

			srv := server.New(opts.cfg, logger, version)
			return srv.Serve(cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}
