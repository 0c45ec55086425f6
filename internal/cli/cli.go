// Package cli implements the regionswap command-line interface.
//
// # Commands
//
//   - serve: run the MCP server over stdin/stdout
//   - swap: swap landmark-delimited regions of an image file
//   - metrics: describe the landmark sets of a landmark file
//
// # Logging
//
// Logs go to stderr, since stdout carries the MCP protocol when serving.
// The level comes from the configuration (log_level, or the
// REGIONSWAP_LOG_LEVEL environment variable); --verbose forces debug. The
// logger travels to each command through its context.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ironsheep/regionswap-mcp/internal/config"
)

var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

// SetVersion sets the version information displayed by --version and
// reported to MCP clients. It is called by main with values injected via
// ldflags.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	buildTime = d
}

// options holds the persistent flags and the configuration they resolve to.
type options struct {
	verbose    bool
	configPath string
	cfg        config.Config
}

// Execute runs the regionswap CLI.
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:          "regionswap",
		Short:        "Swap landmark-delimited image regions",
		Long:         `regionswap aligns, warps and blends corresponding regions of an image into each other's place. It runs as an MCP server or as a one-shot command.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			opts.cfg = cfg

			level, err := cfg.Level()
			if err != nil {
				return err
			}
			if opts.verbose {
				level = debugLevel
			}
			logger := newLogger(os.Stderr, level)
			logger.Debug("configuration loaded", "path", opts.configPath, "mode", cfg.BlendMode,
				"levels", cfg.Levels, "estimator", cfg.Estimator, "scale", cfg.Scale)
			cmd.SetContext(withLogger(cmd.Context(), logger))
			return nil
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("regionswap %s\ncommit: %s\nbuilt: %s\n", version, commit, buildTime))
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "path to a TOML configuration file")

	root.AddCommand(newServeCmd(opts))
	root.AddCommand(newSwapCmd(opts))
	root.AddCommand(newMetricsCmd())

	return root
}
