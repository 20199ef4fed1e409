/*
Package cli implements the light-mcp command line.

Commands:
  serve      Run the MCP server over stdio (default)
  http       Run the HTTP surface (JSON-RPC, REST search, SSE, streamable MCP)
  install    Register light-mcp in the Cursor MCP configuration
  uninstall  Remove light-mcp from the Cursor MCP configuration
*/
package cli

import (
	"fmt"

	"github.com/lightprotocol/light-mcp/internal/config"
	"github.com/lightprotocol/light-mcp/internal/logger"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// options is shared by every subcommand. Flags override the environment.
type options struct {
	cfg config.Config
	log zerolog.Logger
}

// NewRootCmd creates the light-mcp root command
func NewRootCmd() *cobra.Command {
	opts := &options{cfg: config.Load(), log: zerolog.Nop()}

	rootCmd := &cobra.Command{
		Use:   config.ServerName,
		Short: "ZK Compression documentation search over MCP",
		Long: `light-mcp serves the search_docs tool: ranked excerpts from the ZK
Compression documentation for natural-language and keyword queries.

Run without a subcommand to start the MCP server over stdio, which is what
editors such as Cursor launch.`,
		Version:       config.ServerVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.cfg.DocsDir, "docs-dir", opts.cfg.DocsDir, "Serve markdown documentation from this directory instead of the embedded corpus (env LIGHT_MCP_DOCS_DIR)")
	flags.StringVar(&opts.cfg.LogLevel, "log-level", opts.cfg.LogLevel, "Log level: debug, info, warn, error (env LIGHT_MCP_LOG_LEVEL)")
	flags.BoolVar(&opts.cfg.LogPretty, "log-pretty", opts.cfg.LogPretty, "Human readable console logs (env LIGHT_MCP_LOG_PRETTY)")

	rootCmd.AddCommand(NewServeCmd(opts))
	rootCmd.AddCommand(NewHTTPCmd(opts))
	rootCmd.AddCommand(NewInstallCmd(opts))
	rootCmd.AddCommand(NewUninstallCmd(opts))

	return rootCmd
}

func (o *options) setup(cmd *cobra.Command) error {
	if err := o.cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log, err := logger.New(logger.Config{
		Level:  o.cfg.LogLevel,
		Pretty: o.cfg.LogPretty,
		Output: cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}
	o.log = log
	return nil
}
