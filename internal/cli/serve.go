package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
)

// NewServeCmd creates the 'serve' command for running the MCP server.
func NewServeCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server (stdio transport)",
		Long: `Start the light-mcp MCP server using stdio transport.

The documentation index is built in the background; search_docs calls made
before it is ready return a short "not initialized" notice.`,
		Example: `  # Run directly
  light-mcp serve

  # Serve a local checkout of the docs
  light-mcp serve --docs-dir ./docs`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts)
		},
	}

	return cmd
}

// runServe starts the MCP server with stdio transport and signal handling.
func runServe(ctx context.Context, opts *options) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(opts)
	if err != nil {
		return err
	}
	defer a.close(opts)

	a.docs.Start()

	opts.log.Info().Msg("✓ Server ready and waiting for connections")
	if err := a.mcpServer.Run(ctx, &mcp.StdioTransport{}); err != nil && ctx.Err() == nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
