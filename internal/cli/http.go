package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/lightprotocol/light-mcp/internal/config"
	"github.com/lightprotocol/light-mcp/internal/httpapi"
	"github.com/spf13/cobra"
)

// NewHTTPCmd creates the 'http' command for serving search over HTTP.
func NewHTTPCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "http",
		Short: "Run the HTTP server",
		Long: `Serve search_docs over HTTP.

Endpoints:
  GET  /health       liveness
  GET  /ready        503 until the index is built
  POST /rpc          JSON-RPC 2.0 (initialize, tools/list, tools/call)
  POST /api/search   search_docs arguments as a JSON body
  GET  /sse          event stream with connection greeting and heartbeats
       /mcp          MCP streamable HTTP transport
  GET  /metrics      Prometheus metrics`,
		Example: `  light-mcp http --addr 127.0.0.1:8080`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHTTP(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.cfg.HTTPAddr, "addr", opts.cfg.HTTPAddr, "Listen address (env LIGHT_MCP_HTTP_ADDR)")
	cmd.Flags().DurationVar(&opts.cfg.HeartbeatInterval, "heartbeat", opts.cfg.HeartbeatInterval, "SSE heartbeat interval (env LIGHT_MCP_HEARTBEAT_INTERVAL)")

	return cmd
}

func runHTTP(ctx context.Context, opts *options) error {
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

	srv := httpapi.NewServer(a.docs, a.mcpServer, a.metrics, opts.log, httpapi.Options{
		ServerName:        config.ServerName,
		Version:           config.ServerVersion,
		HeartbeatInterval: opts.cfg.HeartbeatInterval,
	})
	return srv.ListenAndServe(ctx, opts.cfg.HTTPAddr, opts.cfg.ShutdownTimeout)
}
