package cli

import (
	"fmt"

	"github.com/lightprotocol/light-mcp/internal/config"
	"github.com/lightprotocol/light-mcp/internal/metrics"
	"github.com/lightprotocol/light-mcp/tools"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// app holds the components shared by the stdio and HTTP transports
type app struct {
	metrics   *metrics.Metrics
	docs      *tools.DocSearch
	mcpServer *mcp.Server
}

func newApp(opts *options) (*app, error) {
	m := metrics.New()

	docs, err := tools.NewDocSearch(tools.NewDataProvider(opts.cfg.DocsDir), m, opts.log)
	if err != nil {
		return nil, fmt.Errorf("failed to create doc search: %w", err)
	}

	server := createMCPServer(opts)
	tools.RegisterDocSearchTools(server, docs)
	opts.log.Info().Str("tool", tools.ToolName).Msg("✓ Tools registered")

	return &app{metrics: m, docs: docs, mcpServer: server}, nil
}

// createMCPServer initializes the MCP server
func createMCPServer(opts *options) *mcp.Server {
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    config.ServerName,
			Version: config.ServerVersion,
		},
		nil, // Default options
	)

	opts.log.Info().Str("name", config.ServerName).Str("version", config.ServerVersion).Msg("Server initialized")
	return server
}

func (a *app) close(opts *options) {
	if err := a.docs.Close(); err != nil {
		opts.log.Error().Err(err).Msg("Error closing doc search")
	}
}
