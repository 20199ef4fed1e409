package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lightprotocol/light-mcp/internal/indexing"
	"github.com/lightprotocol/light-mcp/internal/logger"
	"github.com/lightprotocol/light-mcp/internal/metrics"
	"github.com/lightprotocol/light-mcp/internal/search"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"
)

const (
	ToolName        = "search_docs"
	ToolDescription = "Advanced search across ZK Compression documentation with semantic understanding, context analysis, and smart ranking. Finds API methods, concepts, examples, and implementation details with high precision."

	// NotReadyMessage is returned as a normal result while the corpus loads
	NotReadyMessage = "Search index not initialized. Please wait for the server to finish loading."
)

// Transport labels used for metrics and logs
const (
	RouteMCP  = "mcp"
	RouteRPC  = "rpc"
	RouteHTTP = "http"
)

// ErrNotReady is returned by Engine before the index has been published
var ErrNotReady = errors.New("search index not initialized")

// SearchDocsInput defines input for the search_docs tool
type SearchDocsInput struct {
	Query         string `json:"query" jsonschema:"Search query supporting natural language, technical terms, and concepts"`
	Limit         int    `json:"limit,omitempty" jsonschema:"Maximum number of results to return (default: 5, max: 20)"`
	Section       string `json:"section,omitempty" jsonschema:"Filter by documentation section (e.g. compressed-tokens, learn, json-rpc-methods)"`
	Mode          string `json:"mode,omitempty" jsonschema:"Search mode: fuzzy, exact, semantic or comprehensive (default: semantic)"`
	ContentFilter string `json:"content_filter,omitempty" jsonschema:"Filter by content type: all, guides, reference, examples or concepts (default: all)"`
	ExpandContext *bool  `json:"expand_context,omitempty" jsonschema:"Provide expanded context and related sections (default: true)"`
	IncludeCode   *bool  `json:"include_code,omitempty" jsonschema:"Include code examples and snippets in results (default: true)"`
}

// Request applies the tool defaults to the input
func (in SearchDocsInput) Request() search.Request {
	req := search.NewRequest(in.Query)
	req.Limit = in.Limit
	req.Section = in.Section
	if in.Mode != "" {
		req.Mode = in.Mode
	}
	if in.ContentFilter != "" {
		req.ContentFilter = in.ContentFilter
	}
	if in.ExpandContext != nil {
		req.ExpandContext = *in.ExpandContext
	}
	if in.IncludeCode != nil {
		req.IncludeCode = *in.IncludeCode
	}
	return req
}

// DocSearch owns the search engine for the lifetime of the process
type DocSearch struct {
	provider  DataProvider
	validator *ArgumentsValidator
	metrics   *metrics.Metrics
	log       zerolog.Logger

	// current holds the published engine (atomic access for lock-free reads)
	current atomic.Pointer[search.Engine]

	// wg tracks in-flight searches so Close does not release a live index
	wg sync.WaitGroup

	startOnce sync.Once
	loaded    chan struct{}
	loadErr   error
}

// NewDocSearch creates an unloaded DocSearch. Call Start or Load to build the
// index.
func NewDocSearch(provider DataProvider, m *metrics.Metrics, log zerolog.Logger) (*DocSearch, error) {
	validator, err := NewArgumentsValidator()
	if err != nil {
		return nil, err
	}
	if m == nil {
		m = metrics.New()
	}

	return &DocSearch{
		provider:  provider,
		validator: validator,
		metrics:   m,
		log:       logger.Component(log, "docsearch"),
		loaded:    make(chan struct{}),
	}, nil
}

// Start loads the corpus in the background. Searches before it finishes get
// NotReadyMessage.
func (d *DocSearch) Start() {
	d.startOnce.Do(func() {
		go func() {
			defer close(d.loaded)
			if err := d.Load(); err != nil {
				d.loadErr = err
				d.log.Error().Err(err).Msg("Documentation search initialization failed")
			}
		}()
	})
}

// WaitReady blocks until a background load started by Start has finished
func (d *DocSearch) WaitReady(ctx context.Context) error {
	select {
	case <-d.loaded:
		return d.loadErr
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Load reads, classifies and indexes the corpus, then publishes the engine
func (d *DocSearch) Load() error {
	startTime := time.Now()
	d.log.Info().Str("source", d.provider.Describe()).Msg("Initializing documentation search...")

	loader := indexing.NewLoader(d.log)
	result, err := loader.LoadFS(d.provider.FS(), d.provider.Root())
	if err != nil {
		return fmt.Errorf("failed to load documentation: %w", err)
	}

	engine, err := search.Build(result.Entries)
	if err != nil {
		return err
	}

	if old := d.current.Swap(engine); old != nil {
		d.wg.Wait()
		if err := old.Close(); err != nil {
			d.log.Warn().Err(err).Msg("Error closing previous index")
		}
	}
	d.metrics.RecordLoad(len(result.Entries), len(result.Skipped))

	d.log.Info().
		Int("documents", len(result.Entries)).
		Int("skipped", len(result.Skipped)).
		Dur("elapsed", time.Since(startTime).Round(time.Millisecond)).
		Msg("✓ Documentation search initialized")
	return nil
}

// Ready reports whether the engine has been published
func (d *DocSearch) Ready() bool {
	return d.current.Load() != nil
}

// DocCount returns the number of indexed documents, 0 while loading
func (d *DocSearch) DocCount() int {
	if engine := d.current.Load(); engine != nil {
		return engine.DocCount()
	}
	return 0
}

// Engine returns the published engine or ErrNotReady
func (d *DocSearch) Engine() (*search.Engine, error) {
	engine := d.current.Load()
	if engine == nil {
		return nil, ErrNotReady
	}
	return engine, nil
}

// Search runs one request and renders the text result
func (d *DocSearch) Search(route string, req search.Request) (string, error) {
	startTime := time.Now()

	// Register before loading the pointer so Close waits for us
	d.wg.Add(1)
	defer d.wg.Done()

	engine, err := d.Engine()
	if err != nil {
		d.metrics.RecordSearch(route, metrics.StatusNotReady, time.Since(startTime), 0)
		return NotReadyMessage, nil
	}

	resp, err := engine.Search(req)
	if err != nil {
		status := metrics.StatusError
		if IsInvalidRequest(err) {
			status = metrics.StatusInvalid
		}
		d.metrics.RecordSearch(route, status, time.Since(startTime), 0)
		d.log.Debug().Err(err).Str("route", route).Str("query", req.Query).Msg("search rejected")
		return "", err
	}

	status := metrics.StatusOK
	if len(resp.Results) == 0 {
		status = metrics.StatusEmpty
	}
	elapsed := time.Since(startTime)
	d.metrics.RecordSearch(route, status, elapsed, len(resp.Results))

	d.log.Debug().
		Str("route", route).
		Str("query", req.Query).
		Bool("comprehensive", resp.Comprehensive).
		Int("results", len(resp.Results)).
		Dur("elapsed", elapsed).
		Msg("search completed")

	return resp.Text(), nil
}

// SearchRaw validates a raw JSON argument object against the search_docs
// schema and runs it
func (d *DocSearch) SearchRaw(route string, raw json.RawMessage) (string, error) {
	input, err := d.validator.Decode(raw)
	if err != nil {
		d.metrics.RecordSearch(route, metrics.StatusInvalid, 0, 0)
		return "", err
	}
	return d.Search(route, input.Request())
}

// SearchDocs is the MCP handler for the search_docs tool
func (d *DocSearch) SearchDocs(ctx context.Context, req *mcp.CallToolRequest, input SearchDocsInput) (*mcp.CallToolResult, any, error) {
	text, err := d.Search(RouteMCP, input.Request())
	if err != nil {
		return nil, nil, err
	}
	return TextResult(text), nil, nil
}

// TextResult wraps text in a single-block tool result
func TextResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

// RegisterDocSearchTools registers documentation search tools. The advertised
// input schema is the embedded search_docs schema served by every transport.
func RegisterDocSearchTools(server *mcp.Server, ds *DocSearch) {
	mcp.AddTool(server,
		&mcp.Tool{
			Name:        ToolName,
			Description: ToolDescription,
			InputSchema: SearchDocsSchema(),
		},
		ds.SearchDocs,
	)
}

// Close releases the index after in-flight searches complete
func (d *DocSearch) Close() error {
	engine := d.current.Swap(nil)
	if engine == nil {
		return nil
	}

	d.log.Debug().Msg("Waiting for in-flight searches to complete before closing...")
	d.wg.Wait()

	if err := engine.Close(); err != nil {
		d.log.Error().Err(err).Msg("Error closing doc index")
		return err
	}
	d.log.Info().Msg("✓ Doc index closed successfully")
	return nil
}
