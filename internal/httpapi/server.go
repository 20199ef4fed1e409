// Package httpapi serves search_docs over HTTP: plain JSON-RPC, a REST search
// endpoint, an SSE stream and the MCP streamable transport
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/lightprotocol/light-mcp/internal/metrics"
	"github.com/lightprotocol/light-mcp/tools"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"
)

const (
	maxBodyBytes = 1 << 20
	sseGreeting  = `data: {"type":"connection","status":"ready"}` + "\n\n"
	sseHeartbeat = ": heartbeat\n\n"
)

// Options configures the HTTP surface
type Options struct {
	ServerName        string
	Version           string
	HeartbeatInterval time.Duration
}

// Server is the HTTP API server
type Server struct {
	router    chi.Router
	docs      *tools.DocSearch
	mcpServer *mcp.Server
	metrics   *metrics.Metrics
	log       zerolog.Logger
	opts      Options
}

// NewServer creates and configures the HTTP server
func NewServer(docs *tools.DocSearch, mcpServer *mcp.Server, m *metrics.Metrics, log zerolog.Logger, opts Options) *Server {
	if opts.HeartbeatInterval <= 0 {
		opts.HeartbeatInterval = 15 * time.Second
	}

	s := &Server{
		docs:      docs,
		mcpServer: mcpServer,
		metrics:   m,
		log:       log.With().Str("component", "http").Logger(),
		opts:      opts,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))
	r.Use(CORS)

	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)
	r.Get("/sse", s.handleSSE)
	r.Post("/rpc", s.handleRPC)
	r.Post("/api/search", s.handleSearch)
	r.Handle("/metrics", s.metrics.Handler())

	streamable := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.mcpServer
	}, nil)
	r.Handle("/mcp", streamable)

	s.router = r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully within shutdownTimeout
func (s *Server) ListenAndServe(ctx context.Context, addr string, shutdownTimeout time.Duration) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", addr).Msg("✓ HTTP server listening")
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.log.Info().Msg("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if !s.docs.Ready() {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "loading"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "ready", "documents": s.docs.DocCount()})
}

type searchResponse struct {
	Text string `json:"text"`
}

type errorResponse struct {
	Error      string            `json:"error"`
	Violations []tools.Violation `json:"violations,omitempty"`
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	text, err := s.docs.SearchRaw(tools.RouteHTTP, body)
	if err != nil {
		var argsErr *tools.ArgumentsError
		switch {
		case errors.As(err, &argsErr):
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: tools.ErrInvalidArguments.Error(), Violations: argsErr.Violations})
		case tools.IsInvalidRequest(err):
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		default:
			s.log.Error().Err(err).Msg("search failed")
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
		}
		return
	}

	writeJSON(w, http.StatusOK, searchResponse{Text: text})
}

// handleSSE greets the client and keeps the stream open with heartbeat
// comments until it disconnects
func (s *Server) handleSSE(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	if _, err := fmt.Fprint(w, sseGreeting); err != nil {
		return
	}
	flusher.Flush()

	ticker := time.NewTicker(s.opts.HeartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
			if _, err := fmt.Fprint(w, sseHeartbeat); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer body.Close()

	var buf json.RawMessage
	dec := json.NewDecoder(body)
	if err := dec.Decode(&buf); err != nil {
		return nil, fmt.Errorf("invalid JSON body: %w", err)
	}
	return buf, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
