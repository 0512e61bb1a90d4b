package mcp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/custodia-labs/arke-mcp/internal/core/domain"
	"github.com/custodia-labs/arke-mcp/internal/logger"
)

// Version is the MCP server version.
const Version = "0.1.0"

// Server is the MCP server for the Arke archive.
type Server struct {
	ports  *Ports
	config domain.ToolConfig
	server *mcp.Server
}

// NewServer creates a new MCP server with the given ports. cfg is fixed for
// the lifetime of the server.
func NewServer(ports *Ports, cfg domain.ToolConfig) (*Server, error) {
	if ports == nil {
		return nil, ErrMissingSearchService
	}
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}
	if cfg.ViewerBaseURL == "" {
		cfg.ViewerBaseURL = domain.DefaultViewerURL
	}
	if cfg.Catalog.Len() == 0 {
		cfg.Catalog = domain.NewCatalog(domain.DefaultNamespaces())
	}

	impl := &mcp.Implementation{
		Name:    "arke",
		Version: Version,
	}

	s := &Server{
		ports:  ports,
		config: cfg,
		server: mcp.NewServer(impl, &mcp.ServerOptions{
			Instructions: instructions(cfg.Catalog),
		}),
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

func instructions(catalog domain.Catalog) string {
	return "Semantic search over the Arke archive of NARA records and presidential libraries. " +
		"Start with search_arke, then call get_arke_entities on interesting PIs, and extract_text_ocr " +
		"on digitised objects. Namespaces: " + strings.Join(catalog.Namespaces(), ", ") + "."
}

// Run starts the MCP server over stdio.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// Handler returns the HTTP handler serving MCP on / and Prometheus
// metrics on /metrics.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
		return s.server
	}, nil))
	return mux
}

// RunHTTP starts the MCP server over HTTP on the specified address.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) RunHTTP(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown when context is cancelled
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Warn("HTTP shutdown: %v", err)
		}
	}()

	logger.Info("MCP server listening on %s", addr)
	err := httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
