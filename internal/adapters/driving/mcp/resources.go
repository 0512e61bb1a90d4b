package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/arke-mcp/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for Arke resources.
	uriScheme = "arke://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "namespaces",
		Name:        "namespaces",
		Description: "Entity kinds that search_arke can filter on",
		MIMEType:    "application/json",
	}, s.handleNamespacesResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "entities/{pi}",
		Name:        "entity",
		Description: "A resolved entity: manifest plus every component",
		MIMEType:    "application/json",
	}, s.handleEntityResource)
}

// handleNamespacesResource returns the namespace catalog.
func (s *Server) handleNamespacesResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(map[string][]string{
		"namespaces": s.config.Catalog.Namespaces(),
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling namespaces: %w", err)
	}
	return jsonResource(req.Params.URI, data), nil
}

// handleEntityResource resolves the entity named in the URI.
func (s *Server) handleEntityResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	pi := extractEntityPI(req.Params.URI)
	if pi == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	entity, err := s.ports.Entity.Resolve(ctx, pi)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, mcp.ResourceNotFoundError(req.Params.URI)
		}
		return nil, fmt.Errorf("resolving entity: %w", err)
	}

	data, err := json.MarshalIndent(entity, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling entity: %w", err)
	}
	return jsonResource(req.Params.URI, data), nil
}

func jsonResource(uri string, data []byte) *mcp.ReadResourceResult {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}
}

// extractEntityPI extracts the PI from a URI like arke://entities/{pi}.
func extractEntityPI(uri string) string {
	const prefix = uriScheme + "entities/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	raw := strings.TrimPrefix(uri, prefix)
	if raw == "" || strings.Contains(raw, "/") {
		return ""
	}
	pi, err := url.PathUnescape(raw)
	if err != nil {
		return ""
	}
	return pi
}
