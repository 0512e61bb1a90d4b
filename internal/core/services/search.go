package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/custodia-labs/arke-mcp/internal/core/domain"
	"github.com/custodia-labs/arke-mcp/internal/core/ports/driven"
	"github.com/custodia-labs/arke-mcp/internal/core/ports/driving"
	"github.com/custodia-labs/arke-mcp/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// SearchService validates queries and forwards them to the search gateway.
// Hits come back in gateway order; scores are never recomputed.
type SearchService struct {
	gateway driven.SearchGateway
	catalog domain.Catalog
}

// NewSearchService creates a new search service. Namespace filters are
// checked against catalog; an empty catalog accepts any namespace.
func NewSearchService(gateway driven.SearchGateway, catalog domain.Catalog) *SearchService {
	return &SearchService{
		gateway: gateway,
		catalog: catalog,
	}
}

// Search runs a semantic search.
func (s *SearchService) Search(ctx context.Context, req domain.SearchRequest) (*domain.SearchResponse, error) {
	logger.Section("Search Execution")

	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, domain.NewValidationError("query", "query must not be empty",
			"Describe what you are looking for in plain language.")
	}
	if req.TopK != 0 && (req.TopK < domain.MinTopK || req.TopK > domain.MaxTopK) {
		return nil, domain.NewValidationError("top_k",
			fmt.Sprintf("must be between %d and %d, got %d", domain.MinTopK, domain.MaxTopK, req.TopK), "")
	}

	namespaces, err := s.normaliseNamespaces(req.Namespaces)
	if err != nil {
		return nil, err
	}

	req = domain.SearchRequest{Query: query, TopK: req.TopK, Namespaces: namespaces}
	logger.Debug("Query: %q, top_k=%d, namespaces=%v", req.Query, req.TopK, req.Namespaces)

	start := time.Now()
	resp, err := s.gateway.Search(ctx, req)
	if err != nil {
		logger.Warn("Search failed: %v", err)
		return nil, fmt.Errorf("search: %w", err)
	}
	if resp.Query == "" {
		resp.Query = query
	}
	if resp.Namespaces == nil {
		resp.Namespaces = namespaces
	}
	if resp.Results == nil {
		resp.Results = []domain.RankedHit{}
	}

	logger.Info("Search returned %d of %d results in %s",
		len(resp.Results), resp.TotalResults, time.Since(start).Round(time.Millisecond))
	return resp, nil
}

// normaliseNamespaces trims and de-duplicates filters and rejects
// namespaces the catalog does not know.
func (s *SearchService) normaliseNamespaces(in []string) ([]string, error) {
	if len(in) == 0 {
		return nil, nil
	}

	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	var unknown []string
	for _, ns := range in {
		ns = strings.TrimSpace(ns)
		if ns == "" || seen[ns] {
			continue
		}
		seen[ns] = true
		if s.catalog.Len() > 0 && !s.catalog.Contains(ns) {
			unknown = append(unknown, ns)
			continue
		}
		out = append(out, ns)
	}

	if len(unknown) > 0 {
		return nil, domain.NewValidationError("namespaces",
			"unknown namespace(s): "+strings.Join(unknown, ", "),
			"Valid namespaces: "+strings.Join(s.catalog.Namespaces(), ", ")+".")
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out, nil
}
