package mcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/arke-mcp/internal/core/domain"
	"github.com/custodia-labs/arke-mcp/internal/render"
)

// Tool names.
const (
	toolSearch   = "search_arke"
	toolEntities = "get_arke_entities"
	toolOCR      = "extract_text_ocr"
)

// Result count bounds per output mode.
const (
	conciseDefaultTopK = 10
	conciseMaxTopK     = 20
	verboseDefaultTopK = 5
	verboseMaxTopK     = 5
)

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query      string   `json:"query" jsonschema:"natural-language description of the records to find"`
	TopK       int      `json:"top_k,omitempty" jsonschema:"number of results: 1-20 (default 10), or 1-5 with verbose (default 5)"`
	Namespaces []string `json:"namespaces,omitempty" jsonschema:"restrict results to these entity kinds, e.g. series or fileUnit"`
	Verbose    bool     `json:"verbose,omitempty" jsonschema:"dump every result in full instead of a concise summary"`
}

// EntitiesInput is the input schema for the entity tool.
type EntitiesInput struct {
	PIs []string `json:"pis" jsonschema:"1-10 entity identifiers (PIs) from search results"`
}

// OCRInput is the input schema for the OCR tool.
type OCRInput struct {
	PI             string   `json:"pi,omitempty" jsonschema:"a single entity identifier; use either pi or pis"`
	PIs            []string `json:"pis,omitempty" jsonschema:"1-10 entity identifiers; use either pi or pis"`
	ForceReprocess bool     `json:"force_reprocess,omitempty" jsonschema:"run OCR again even if cached text exists"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name: toolSearch,
		Description: "Semantic search across the Arke archive (NARA records and presidential libraries). " +
			"Returns ranked results with PIs, metadata and text previews. Namespaces: " +
			strings.Join(s.config.Catalog.Namespaces(), ", ") + ".",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name: toolEntities,
		Description: fmt.Sprintf("Fetch complete data for up to %d entities by PI, including every component "+
			"of their manifest.", domain.MaxEntitiesPerRequest),
	}, s.handleEntities)

	mcp.AddTool(s.server, &mcp.Tool{
		Name: toolOCR,
		Description: "Extract text from digitised objects with OCR. Pass either pi or pis. " +
			"Cached text is returned unless force_reprocess is set.",
	}, s.handleOCR)
}

// handleSearch handles the search tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, any, error) {
	inv := startInvocation(toolSearch, "query", input.Query, "top_k", input.TopK, "verbose", input.Verbose)
	text, err := s.search(ctx, input)
	return inv.finish(text, err), nil, nil
}

func (s *Server) search(ctx context.Context, input SearchInput) (string, error) {
	mode, topK, err := searchMode(input)
	if err != nil {
		return "", err
	}

	start := time.Now()
	resp, err := s.ports.Search.Search(ctx, domain.SearchRequest{
		Query:      input.Query,
		TopK:       topK,
		Namespaces: input.Namespaces,
	})
	if err != nil {
		return "", err
	}

	return render.SearchResults(resp, render.Options{
		Mode:          mode,
		ViewerBaseURL: s.config.ViewerBaseURL,
		Elapsed:       time.Since(start),
	}), nil
}

// searchMode picks the render mode and enforces its result ceiling.
func searchMode(input SearchInput) (render.Mode, int, error) {
	mode, def, ceiling := render.ModeConcise, conciseDefaultTopK, conciseMaxTopK
	if input.Verbose {
		mode, def, ceiling = render.ModeVerbose, verboseDefaultTopK, verboseMaxTopK
	}

	topK := input.TopK
	if topK == 0 {
		topK = def
	}
	if topK < 1 || topK > ceiling {
		hint := fmt.Sprintf("Use top_k between 1 and %d.", ceiling)
		if input.Verbose {
			hint += fmt.Sprintf(" Verbose output is large; turn verbose off for up to %d results.", conciseMaxTopK)
		}
		return "", 0, domain.NewValidationError("top_k",
			fmt.Sprintf("must be between 1 and %d in %s mode, got %d", ceiling, mode, input.TopK), hint)
	}
	return mode, topK, nil
}

// handleEntities handles the entity tool invocation.
func (s *Server) handleEntities(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input EntitiesInput,
) (*mcp.CallToolResult, any, error) {
	inv := startInvocation(toolEntities, "pis", input.PIs)
	text, err := s.entities(ctx, input)
	return inv.finish(text, err), nil, nil
}

func (s *Server) entities(ctx context.Context, input EntitiesInput) (string, error) {
	pis, err := validatePIs("pis", input.PIs)
	if err != nil {
		return "", err
	}

	entities, err := s.ports.Entity.ResolveMany(ctx, pis)
	if err != nil {
		return "", err
	}
	return render.Entities(entities, s.config.ViewerBaseURL), nil
}

// handleOCR handles the OCR tool invocation.
func (s *Server) handleOCR(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input OCRInput,
) (*mcp.CallToolResult, any, error) {
	inv := startInvocation(toolOCR, "pi", input.PI, "pis", input.PIs, "force", input.ForceReprocess)
	text, err := s.ocr(ctx, input)
	return inv.finish(text, err), nil, nil
}

func (s *Server) ocr(ctx context.Context, input OCRInput) (string, error) {
	pi := strings.TrimSpace(input.PI)
	hasPI, hasPIs := pi != "", len(input.PIs) > 0

	switch {
	case hasPI && hasPIs:
		return "", domain.NewValidationError("pi", "pass either pi or pis, not both",
			"Use pi for one entity or pis for several.")
	case !hasPI && !hasPIs:
		return "", domain.NewValidationError("pi", "one of pi or pis is required",
			"Use pi for one entity or pis for several.")
	case hasPI:
		result, err := s.ports.OCR.Extract(ctx, pi, input.ForceReprocess)
		if err != nil {
			return "", err
		}
		return render.OCRResult(result), nil
	}

	pis, err := validatePIs("pis", input.PIs)
	if err != nil {
		return "", err
	}
	batch, err := s.ports.OCR.ExtractBatch(ctx, pis, input.ForceReprocess)
	if err != nil {
		return "", err
	}
	return render.OCRBatch(batch), nil
}

// validatePIs trims identifiers and enforces 1..MaxEntitiesPerRequest.
func validatePIs(field string, pis []string) ([]string, error) {
	if len(pis) == 0 {
		return nil, domain.NewValidationError(field, "at least one PI is required",
			"PIs are listed in search_arke results.")
	}
	if len(pis) > domain.MaxEntitiesPerRequest {
		return nil, domain.NewValidationError(field,
			fmt.Sprintf("at most %d PIs per request, got %d", domain.MaxEntitiesPerRequest, len(pis)),
			"Split the PIs into several calls.")
	}

	out := make([]string, len(pis))
	for i, pi := range pis {
		out[i] = strings.TrimSpace(pi)
		if out[i] == "" {
			return nil, domain.NewValidationError(field, fmt.Sprintf("PI %d is empty", i+1), "")
		}
	}
	return out, nil
}
