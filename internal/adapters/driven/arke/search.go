package arke

import (
	"context"
	"net/http"

	"github.com/custodia-labs/arke-mcp/internal/core/domain"
)

// Search runs a semantic query against the search service.
func (cl *Client) Search(ctx context.Context, req domain.SearchRequest) (*domain.SearchResponse, error) {
	var raw map[string]any
	err := cl.do(ctx, call{
		op:        "search",
		method:    http.MethodPost,
		url:       cl.searchURL + "/search",
		body:      req,
		retryable: true,
	}, &raw)
	if err != nil {
		return nil, err
	}
	return searchResponseFromRaw(raw), nil
}

// namespacesResponse is the search service's namespace listing.
type namespacesResponse struct {
	Namespaces []string `json:"namespaces"`
}

// Namespaces lists the category tags the search service can filter on.
func (cl *Client) Namespaces(ctx context.Context) ([]string, error) {
	var resp namespacesResponse
	err := cl.do(ctx, call{
		op:        "namespaces",
		method:    http.MethodGet,
		url:       cl.searchURL + "/namespaces",
		retryable: true,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.Namespaces, nil
}
