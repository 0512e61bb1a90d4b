package driving

import (
	"context"

	"github.com/custodia-labs/arke-mcp/internal/core/domain"
)

// SearchService provides semantic search to external actors.
type SearchService interface {
	// Search validates req and forwards it to the search gateway.
	// Hit order in the response is the gateway's order.
	Search(ctx context.Context, req domain.SearchRequest) (*domain.SearchResponse, error)
}
