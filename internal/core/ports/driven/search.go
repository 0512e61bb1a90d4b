package driven

import (
	"context"

	"github.com/custodia-labs/arke-mcp/internal/core/domain"
)

// SearchGateway provides semantic search over the archive.
type SearchGateway interface {
	// Search runs a free-text query and returns ranked hits in gateway order.
	Search(ctx context.Context, req domain.SearchRequest) (*domain.SearchResponse, error)

	// Namespaces lists the category tags the gateway can filter on.
	Namespaces(ctx context.Context) ([]string, error)
}
