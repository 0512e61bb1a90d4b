package services

import (
	"context"

	"github.com/custodia-labs/arke-mcp/internal/core/domain"
	"github.com/custodia-labs/arke-mcp/internal/core/ports/driven"
	"github.com/custodia-labs/arke-mcp/internal/logger"
)

// LoadCatalog asks the search gateway for its namespaces once, at start-up.
// If the gateway cannot answer, or answers with nothing, the fallback list
// is used instead. The returned Catalog is never modified afterwards.
func LoadCatalog(ctx context.Context, gateway driven.SearchGateway, fallback []string) domain.Catalog {
	if gateway != nil {
		namespaces, err := gateway.Namespaces(ctx)
		switch {
		case err != nil:
			logger.Warn("Could not list namespaces, using configured defaults: %v", err)
		case len(namespaces) == 0:
			logger.Warn("Search gateway listed no namespaces, using configured defaults")
		default:
			catalog := domain.NewCatalog(namespaces)
			logger.Debug("Namespace catalog: %v", catalog.Namespaces())
			return catalog
		}
	}

	if len(fallback) == 0 {
		fallback = domain.DefaultNamespaces()
	}
	return domain.NewCatalog(fallback)
}
