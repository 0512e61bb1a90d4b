package driving

import (
	"context"

	"github.com/custodia-labs/arke-mcp/internal/core/domain"
)

// EntityService resolves entities into their full component view.
type EntityService interface {
	// Resolve fetches pi's manifest and every component it declares.
	// Only a manifest failure is returned as an error; component failures
	// are recorded in ResolvedEntity.ComponentData.
	Resolve(ctx context.Context, pi string) (*domain.ResolvedEntity, error)

	// ResolveMany resolves every pi concurrently, preserving input order.
	// Any manifest failure fails the whole batch.
	ResolveMany(ctx context.Context, pis []string) ([]*domain.ResolvedEntity, error)
}
