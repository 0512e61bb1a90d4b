package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/custodia-labs/arke-mcp/internal/core/domain"
	"github.com/custodia-labs/arke-mcp/internal/core/ports/driven"
	"github.com/custodia-labs/arke-mcp/internal/core/ports/driving"
	"github.com/custodia-labs/arke-mcp/internal/logger"
	"github.com/custodia-labs/arke-mcp/internal/metrics"
)

// Ensure EntityService implements the interface.
var _ driving.EntityService = (*EntityService)(nil)

// EntityService resolves entities: the manifest first, then every named
// component fetched in parallel from the content store.
type EntityService struct {
	store driven.EntityStore
}

// NewEntityService creates a new entity service.
func NewEntityService(store driven.EntityStore) *EntityService {
	return &EntityService{store: store}
}

// componentOutcome is what one component branch reports back to the join.
type componentOutcome struct {
	name   string
	cid    string
	result domain.ComponentResult
}

// Resolve fetches the manifest for pi and all of its components.
// Only a manifest failure is returned as an error; component failures are
// recorded in ComponentData.
func (s *EntityService) Resolve(ctx context.Context, pi string) (*domain.ResolvedEntity, error) {
	pi = strings.TrimSpace(pi)
	if pi == "" {
		return nil, domain.NewValidationError("pi", "identifier must not be empty", "")
	}

	start := time.Now()
	logger.Debug("Resolving entity %s", pi)

	resp, err := s.store.GetManifest(ctx, pi)
	if err != nil {
		logger.Warn("Manifest fetch failed for %s: %v", pi, err)
		return nil, &domain.ManifestFetchError{PI: pi, Err: err}
	}

	entity := &domain.ResolvedEntity{
		Manifest:             resp.Manifest,
		CanonicalMetadata:    resp.Metadata,
		CanonicalMetadataCID: resp.MetadataCID,
		ComponentData:        make(map[string]domain.ComponentResult, len(resp.Components)),
	}

	names := make([]string, 0, len(resp.Components))
	for name := range resp.Components {
		names = append(names, name)
	}
	sort.Strings(names)

	outcomes := gatherAll(names, func(name string) componentOutcome {
		return s.fetchComponent(ctx, name, resp.Components[name])
	})

	// Merge after the join; the catalog record only fills an empty slot.
	for _, o := range outcomes {
		entity.ComponentData[o.name] = o.result
		if o.name == domain.CatalogRecordComponent && !o.result.Failed() && entity.CanonicalMetadata == nil {
			entity.CanonicalMetadata = o.result.Value
			entity.CanonicalMetadataCID = o.cid
		}
	}

	if failed := entity.FailedComponents(); len(failed) > 0 {
		logger.Warn("Entity %s: %d of %d components failed: %s",
			pi, len(failed), len(names), strings.Join(failed, ", "))
	}
	logger.Debug("Resolved entity %s (%d components) in %s",
		pi, len(names), time.Since(start).Round(time.Millisecond))

	return entity, nil
}

// fetchComponent fetches one component. It never fails; errors become a
// Failed result.
func (s *EntityService) fetchComponent(ctx context.Context, name, cid string) componentOutcome {
	value, err := s.store.GetContent(ctx, cid)
	if err != nil {
		metrics.ComponentFetchFailures.WithLabelValues(name).Inc()
		logger.Debug("Component %q (%s) failed: %v", name, cid, err)
		return componentOutcome{
			name: name,
			cid:  cid,
			result: domain.ComponentFailure(&domain.ComponentFetchError{
				Component: name,
				ContentID: cid,
				Err:       err,
			}),
		}
	}
	return componentOutcome{name: name, cid: cid, result: domain.ComponentValue(value)}
}

// ResolveMany resolves every PI in parallel. The result preserves input
// order. Any manifest failure fails the whole batch.
func (s *EntityService) ResolveMany(ctx context.Context, pis []string) ([]*domain.ResolvedEntity, error) {
	if len(pis) == 0 {
		return []*domain.ResolvedEntity{}, nil
	}
	if len(pis) > domain.MaxEntitiesPerRequest {
		return nil, domain.NewValidationError("pis",
			fmt.Sprintf("at most %d identifiers per request, got %d", domain.MaxEntitiesPerRequest, len(pis)),
			"Split the identifiers into smaller batches.")
	}

	logger.Section("Resolve Entities")
	entities, err := gatherOrFail(pis, func(pi string) (*domain.ResolvedEntity, error) {
		return s.Resolve(ctx, pi)
	})
	if err != nil {
		return nil, err
	}
	logger.Info("Resolved %d entities", len(entities))
	return entities, nil
}
