package driven

import (
	"context"

	"github.com/custodia-labs/arke-mcp/internal/core/domain"
)

// EntityStore retrieves entity manifests and content-addressed components.
type EntityStore interface {
	// GetManifest fetches the current manifest for pi.
	GetManifest(ctx context.Context, pi string) (*domain.ManifestResponse, error)

	// GetContent fetches and parses the JSON stored at cid.
	// Numbers are preserved as json.Number.
	GetContent(ctx context.Context, cid string) (any, error)
}
