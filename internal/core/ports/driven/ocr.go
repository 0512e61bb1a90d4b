package driven

import (
	"context"

	"github.com/custodia-labs/arke-mcp/internal/core/domain"
)

// OCRGateway extracts text from digitised entities.
type OCRGateway interface {
	// Extract processes a single entity.
	Extract(ctx context.Context, pi string, req domain.OCRRequest) (*domain.OCRResult, error)

	// ExtractBatch processes several entities in one call.
	ExtractBatch(ctx context.Context, req domain.OCRRequest) (*domain.OCRBatch, error)
}
