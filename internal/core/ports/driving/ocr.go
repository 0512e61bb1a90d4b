package driving

import (
	"context"

	"github.com/custodia-labs/arke-mcp/internal/core/domain"
)

// OCRService extracts text from digitised entities.
type OCRService interface {
	// Extract runs OCR for a single entity.
	Extract(ctx context.Context, pi string, force bool) (*domain.OCRResult, error)

	// ExtractBatch runs OCR for several entities.
	ExtractBatch(ctx context.Context, pis []string, force bool) (*domain.OCRBatch, error)
}
