package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/custodia-labs/arke-mcp/internal/core/domain"
	"github.com/custodia-labs/arke-mcp/internal/core/ports/driven"
	"github.com/custodia-labs/arke-mcp/internal/core/ports/driving"
	"github.com/custodia-labs/arke-mcp/internal/logger"
)

// Ensure OCRService implements the interface.
var _ driving.OCRService = (*OCRService)(nil)

// OCRService runs text extraction through the OCR gateway.
type OCRService struct {
	gateway driven.OCRGateway
}

// NewOCRService creates a new OCR service.
func NewOCRService(gateway driven.OCRGateway) *OCRService {
	return &OCRService{gateway: gateway}
}

// Extract runs OCR for one entity.
func (s *OCRService) Extract(ctx context.Context, pi string, force bool) (*domain.OCRResult, error) {
	pi = strings.TrimSpace(pi)
	if pi == "" {
		return nil, domain.NewValidationError("pi", "identifier must not be empty", "")
	}

	start := time.Now()
	result, err := s.gateway.Extract(ctx, pi, domain.OCRRequest{
		PIs:            []string{pi},
		ForceReprocess: force,
	})
	if err != nil {
		logger.Warn("OCR failed for %s: %v", pi, err)
		return nil, fmt.Errorf("ocr %s: %w", pi, err)
	}

	fillElapsed(result, time.Since(start))
	logger.Info("OCR for %s finished in %s (ok=%t)", pi, time.Since(start).Round(time.Millisecond), result.OK())
	return result, nil
}

// ExtractBatch runs OCR for up to MaxEntitiesPerRequest entities in one call.
func (s *OCRService) ExtractBatch(ctx context.Context, pis []string, force bool) (*domain.OCRBatch, error) {
	cleaned, err := cleanPIs(pis)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	batch, err := s.gateway.ExtractBatch(ctx, domain.OCRRequest{
		PIs:            cleaned,
		ForceReprocess: force,
	})
	if err != nil {
		logger.Warn("Batch OCR failed: %v", err)
		return nil, fmt.Errorf("ocr batch: %w", err)
	}

	elapsed := time.Since(start)
	if batch.ElapsedMS == 0 {
		batch.ElapsedMS = elapsed.Milliseconds()
	}
	logger.Info("Batch OCR: %d of %d succeeded in %s", batch.Succeeded(), len(batch.Results), elapsed.Round(time.Millisecond))
	return batch, nil
}

// fillElapsed records the client-side time when the gateway reported none.
func fillElapsed(r *domain.OCRResult, elapsed time.Duration) {
	switch {
	case r.Success != nil && r.Success.ElapsedMS == 0:
		r.Success.ElapsedMS = elapsed.Milliseconds()
	case r.Failure != nil && r.Failure.ElapsedMS == 0:
		r.Failure.ElapsedMS = elapsed.Milliseconds()
	}
}

// cleanPIs trims identifiers and enforces the per-request bounds.
func cleanPIs(pis []string) ([]string, error) {
	if len(pis) == 0 {
		return nil, domain.NewValidationError("pis", "at least one identifier is required", "")
	}
	if len(pis) > domain.MaxEntitiesPerRequest {
		return nil, domain.NewValidationError("pis",
			fmt.Sprintf("at most %d identifiers per request, got %d", domain.MaxEntitiesPerRequest, len(pis)),
			"Split the identifiers into smaller batches.")
	}

	out := make([]string, len(pis))
	for i, pi := range pis {
		out[i] = strings.TrimSpace(pi)
		if out[i] == "" {
			return nil, domain.NewValidationError("pis",
				fmt.Sprintf("identifier %d is empty", i+1), "")
		}
	}
	return out, nil
}
