package mcp

import (
	"github.com/custodia-labs/arke-mcp/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Search runs semantic searches.
	Search driving.SearchService

	// Entity resolves entities and their components.
	Entity driving.EntityService

	// OCR extracts text from digitised entities.
	OCR driving.OCRService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	if p.Entity == nil {
		return ErrMissingEntityService
	}
	if p.OCR == nil {
		return ErrMissingOCRService
	}
	return nil
}
