// Package mcp provides an MCP (Model Context Protocol) server adapter for
// the Arke archive. It exposes search, entity resolution and OCR as tools
// for AI assistants.
package mcp

import "errors"

var (
	// ErrMissingSearchService is returned when the search service is not provided.
	ErrMissingSearchService = errors.New("mcp: search service is required")

	// ErrMissingEntityService is returned when the entity service is not provided.
	ErrMissingEntityService = errors.New("mcp: entity service is required")

	// ErrMissingOCRService is returned when the OCR service is not provided.
	ErrMissingOCRService = errors.New("mcp: ocr service is required")
)
