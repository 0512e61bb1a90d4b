// Package domain defines the core business entities for the Arke MCP server.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - RankedHit: One match returned by the semantic search gateway
//   - Manifest: Versioned descriptor of an entity's components
//   - ResolvedEntity: A Manifest plus every fetched component
//   - OCRResult: Tagged success or failure from the OCR service
//   - Catalog: The immutable list of searchable namespaces
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
