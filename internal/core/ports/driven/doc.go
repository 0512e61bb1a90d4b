// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Interfaces
//
//   - SearchGateway: Semantic search over the archive's vector index
//   - EntityStore: Manifest and content-addressed component retrieval
//   - OCRGateway: Text extraction for digitised material
//   - ConfigStore: Application configuration
//
// Each remote call is a single attempt from the core's point of view.
// Timeouts, throttling and retries belong to the adapter.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
