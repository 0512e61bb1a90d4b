package domain

import "encoding/json"

// Namespace tags for the coarse entity kinds in the archive.
const (
	NamespaceInstitution   = "institution"
	NamespaceCollection    = "collection"
	NamespaceSeries        = "series"
	NamespaceFileUnit      = "fileUnit"
	NamespaceDigitalObject = "digitalObject"
)

// Bounds on the number of results the search gateway accepts.
const (
	MinTopK = 1
	MaxTopK = 100
)

// SearchRequest is a free-text query against the semantic search gateway.
type SearchRequest struct {
	// Query is the natural-language query.
	Query string `json:"query"`

	// TopK is the number of results to return.
	TopK int `json:"top_k,omitempty"`

	// Namespaces restricts the search to these category tags.
	// Empty means every namespace.
	Namespaces []string `json:"namespaces,omitempty"`
}

// SearchResponse is the gateway's answer to a SearchRequest.
type SearchResponse struct {
	Query        string      `json:"query"`
	Namespaces   []string    `json:"namespaces"`
	TotalResults int         `json:"total_results"`
	Results      []RankedHit `json:"results"`

	// TookMS is the server-side search time, when reported.
	TookMS *int `json:"took_ms,omitempty"`
}

// RankedHit represents a single search match.
// The order of hits in a SearchResponse is authoritative; Score is never
// recomputed downstream.
type RankedHit struct {
	// Score is the similarity score in [0, 1], higher is better.
	Score float64 `json:"score" mapstructure:"score"`

	// PI is the entity's persistent identifier.
	PI string `json:"pi" mapstructure:"pi"`

	// Type is the namespace tag of the matched entity.
	Type string `json:"type" mapstructure:"type"`

	// Metadata is the ranking metadata stored alongside the vector.
	// Known keys are read through RankingMetadata; all keys pass through.
	Metadata map[string]any `json:"metadata,omitempty" mapstructure:"metadata"`

	// Manifest is the entity manifest at indexing time.
	Manifest *Manifest `json:"manifest,omitempty" mapstructure:"manifest"`

	// ResolvedMetadata is the catalog record, when the gateway resolved it.
	ResolvedMetadata any `json:"resolved_metadata,omitempty" mapstructure:"resolved_metadata"`

	// ResolvedMetadataCID is the content id of ResolvedMetadata.
	ResolvedMetadataCID string `json:"resolved_metadata_cid,omitempty" mapstructure:"resolved_metadata_cid"`

	// Raw is the hit object the gateway sent, unknown keys included.
	// When set, Raw is what gets marshalled.
	Raw map[string]any `json:"-" mapstructure:"-"`
}

type plainHit RankedHit

// MarshalJSON writes Raw when present, otherwise the typed fields.
func (h RankedHit) MarshalJSON() ([]byte, error) {
	if h.Raw != nil {
		return json.Marshal(h.Raw)
	}
	return json.Marshal(plainHit(h))
}

// RankingMetadata is a typed view over the well-known keys of
// RankedHit.Metadata. Dates are packed YYYYMMDD integers.
type RankingMetadata struct {
	Type        string   `mapstructure:"type"`
	NativeID    *int64   `mapstructure:"nara_naId"`
	StartDate   *int64   `mapstructure:"start_date"`
	EndDate     *int64   `mapstructure:"end_date"`
	Ancestry    []string `mapstructure:"ancestry"`
	LastUpdated string   `mapstructure:"last_updated"`
}
