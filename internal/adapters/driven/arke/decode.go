package arke

import (
	"github.com/mitchellh/mapstructure"

	"github.com/custodia-labs/arke-mcp/internal/core/domain"
	"github.com/custodia-labs/arke-mcp/internal/logger"
)

// searchEnvelope is the typed view over a search response. Results stay
// generic so each hit is decoded on its own.
type searchEnvelope struct {
	Query        string   `mapstructure:"query"`
	Namespaces   []string `mapstructure:"namespaces"`
	TotalResults int      `mapstructure:"total_results"`
	TookMS       *int     `mapstructure:"took_ms"`
	Results      []any    `mapstructure:"results"`
}

// decodeLenient fills out from a generic JSON value. Fields that cannot be
// converted are left at their zero value; the rest are still decoded.
func decodeLenient(op string, input, out any) {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return
	}
	if err := dec.Decode(input); err != nil {
		logger.Debug("%s: partial decode: %v", op, err)
	}
}

// searchResponseFromRaw builds a SearchResponse from the decoded body.
// A hit with a malformed field loses only that field.
func searchResponseFromRaw(raw map[string]any) *domain.SearchResponse {
	var env searchEnvelope
	decodeLenient("search", raw, &env)

	resp := &domain.SearchResponse{
		Query:        env.Query,
		Namespaces:   env.Namespaces,
		TotalResults: env.TotalResults,
		TookMS:       env.TookMS,
		Results:      make([]domain.RankedHit, 0, len(env.Results)),
	}
	for i, item := range env.Results {
		obj, ok := item.(map[string]any)
		if !ok {
			logger.Warn("search: result %d is not an object, skipping", i)
			continue
		}
		resp.Results = append(resp.Results, hitFromRaw(obj))
	}
	return resp
}

// hitFromRaw reads the typed fields of one hit and keeps the object as sent.
func hitFromRaw(raw map[string]any) domain.RankedHit {
	var hit domain.RankedHit
	decodeLenient("search hit", raw, &hit)
	hit.Raw = raw

	// A bad nested field would drop the whole manifest pointer, so the
	// manifest is decoded separately.
	hit.Manifest = nil
	if obj, ok := raw["manifest"].(map[string]any); ok {
		m := manifestFromRaw(obj)
		hit.Manifest = &m
	}
	return hit
}

// manifestFromRaw reads the typed fields of a manifest object.
func manifestFromRaw(raw map[string]any) domain.Manifest {
	var m domain.Manifest
	decodeLenient("manifest", raw, &m)
	m.Raw = raw
	return m
}

// manifestResponseFromRaw splits an entity response into its manifest
// and the resolved catalog record.
func manifestResponseFromRaw(raw map[string]any) *domain.ManifestResponse {
	resp := &domain.ManifestResponse{
		Manifest: manifestFromRaw(raw),
		Metadata: raw["metadata"],
	}
	if cid, ok := raw["metadata_cid"].(string); ok {
		resp.MetadataCID = cid
	}
	return resp
}
