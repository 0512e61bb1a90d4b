package render

import (
	"strconv"

	"github.com/mitchellh/mapstructure"

	"github.com/custodia-labs/arke-mcp/internal/core/domain"
)

// decodeView fills out from the semi-structured input. Fields that do not
// match the expected shape are left zero; the rest are still decoded.
func decodeView(input, out any) bool {
	if input == nil {
		return false
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return false
	}
	// A partial decode still yields every field that matched.
	_ = dec.Decode(input)
	return true
}

func rankingView(hit *domain.RankedHit) domain.RankingMetadata {
	var m domain.RankingMetadata
	if hit.Metadata != nil {
		decodeView(hit.Metadata, &m)
	}
	return m
}

func recordView(v any) (domain.CatalogRecord, bool) {
	var r domain.CatalogRecord
	if _, ok := v.(map[string]any); !ok {
		return r, false
	}
	ok := decodeView(v, &r)
	return r, ok
}

// yearOf returns the first four digits of a packed YYYYMMDD date, or "?".
func yearOf(packed *int64) string {
	if packed == nil {
		return "?"
	}
	s := strconv.FormatInt(*packed, 10)
	if len(s) > 4 {
		s = s[:4]
	}
	return s
}
