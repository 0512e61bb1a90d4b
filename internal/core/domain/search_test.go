package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchRequest_MarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		req  SearchRequest
		want string
	}{
		{
			name: "all fields",
			req:  SearchRequest{Query: "apollo", TopK: 5, Namespaces: []string{NamespaceSeries}},
			want: `{"query":"apollo","top_k":5,"namespaces":["series"]}`,
		},
		{
			name: "optional fields omitted",
			req:  SearchRequest{Query: "apollo"},
			want: `{"query":"apollo"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.req)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(data))
		})
	}
}

func TestSearchResponse_Unmarshal(t *testing.T) {
	body := `{
		"query": "moon landing",
		"namespaces": ["fileUnit"],
		"total_results": 2,
		"took_ms": 41,
		"results": [
			{
				"score": 0.91,
				"pi": "01A",
				"type": "fileUnit",
				"metadata": {"nara_naId": 123, "extra": "kept"},
				"manifest": {"pi": "01A", "ver": 2, "components": {"catalog_record": "bafyC"}},
				"resolved_metadata": {"title": "Moon"},
				"resolved_metadata_cid": "bafyC"
			},
			{"score": 0.5, "pi": "01B", "type": "series"}
		]
	}`

	var resp SearchResponse
	require.NoError(t, json.Unmarshal([]byte(body), &resp))

	assert.Equal(t, "moon landing", resp.Query)
	assert.Equal(t, 2, resp.TotalResults)
	require.NotNil(t, resp.TookMS)
	assert.Equal(t, 41, *resp.TookMS)
	require.Len(t, resp.Results, 2)

	first := resp.Results[0]
	assert.Equal(t, "01A", first.PI)
	assert.InDelta(t, 0.91, first.Score, 1e-9)
	assert.Equal(t, "kept", first.Metadata["extra"])
	require.NotNil(t, first.Manifest)
	assert.Equal(t, "bafyC", first.Manifest.Components[CatalogRecordComponent])
	assert.Equal(t, "bafyC", first.ResolvedMetadataCID)

	second := resp.Results[1]
	assert.Nil(t, second.Manifest)
	assert.Nil(t, second.ResolvedMetadata)
	assert.Nil(t, resp.Results[1].Metadata)
}

func TestSearchResponse_PreservesOrder(t *testing.T) {
	body := `{"results": [{"score": 0.1, "pi": "low"}, {"score": 0.9, "pi": "high"}]}`

	var resp SearchResponse
	require.NoError(t, json.Unmarshal([]byte(body), &resp))

	assert.Equal(t, "low", resp.Results[0].PI)
	assert.Equal(t, "high", resp.Results[1].PI)
	assert.Nil(t, resp.TookMS)
}

func TestRankedHit_MarshalJSON(t *testing.T) {
	t.Run("raw object is written as received", func(t *testing.T) {
		hit := RankedHit{
			Score: 0.5,
			PI:    "01A",
			Raw: map[string]any{
				"score":    json.Number("0.5"),
				"pi":       "01A",
				"chunk_id": "c-7",
				"manifest": map[string]any{"pi": "01A", "created_by": "ingest"},
			},
		}
		data, err := json.Marshal(hit)
		require.NoError(t, err)
		assert.JSONEq(t, `{
			"score": 0.5,
			"pi": "01A",
			"chunk_id": "c-7",
			"manifest": {"pi": "01A", "created_by": "ingest"}
		}`, string(data))
	})

	t.Run("typed fields without raw", func(t *testing.T) {
		hit := RankedHit{Score: 0.25, PI: "01B", Type: NamespaceSeries}
		data, err := json.Marshal(hit)
		require.NoError(t, err)
		assert.JSONEq(t, `{"score": 0.25, "pi": "01B", "type": "series"}`, string(data))
	})
}
