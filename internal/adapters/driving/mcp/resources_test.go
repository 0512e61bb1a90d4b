package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/arke-mcp/internal/core/domain"
)

func TestExtractEntityPI(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected string
	}{
		{"valid entity URI", "arke://entities/01ABC", "01ABC"},
		{"escaped PI", "arke://entities/a%20b", "a b"},
		{"invalid prefix", "file://entities/01ABC", ""},
		{"nested path", "arke://entities/01ABC/extra", ""},
		{"missing PI", "arke://entities/", ""},
		{"empty URI", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractEntityPI(tt.uri))
		})
	}
}

// Helper to create a ReadResourceRequest with the given URI.
func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func TestServer_handleNamespacesResource(t *testing.T) {
	server, _, _, _ := newTestServer(t)

	result, err := server.handleNamespacesResource(context.Background(), makeReadResourceRequest("arke://namespaces"))

	require.NoError(t, err)
	require.Len(t, result.Contents, 1)
	assert.Equal(t, "application/json", result.Contents[0].MIMEType)
	assert.JSONEq(t, `{"namespaces": ["series", "fileUnit", "digitalObject"]}`, result.Contents[0].Text)
}

func TestServer_handleEntityResource(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the resolved entity", func(t *testing.T) {
		server, _, entity, _ := newTestServer(t)
		entity.entities["01A"] = &domain.ResolvedEntity{
			Manifest:      domain.Manifest{PI: "01A", Components: map[string]string{"pinax": "bafyP"}},
			ComponentData: map[string]domain.ComponentResult{"pinax": domain.ComponentValue("x")},
		}

		result, err := server.handleEntityResource(ctx, makeReadResourceRequest("arke://entities/01A"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		var dumped map[string]any
		require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &dumped))
		assert.Equal(t, "01A", dumped["pi"])
		assert.Equal(t, map[string]any{"pinax": "x"}, dumped["component_data"])
	})

	t.Run("unknown entity is not found", func(t *testing.T) {
		server, _, _, _ := newTestServer(t)

		_, err := server.handleEntityResource(ctx, makeReadResourceRequest("arke://entities/01GONE"))

		require.Error(t, err)
		assert.NotContains(t, err.Error(), "resolving entity")
	})

	t.Run("malformed URI is not found", func(t *testing.T) {
		server, _, entity, _ := newTestServer(t)

		_, err := server.handleEntityResource(ctx, makeReadResourceRequest("arke://entities/"))

		require.Error(t, err)
		assert.Equal(t, 0, entity.calls)
	})

	t.Run("other failures are wrapped", func(t *testing.T) {
		server, _, entity, _ := newTestServer(t)
		entity.err = errors.New("timeout")

		_, err := server.handleEntityResource(ctx, makeReadResourceRequest("arke://entities/01A"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "resolving entity: timeout")
	})
}
