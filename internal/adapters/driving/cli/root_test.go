package cli

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/arke-mcp/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/arke-mcp/internal/core/services"
)

func TestRootCmd_Flags(t *testing.T) {
	for _, name := range []string{"verbose", "config-dir", "ephemeral"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), name)
	}
	assert.Equal(t, "v", rootCmd.PersistentFlags().Lookup("verbose").Shorthand)
}

func TestMCPServeCmd_HasHTTPFlag(t *testing.T) {
	flag := mcpServeCmd.Flags().Lookup("http")
	require.NotNil(t, flag)
	assert.Equal(t, "", flag.DefValue)
}

func TestOpenConfigStore_Ephemeral(t *testing.T) {
	ephemeral = true
	defer func() { ephemeral = false }()

	store, err := openConfigStore()

	require.NoError(t, err)
	assert.Equal(t, ":memory:", store.Path())
}

func TestOpenConfigStore_ConfigDir(t *testing.T) {
	dir := t.TempDir()
	configDir = dir
	defer func() { configDir = "" }()

	store, err := openConfigStore()

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "config.toml"), store.Path())
}

// withBareServices clears the wired services so ensureServices builds them.
func withBareServices(t *testing.T, initial map[string]any) {
	t.Helper()
	cleanup := setupTestServices()
	t.Cleanup(cleanup)

	settingsService = services.NewSettingsService(memory.NewConfigStore(initial))
	searchService, entityService, ocrService = nil, nil, nil
}

func TestEnsureServices_LoadsCatalogFromGateway(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/namespaces" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"namespaces": ["series", "fileUnit"]}`))
	}))
	defer srv.Close()

	withBareServices(t, map[string]any{
		"gateway.search_url": srv.URL,
		"gateway.api_url":    srv.URL,
		"gateway.ocr_url":    srv.URL,
		"viewer.base_url":    "https://viewer.example",
	})

	err := ensureServices(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, searchService)
	assert.NotNil(t, entityService)
	assert.NotNil(t, ocrService)
	assert.Equal(t, []string{"series", "fileUnit"}, toolConfig.Catalog.Namespaces())
	assert.Equal(t, "https://viewer.example", toolConfig.ViewerBaseURL)
}

func TestEnsureServices_FallsBackToConfiguredNamespaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	withBareServices(t, map[string]any{
		"gateway.search_url":  srv.URL,
		"gateway.max_retries": int64(0),
		"search.namespaces":   []string{"digitalObject"},
	})

	err := ensureServices(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"digitalObject"}, toolConfig.Catalog.Namespaces())
}

func TestEnsureServices_InvalidSettings(t *testing.T) {
	withBareServices(t, map[string]any{"gateway.search_url": "ftp://nope"})

	err := ensureServices(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid settings")
	assert.Nil(t, searchService)
}

func TestEnsureServices_KeepsWiredServices(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	before := searchService

	require.NoError(t, ensureServices(context.Background()))

	assert.Same(t, before, searchService)
}
