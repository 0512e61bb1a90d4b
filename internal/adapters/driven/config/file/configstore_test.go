package file

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
}

func TestNewConfigStore_DefaultDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := NewConfigStore("")

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(home, ".arke", "config.toml"), store.Path())
}

func TestConfigStore_SetAndGet(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	err = store.Set("gateway.search_url", "https://search.example")
	require.NoError(t, err)

	val, ok := store.Get("gateway.search_url")
	assert.True(t, ok)
	assert.Equal(t, "https://search.example", val)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("viewer.base_url", "https://arke.example"))
	require.NoError(t, store.Set("gateway.burst", int64(4)))
	require.NoError(t, store.Set("gateway.rate_per_second", 2.5))
	require.NoError(t, store.Set("search.namespaces", []string{"series", "fileUnit"}))

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"string", store.GetString("viewer.base_url"), "https://arke.example"},
		{"string wrong type", store.GetString("gateway.burst"), ""},
		{"string missing", store.GetString("nope"), ""},
		{"int", store.GetInt("gateway.burst"), 4},
		{"int wrong type", store.GetInt("viewer.base_url"), 0},
		{"float", store.GetFloat("gateway.rate_per_second"), 2.5},
		{"float from int", store.GetFloat("gateway.burst"), 4.0},
		{"float missing", store.GetFloat("nope"), 0.0},
		{"slice", store.GetStringSlice("search.namespaces"), []string{"series", "fileUnit"}},
		{"slice wrong type", store.GetStringSlice("viewer.base_url"), []string(nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestConfigStore_Get_NotFound(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	val, ok := store.Get("nonexistent")
	assert.False(t, ok)
	assert.Nil(t, val)
}

func TestConfigStore_Persistence(t *testing.T) {
	tmpDir := t.TempDir()

	store1, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	require.NoError(t, store1.Set("gateway.api_url", "https://api.example"))
	require.NoError(t, store1.Set("gateway.timeout_seconds", int64(45)))
	require.NoError(t, store1.Set("gateway.rate_per_second", 3.5))
	require.NoError(t, store1.Set("search.namespaces", []string{"series"}))
	require.NoError(t, store1.Set("log.level", "debug"))

	// Create new store instance - should load from file
	store2, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "https://api.example", store2.GetString("gateway.api_url"))
	assert.Equal(t, 45, store2.GetInt("gateway.timeout_seconds"))
	assert.InDelta(t, 3.5, store2.GetFloat("gateway.rate_per_second"), 1e-9)
	assert.Equal(t, []string{"series"}, store2.GetStringSlice("search.namespaces"))
	assert.Equal(t, "debug", store2.GetString("log.level"))
	assert.Equal(t, store1.Keys(), store2.Keys())
}

func TestConfigStore_WritesNestedTables(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("gateway.search_url", "https://search.example"))
	require.NoError(t, store.Set("log.level", "info"))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), "[gateway]")
	assert.Contains(t, string(data), "[log]")
	assert.NotContains(t, string(data), "gateway.search_url")
}

func TestConfigStore_ReadsHandWrittenFile(t *testing.T) {
	tmpDir := t.TempDir()
	content := []byte(`
[gateway]
search_url = "https://search.example"
burst = 8

[viewer]
base_url = "https://arke.example"
`)
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), content, 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "https://search.example", store.GetString("gateway.search_url"))
	assert.Equal(t, 8, store.GetInt("gateway.burst"))
	assert.Equal(t, []string{"gateway.burst", "gateway.search_url", "viewer.base_url"}, store.Keys())
}

func TestConfigStore_Set_KeyConflict(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("log.level", "info"))

	err = store.Set("log", "verbose")

	require.Error(t, err)
	_, ok := store.Get("log")
	assert.False(t, ok, "failed set must be rolled back")
	assert.Equal(t, "info", store.GetString("log.level"))
}

func TestConfigStore_Keys_Sorted(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("viewer.base_url", "https://a"))
	require.NoError(t, store.Set("gateway.burst", int64(1)))
	require.NoError(t, store.Set("log.level", "warn"))

	assert.Equal(t, []string{"gateway.burst", "log.level", "viewer.base_url"}, store.Keys())
}

func TestConfigStore_GetStringSlice_ReturnsCopy(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("search.namespaces", []string{"series"}))

	got := store.GetStringSlice("search.namespaces")
	got[0] = "mutated"

	assert.Equal(t, []string{"series"}, store.GetStringSlice("search.namespaces"))
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("log.level", "info"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_EmptyFile(t *testing.T) {
	tmpDir := t.TempDir()
	err := os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte("# Just a comment\n\n"), 0600)
	require.NoError(t, err)

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Empty(t, store.Keys())
}

func TestConfigStore_Concurrency(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			key := "worker.key" + string(rune('0'+i))
			_ = store.Set(key, int64(i))
			_ = store.GetInt(key)
			_ = store.GetFloat(key)
			_ = store.Keys()
		}()
	}
	wg.Wait()

	assert.Len(t, store.Keys(), 10)
}

func TestNewConfigStore_MkdirAllError(t *testing.T) {
	store, err := NewConfigStore("/dev/null/cannot/create/dirs")

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestNewConfigStore_LoadCorruptedFile(t *testing.T) {
	tmpDir := t.TempDir()
	err := os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte("this is not valid TOML {{{[["), 0600)
	require.NoError(t, err)

	store, err := NewConfigStore(tmpDir)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing")
	assert.Nil(t, store)
}

func TestConfigStore_Set_WriteFileError(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("log.level", "info"))

	// Replace the file with a directory to cause write error
	require.NoError(t, os.Remove(store.Path()))
	require.NoError(t, os.Mkdir(store.Path(), 0700))

	err = store.Set("viewer.base_url", "https://a")
	assert.Error(t, err)
	_, ok := store.Get("viewer.base_url")
	assert.False(t, ok)
}

func TestConfigStore_SetWithUnmarshallableValue(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	// Channels cannot be marshaled to TOML
	err = store.Set("channel", make(chan int))

	assert.Error(t, err)
}

func TestNewConfigStore_WithNestedDirectory(t *testing.T) {
	nestedPath := filepath.Join(t.TempDir(), "nested", "deep", "path")

	store, err := NewConfigStore(nestedPath)

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(nestedPath, "config.toml"), store.Path())

	info, err := os.Stat(nestedPath)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, os.FileMode(0700), info.Mode().Perm())
}

func TestUnflattenMap(t *testing.T) {
	tree, err := unflattenMap(map[string]any{
		"gateway.search_url": "s",
		"gateway.burst":      int64(2),
		"top":                "t",
	})

	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"gateway": map[string]any{"search_url": "s", "burst": int64(2)},
		"top":     "t",
	}, tree)
	assert.Equal(t, map[string]any{
		"gateway.search_url": "s",
		"gateway.burst":      int64(2),
		"top":                "t",
	}, flattenMap(tree, ""))
}
