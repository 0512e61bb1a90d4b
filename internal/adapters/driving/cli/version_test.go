package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCmd_Output(t *testing.T) {
	tests := []struct {
		name    string
		version string
		want    string
	}{
		{name: "default build", version: "dev", want: "arke-mcp version dev\n"},
		{name: "release build", version: "1.4.2", want: "arke-mcp version 1.4.2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cleanup := setupTestServices()
			defer cleanup()

			original := version
			version = tt.version
			defer func() { version = original }()

			out, err := runRoot(t, "version")

			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestVersionCmd_SkipsConfig(t *testing.T) {
	// A config dir nested under a regular file can never be opened.
	blocker := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	savedStore, savedSettings := configStore, settingsService
	configStore, settingsService = nil, nil
	savedDir, savedEphemeral := configDir, ephemeral
	ephemeral = false
	defer func() {
		configStore, settingsService = savedStore, savedSettings
		configDir, ephemeral = savedDir, savedEphemeral
	}()

	dir := filepath.Join(blocker, "arke")

	// Any command that loads settings fails on this dir.
	_, err := runRoot(t, "--config-dir", dir, "config", "path")
	require.Error(t, err)

	out, err := runRoot(t, "--config-dir", dir, "version")

	require.NoError(t, err)
	assert.Contains(t, out, "arke-mcp version ")
	assert.Nil(t, configStore)
	assert.Nil(t, settingsService)
}
