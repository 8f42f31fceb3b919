package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docqa-cli/internal/core/domain"
)

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
}

func TestConfigStore_SetAndGet(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	// Set a string value
	err = store.Set("test_key", "test_value")
	require.NoError(t, err)

	// Get it back
	val, ok := store.Get("test_key")
	assert.True(t, ok)
	assert.Equal(t, "test_value", val)
}

func TestConfigStore_GetString(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	err = store.Set("string_key", "hello world")
	require.NoError(t, err)

	assert.Equal(t, "hello world", store.GetString("string_key"))
	assert.Equal(t, "", store.GetString("missing_key"))
}

func TestConfigStore_GetInt(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("int_key", 42))

	assert.Equal(t, 42, store.GetInt("int_key"))
	assert.Equal(t, 0, store.GetInt("missing_key"))
}

func TestConfigStore_GetBool(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("bool_key", true))

	assert.True(t, store.GetBool("bool_key"))
	assert.False(t, store.GetBool("missing_key"))
}

func TestConfigStore_PersistsAcrossLoads(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	require.NoError(t, store.Set(KeyWatchDirectory, "/data/docs"))

	reopened, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, "/data/docs", reopened.GetString(KeyWatchDirectory))
}

func TestConfigStore_FlattensNestedTOML(t *testing.T) {
	tmpDir := t.TempDir()

	config := `[completion]
provider = "ollama"
model = "llama3.2"

[watch]
directory = "/data/docs"
`
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(config), 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "ollama", store.GetString(KeyCompletionProvider))
	assert.Equal(t, "llama3.2", store.GetString(KeyCompletionModel))
	assert.Equal(t, "/data/docs", store.GetString(KeyWatchDirectory))
}

func TestConfigStore_CompletionSettings(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set(KeyCompletionProvider, "anthropic"))
	require.NoError(t, store.Set(KeyCompletionAPIKey, "file-key"))
	require.NoError(t, store.Set(KeyCompletionModel, "claude-3-5-sonnet-latest"))

	t.Setenv("ANTHROPIC_API_KEY", "")
	settings := store.CompletionSettings()
	assert.Equal(t, domain.AIProviderAnthropic, settings.Provider)
	assert.Equal(t, "file-key", settings.APIKey)
	assert.True(t, settings.IsConfigured())
}

func TestConfigStore_CompletionSettings_EnvOverridesFile(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set(KeyCompletionProvider, "anthropic"))
	require.NoError(t, store.Set(KeyCompletionAPIKey, "file-key"))

	t.Setenv("ANTHROPIC_API_KEY", "env-key")
	settings := store.CompletionSettings()
	assert.Equal(t, "env-key", settings.APIKey)
}

func TestConfigStore_UnconfiguredCompletion(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	t.Setenv("ANTHROPIC_API_KEY", "")
	settings := store.CompletionSettings()
	assert.False(t, settings.IsConfigured())
}
