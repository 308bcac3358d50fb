package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "render", cfg.Storage.Bucket)
	assert.Equal(t, 3306, cfg.Database.Port)
	assert.Equal(t, "svg", cfg.Engine.SVGTag)
	assert.True(t, cfg.Engine.LogPasses)
	assert.Zero(t, cfg.Engine.BatchSize)
}

func TestLoadConfig_Environment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9999")
	t.Setenv("ENGINE_SVG_TAG", "math")
	t.Setenv("ENGINE_BATCH_SIZE", "16")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "9999", cfg.Server.Port)
	assert.Equal(t, "math", cfg.Engine.SVGTag)
	assert.Equal(t, 16, cfg.Engine.BatchSize)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, ".env"), []byte("LOG_LEVEL=debug\nSTORAGE_BUCKET=fixtures\n"), 0o600)
	require.NoError(t, err)
	t.Cleanup(func() {
		os.Unsetenv("LOG_LEVEL")
		os.Unsetenv("STORAGE_BUCKET")
	})

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "fixtures", cfg.Storage.Bucket)
}

func TestLoadConfig_Invalid(t *testing.T) {
	t.Run("LogFormat", func(t *testing.T) {
		t.Setenv("LOG_FORMAT", "xml")
		_, err := LoadConfig(t.TempDir())
		assert.Error(t, err)
	})

	t.Run("BatchSize", func(t *testing.T) {
		t.Setenv("ENGINE_BATCH_SIZE", "-1")
		_, err := LoadConfig(t.TempDir())
		assert.Error(t, err)
	})
}
