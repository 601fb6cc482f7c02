package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, "stdio", cfg.Server.Transport)
	assert.Equal(t, "localhost:9000", cfg.Storage.Endpoint)
	assert.Equal(t, 6334, cfg.Vector.Port)
}

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.Server.LogLevel)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[server]
log_level = "debug"

[storage]
endpoint = "minio.example.com:9000"
access_key = "ak"
secret_key = "sk"
use_ssl = true

[vector]
host = "qdrant.example.com"
port = 7001
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, "minio.example.com:9000", cfg.Storage.Endpoint)
	assert.True(t, cfg.Storage.UseSSL)
	assert.Equal(t, "qdrant.example.com", cfg.Vector.Host)
	assert.Equal(t, 7001, cfg.Vector.Port)

	// Untouched sections keep their defaults.
	assert.Equal(t, "http://localhost:7860", cfg.Flow.BaseURL)
}

func TestLoadInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("not [valid toml"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("MCP_ADAPTERS_LOG_LEVEL", "trace")
	t.Setenv("MCP_ADAPTERS_STORAGE_USE_SSL", "true")
	t.Setenv("MCP_ADAPTERS_VECTOR_PORT", "9999")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "trace", cfg.Server.LogLevel)
	assert.True(t, cfg.Storage.UseSSL)
	assert.Equal(t, 9999, cfg.Vector.Port)
}
