package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_FileThenEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 8081
  env: production
database:
  url: postgres://file
enrichment:
  timeout: 5s
`), 0o644))

	t.Setenv("CONFIG_PATH", path)
	t.Setenv("DATABASE_URL", "postgres://env")
	t.Setenv("ENRICHMENT_ALLOWED_RESUME_HOSTS", "cdn.example.com,files.example.com")

	AppConfig = nil
	cfg := GetConfig()

	assert.Equal(t, 8081, cfg.Server.Port)
	assert.Equal(t, "production", cfg.Server.Env)
	assert.Equal(t, "postgres://env", cfg.Database.DSN)
	assert.Equal(t, 5*time.Second, cfg.Enrichment.Timeout)
	assert.Equal(t, "local", cfg.Storage.Type)
	assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, []string{"cdn.example.com", "files.example.com"}, cfg.Enrichment.AllowedResumeHosts)
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "absent.yaml"))

	AppConfig = nil
	cfg := GetConfig()

	assert.Equal(t, 4000, cfg.Server.Port)
	assert.Equal(t, "development", cfg.Server.Env)
	assert.Equal(t, "gemini-2.5-flash", cfg.Enrichment.Model)
	assert.Equal(t, time.Hour, cfg.Workers.PositionCloseInterval)
}
