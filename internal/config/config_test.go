package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, `
api:
  base_url: http://backend.local/api
audit:
  path: `+filepath.Join(t.TempDir(), "audit", "trail.db")+`
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "roomdesk_session", cfg.Server.CookieName)
	assert.Equal(t, 10*time.Second, cfg.APITimeout())
	assert.Equal(t, 12*time.Hour, cfg.SessionTTL())
	assert.Equal(t, time.Duration(0), cfg.CacheTTL())
}

func TestLoadExpandsEnv(t *testing.T) {
	t.Setenv("ROOMDESK_TEST_API_URL", "http://expanded.local")

	path := writeConfig(t, `
api:
  base_url: ${ROOMDESK_TEST_API_URL}
  timeout_seconds: 3
audit:
  path: `+filepath.Join(t.TempDir(), "trail.db")+`
session:
  ttl_hours: 2
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://expanded.local", cfg.API.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.APITimeout())
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL())
}

func TestLoadRequiresBaseURL(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9000
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api.base_url")
}

func TestLoadCreatesAuditDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "deep")
	path := writeConfig(t, `
api:
  base_url: http://backend.local
audit:
  path: `+filepath.Join(dir, "trail.db")+`
`)

	_, err := Load(path)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
