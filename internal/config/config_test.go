package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_FileThenEnvThenDefaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", writeConfig(t, `
server:
  port: 9090
  env: production
database:
  driver: mysql
  url: user:pass@tcp(localhost:3306)/jobs
jwt:
  secret: from-file
jobs:
  page_size: 10
`))
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("CORS_ORIGINS", "https://a.example,https://b.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, "from-env", cfg.JWT.Secret, "переменная окружения важнее файла")
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CORSOrigins)
	assert.Equal(t, 10, cfg.Jobs.PageSize)

	// Значения по умолчанию
	assert.Equal(t, 60, cfg.JWT.TTL)
	assert.Equal(t, "inprocess", cfg.Dispatch.Type)
	assert.Equal(t, "local", cfg.Storage.Type)
	assert.Equal(t, int64(5*1024*1024), cfg.Upload.MaxResumeSize)
	assert.Equal(t, 6, cfg.Jobs.FeaturedCount)
}

func TestLoad_WithoutFileUsesEnvironment(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("DATABASE_URL", "postgres://localhost/jobs")
	t.Setenv("SERVER_PORT", "7000")
	t.Setenv("RATE_LIMIT_ENABLED", "true")
	t.Setenv("REDIS_URL", "redis://localhost:6379/1")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 7000, cfg.Server.Port)
	assert.Equal(t, "development", cfg.Server.Env)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, "redis://localhost:6379/1", cfg.RateLimit.RedisURL)
	assert.Equal(t, 10, cfg.RateLimit.AuthAttempts)
	assert.Equal(t, 60, cfg.RateLimit.WindowSeconds)
}

func TestLoad_RequiresDatabaseURL(t *testing.T) {
	t.Setenv("CONFIG_PATH", writeConfig(t, "server:\n  port: 8080\n"))
	t.Setenv("DATABASE_URL", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_InvalidYAML(t *testing.T) {
	t.Setenv("CONFIG_PATH", writeConfig(t, "server: [unclosed"))

	_, err := Load()
	assert.Error(t, err)
}
