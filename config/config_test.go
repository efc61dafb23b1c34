package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeYAML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	cfg := LoadConfigFrom(filepath.Join(t.TempDir(), "missing.yaml"))

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, 24*time.Hour, cfg.JWT.ExpireTime)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, "local", cfg.Storage.Type)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.CORS.AllowOrigins)
}

func TestYAMLKeepsUnsetDefaults(t *testing.T) {
	path := writeYAML(t, `
server:
  port: "9090"
database:
  driver: sqlite
  database: moments.db
websocket:
  pingInterval: 10s
`)
	cfg := LoadConfigFrom(path)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "moments.db", cfg.Database.Database)
	assert.Equal(t, 10*time.Second, cfg.WebSocket.PingInterval)
	// 未配置的字段保留默认值
	assert.Equal(t, 90*time.Second, cfg.WebSocket.ReadTimeout)
	assert.Equal(t, "logs/app.log", cfg.Log.Filename)
}

func TestEnvOverridesYAML(t *testing.T) {
	path := writeYAML(t, `
server:
  port: "9090"
redis:
  enabled: false
`)
	t.Setenv("SERVER_PORT", "7070")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("JWT_EXPIRE_TIME", "2h")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("MAIL_ENABLED", "true")
	t.Setenv("APP_BASE_URL", "https://moments.example.com")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://a.example.com, https://b.example.com ,")

	cfg := LoadConfigFrom(path)

	assert.Equal(t, "7070", cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 2*time.Hour, cfg.JWT.ExpireTime)
	assert.True(t, cfg.Redis.Enabled)
	assert.True(t, cfg.Mail.Enabled)
	assert.Equal(t, "https://moments.example.com", cfg.Mail.BaseURL)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORS.AllowOrigins)
}
