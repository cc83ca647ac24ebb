package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
app:
  name: chatbot-test
  timeout: 3
database:
  driver: mongodb
  dbname: chatbot_test
security:
  require-auth: true
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "chatbot-test", cfg.App.Name)
	assert.Equal(t, 3, cfg.App.Timeout)
	assert.True(t, cfg.Database.IsMongo())
	assert.Equal(t, "chatbot_test", cfg.Database.DbName)
	assert.True(t, cfg.Security.RequireAuth)
	assert.Equal(t, "sessions", cfg.Database.SessionCollection)
	assert.Equal(t, "8000", cfg.Server.Port)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err)

	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "./chatbot.db", cfg.Database.Dsn)
	assert.Equal(t, 10, cfg.App.Timeout)
	assert.Equal(t, "user", cfg.Cache.UserKeyPrefix)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("DATABASE_DRIVER", DriverPostgres)
	t.Setenv("DATABASE_DSN", "postgres://localhost/chatbot")
	t.Setenv("REDIS_URL", "localhost:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("JWT_KEY", "s3cret")
	t.Setenv("SERVER_PORT", "9000")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err)

	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, "postgres://localhost/chatbot", cfg.Database.Dsn)
	assert.Equal(t, "localhost:6379", cfg.Redis.Url)
	assert.Equal(t, 2, cfg.Redis.Db)
	assert.Equal(t, "s3cret", cfg.Security.JwtKey)
	assert.Equal(t, "9000", cfg.Server.Port)
}
