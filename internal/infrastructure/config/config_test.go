package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "dd.db", cfg.Database.Path)
	assert.Equal(t, "schema/init.sql", cfg.Schema.File)
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, 10*time.Minute, cfg.Redis.PriceTTL)
	assert.Equal(t, uint32(5), cfg.Redis.Breaker.ConsecutiveFailures)
	assert.False(t, cfg.Redis.Enabled)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
  mode: debug
database:
  driver: sqlite
  path: /tmp/books.db
log:
  level: debug
  format: json
`)
	t.Setenv("BOOKSHOP_SERVER_PORT", "9191")
	t.Setenv("BOOKSHOP_REDIS_ENABLED", "true")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9191, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.Mode)
	assert.Equal(t, "/tmp/books.db", cfg.Database.Path)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.True(t, cfg.Redis.Enabled)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad port", "server:\n  port: 70000\n"},
		{"unknown driver", "database:\n  driver: postgres\n"},
		{"bad log format", "log:\n  format: xml\n"},
		{"sample ratio", "tracing:\n  sample_ratio: 2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	mysql := DatabaseConfig{
		User: "root", Password: "secret", Host: "db", Port: 3306,
		DBName: "bookshop", Charset: "utf8mb4", ParseTime: true, Loc: "Local",
	}
	assert.Equal(t, "root:secret@tcp(db:3306)/bookshop?charset=utf8mb4&parseTime=true&loc=Local", mysql.DSN())

	assert.Equal(t, "file:dd.db?_foreign_keys=on&_busy_timeout=5000", DatabaseConfig{Path: "dd.db"}.SQLiteDSN())
	assert.Equal(t, "file::memory:?_foreign_keys=on&_busy_timeout=5000", DatabaseConfig{Path: ":memory:"}.SQLiteDSN())

	shared := DatabaseConfig{Path: "file:t1?mode=memory&cache=shared"}
	assert.True(t, shared.InMemory())
	assert.Equal(t, "file:t1?mode=memory&cache=shared&_foreign_keys=on&_busy_timeout=5000", shared.SQLiteDSN())
}
