package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STATE_DIR", "/tmp/homecare-state")

	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, 5*time.Minute, cfg.Flash.TTL)
	assert.Equal(t, filepath.Join("/tmp/homecare-state", DefaultDBFileName), cfg.Database.GetDSN())
}

func TestLoad_Precedence(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "homecare.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
http:
  addr: ":9000"
log:
  level: debug
database:
  dsn: "postgres://care@db/homecare"
flash:
  ttl: 30s
`), 0o644))

	t.Setenv("CONFIG_FILE", file)
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("FLASH_TTL", "90")

	cfg, err := Load([]string{"--http-addr", ":7000", "--redis-addr", "cache:6379"})
	require.NoError(t, err)

	// flag > env > yaml
	assert.Equal(t, ":7000", cfg.HTTP.Addr)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "postgres://care@db/homecare", cfg.Database.GetDSN())
	assert.Equal(t, 90*time.Second, cfg.Flash.TTL)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "cache:6379", cfg.Redis.Addr)
}

func TestLoad_PostgresFromDiscreteEnv(t *testing.T) {
	t.Setenv("DB_HOST", "pg")
	t.Setenv("DB_USER", "care")
	t.Setenv("DB_PASSWORD", "pw")
	t.Setenv("DB_NAME", "homecare")

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, "host=pg port=5432 user=care password=pw dbname=homecare sslmode=disable", cfg.Database.GetDSN())
}

func TestLoad_BadConfigFile(t *testing.T) {
	_, err := Load([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml")})
	assert.Error(t, err)
}
