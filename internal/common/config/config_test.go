package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDatabaseConfig_GetDSN(t *testing.T) {
	c := DatabaseConfig{Host: "db", User: "care", Password: "secret", Database: "homecare"}
	assert.Equal(t, "host=db port=5432 user=care password=secret dbname=homecare sslmode=disable", c.GetDSN())

	c.DSN = "/tmp/homecare.db"
	assert.Equal(t, "/tmp/homecare.db", c.GetDSN())

	assert.Equal(t, "", (&DatabaseConfig{}).GetDSN())
}

func TestDatabaseConfig_LoadFromEnv(t *testing.T) {
	t.Setenv("DB_HOST", "pg.internal")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_NAME", "agency")
	t.Setenv("DB_MAX_CONNS", "not-a-number")

	c := DatabaseConfig{MaxConns: 7}
	c.LoadFromEnv("DB")

	assert.Equal(t, "pg.internal", c.Host)
	assert.Equal(t, 6543, c.Port)
	assert.Equal(t, "agency", c.Database)
	assert.Equal(t, 7, c.MaxConns)
}

func TestDatabaseConfig_URLMasksPassword(t *testing.T) {
	c := DatabaseConfig{Host: "db", Port: 5432, User: "care", Password: "secret", Database: "homecare"}
	assert.Equal(t, "postgres://care:xxxxx@db:5432/homecare", c.URL(true))
}

func TestRedisConfig_LoadFromEnv(t *testing.T) {
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("REDIS_ADDR", "cache:6379")
	t.Setenv("REDIS_DB", "3")

	var c RedisConfig
	c.LoadFromEnv("REDIS")

	assert.True(t, c.Enabled)
	assert.Equal(t, "cache:6379", c.Addr)
	assert.Equal(t, 3, c.DB)
}
