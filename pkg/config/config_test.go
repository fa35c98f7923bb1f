package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/agrochain-api/pkg/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 5005, cfg.HTTP.Port)
	assert.Equal(t, config.StoragePostgres, cfg.App.Storage)
	assert.False(t, cfg.Mongo.Enabled(), "sin MONGO_URI los logs van al ring en memoria")
	assert.False(t, cfg.Redis.Enabled())
	assert.Equal(t, "admin_messages", cfg.Redis.MessagesChannel)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "8081")
	t.Setenv("STORAGE", "MEMORY")
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.HTTP.Port)
	assert.Equal(t, config.StorageMemory, cfg.App.Storage)
	assert.True(t, cfg.Mongo.Enabled())
	assert.True(t, cfg.Redis.Enabled())
}

func TestLoad_StorageInvalido(t *testing.T) {
	t.Setenv("STORAGE", "sqlite")
	_, err := config.Load()
	assert.Error(t, err)
}

func TestDBConfig_DSNEscapaPassword(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "agro", Password: "p@ss/word", DBName: "agrochain", SSLMode: "disable"}
	assert.Equal(t, "postgres://agro:p%40ss%2Fword@db:5432/agrochain?sslmode=disable", c.DSN())
	assert.Equal(t, c.DSN(), c.ConnectionString())

	c.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", c.ConnectionString())
}
