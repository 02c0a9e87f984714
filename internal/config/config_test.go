package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, ModeLive, cfg.Mode)
	assert.Equal(t, "8080", cfg.HTTP.Port)
	assert.False(t, cfg.HTTP.EnableHTTPS)
	assert.Equal(t, "udon-shop:cart", cfg.Session.CartKey)
	assert.Equal(t, "udon-shop:session", cfg.Session.SessionKey)
	assert.Equal(t, "udon-shop-images", cfg.Storage.Bucket)
}

func TestNewConfig_Env(t *testing.T) {
	t.Setenv("MODE", "static")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DATABASE_DSN", "postgres://u:p@db:5432/shop")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("SESSION_SECRET", "s3cret")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, ModeStatic, cfg.Mode)
	assert.Equal(t, "9090", cfg.HTTP.Port)
	assert.Equal(t, "postgres://u:p@db:5432/shop", cfg.Database.DSN)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, "s3cret", cfg.Session.Secret)
}
