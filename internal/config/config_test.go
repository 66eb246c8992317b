package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "https://geocode-maps.yandex.ru/1.x", cfg.Geocoder.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Geocoder.Timeout)
	assert.Equal(t, "postgres", cfg.Cache.Backend)
	assert.Equal(t, "keep", cfg.Cache.Policy)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadPrefixedEnvOverrides(t *testing.T) {
	t.Setenv("ORDER_SERVICE_SERVER_PORT", "9999")
	t.Setenv("ORDER_SERVICE_CACHE_BACKEND", "redis")
	t.Setenv("ORDER_SERVICE_CACHE_POLICY", "replace")
	t.Setenv("ORDER_SERVICE_GEOCODER_TIMEOUT", "7s")
	t.Setenv("ORDER_SERVICE_LOGGING_FORMAT", "json")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, "redis", cfg.Cache.Backend)
	assert.Equal(t, "replace", cfg.Cache.Policy)
	assert.Equal(t, 7*time.Second, cfg.Geocoder.Timeout)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadConventionalAliases(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://app:secret@db:5432/orders")
	t.Setenv("GEOCODER_API_KEY", "test-key")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "postgres://app:secret@db:5432/orders", cfg.Database.URL)
	assert.Equal(t, "test-key", cfg.Geocoder.APIKey)
}

func TestLoadPrefixedOverrideBeatsDefaultForDatabaseURL(t *testing.T) {
	t.Setenv("ORDER_SERVICE_DATABASE_URL", "postgres://app@localhost/orders")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "postgres://app@localhost/orders", cfg.Database.URL)
}
