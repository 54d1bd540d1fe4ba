package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CATALOGUE_PATH", "data/isc-gem-cat.csv")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "data/isc-gem-cat.csv", cfg.CataloguePath)
	assert.Equal(t, 61, cfg.CatalogueHeaderSkip)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.AllowedOrigins)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("CATALOGUE_PATH", "/srv/cat.csv")
	t.Setenv("CATALOGUE_HEADER_SKIP", "10")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("ALLOWED_ORIGINS", "https://quakes.example.com, http://localhost:3000")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/srv/cat.csv", cfg.CataloguePath)
	assert.Equal(t, 10, cfg.CatalogueHeaderSkip)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, []string{"https://quakes.example.com", "http://localhost:3000"}, cfg.AllowedOrigins)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
}

func TestLoad_Validation(t *testing.T) {
	t.Run("catalogue path required", func(t *testing.T) {
		t.Setenv("CATALOGUE_PATH", "")

		_, err := Load()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "CATALOGUE_PATH")
	})

	t.Run("negative header skip", func(t *testing.T) {
		t.Setenv("CATALOGUE_PATH", "cat.csv")
		t.Setenv("CATALOGUE_HEADER_SKIP", "-1")

		_, err := Load()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "CATALOGUE_HEADER_SKIP")
	})

	t.Run("unknown log format", func(t *testing.T) {
		t.Setenv("CATALOGUE_PATH", "cat.csv")
		t.Setenv("LOG_FORMAT", "yaml")

		_, err := Load()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "LOG_FORMAT")
	})

	t.Run("invalid shutdown timeout", func(t *testing.T) {
		t.Setenv("CATALOGUE_PATH", "cat.csv")
		t.Setenv("SHUTDOWN_TIMEOUT", "soon")

		_, err := Load()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
	})
}
