package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/couchcryptid/quake-catalogue-service/internal/catalogue"
)

// Config holds all service settings, populated from environment variables
// (optionally via a .env file).
type Config struct {
	CataloguePath       string
	CatalogueHeaderSkip int

	HTTPAddr       string
	AllowedOrigins []string

	LogLevel  string
	LogFormat string

	ShutdownTimeout time.Duration
}

// Load reads configuration from the environment, applying defaults where
// unset. CATALOGUE_PATH is required: the service has nothing to serve
// without a catalogue.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("CATALOGUE_PATH", "")
	v.SetDefault("CATALOGUE_HEADER_SKIP", catalogue.DefaultHeaderSkip)
	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("ALLOWED_ORIGINS", "http://localhost:5173")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")

	// Local overrides from a .env file when present; real environment
	// variables win.
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // file is optional

	v.AutomaticEnv()

	cfg := &Config{
		CataloguePath:       v.GetString("CATALOGUE_PATH"),
		CatalogueHeaderSkip: v.GetInt("CATALOGUE_HEADER_SKIP"),
		HTTPAddr:            v.GetString("HTTP_ADDR"),
		AllowedOrigins:      splitOrigins(v.GetString("ALLOWED_ORIGINS")),
		LogLevel:            v.GetString("LOG_LEVEL"),
		LogFormat:           v.GetString("LOG_FORMAT"),
	}

	timeout, err := time.ParseDuration(v.GetString("SHUTDOWN_TIMEOUT"))
	if err != nil || timeout <= 0 {
		return nil, errors.New("invalid SHUTDOWN_TIMEOUT")
	}
	cfg.ShutdownTimeout = timeout

	if cfg.CataloguePath == "" {
		return nil, errors.New("CATALOGUE_PATH is required")
	}
	if cfg.CatalogueHeaderSkip < 0 {
		return nil, fmt.Errorf("invalid CATALOGUE_HEADER_SKIP %d", cfg.CatalogueHeaderSkip)
	}
	if cfg.LogFormat != "json" && cfg.LogFormat != "text" {
		return nil, fmt.Errorf("invalid LOG_FORMAT %q", cfg.LogFormat)
	}

	return cfg, nil
}

func splitOrigins(s string) []string {
	var origins []string
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
