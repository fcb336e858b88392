package main

import (
	"fmt"
	"log/slog"

	"github.com/phrazzld/servicely-api/internal/config"
)

// loadAppConfig loads the application configuration from .env, an optional
// config.yaml and SERVICELY_ environment variables.
func loadAppConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	if cfg.Cache.RedisURL != "" {
		slog.Debug("Cache configuration", "redis_url_present", true)
	}

	return cfg, nil
}
