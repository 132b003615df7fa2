package main

import (
	"fmt"
	"log/slog"

	"github.com/phrazzld/task-api/internal/config"
)

// loadAppConfig loads the application configuration from environment variables or config file.
// Returns the loaded config and any loading error.
func loadAppConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// logConfig reports the effective configuration once the logger is ready.
func logConfig(logger *slog.Logger, cfg *config.Config) {
	logger.Info("Server configuration loaded",
		"app", cfg.App.Name,
		"version", cfg.App.Version,
		"env", cfg.App.Env,
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"log_format", cfg.Server.LogFormat)

	logger.Debug("Optional features",
		"metrics_enabled", cfg.Metrics.Enabled,
		"metrics_path", cfg.Metrics.Path,
		"rate_limit_rps", cfg.RateLimit.RPS,
		"rate_limit_burst", cfg.RateLimit.Burst)
}
