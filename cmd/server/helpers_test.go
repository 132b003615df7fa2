package main

import (
	"testing"
	"time"

	"github.com/phrazzld/task-api/internal/config"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Name: "task-api", Version: "test-version", Env: "test"},
		Server: config.ServerConfig{
			Port:            8080,
			LogLevel:        "debug",
			LogFormat:       "json",
			ReadTimeout:     5 * time.Second,
			WriteTimeout:    10 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 5 * time.Second,
		},
		RateLimit: config.RateLimitConfig{RPS: 0, Burst: 20},
		Metrics:   config.MetricsConfig{Enabled: true, Path: "/metrics"},
	}
}

func newTestApp(t *testing.T, cfg *config.Config) (*application, *logger.TestLogBuffer) {
	t.Helper()
	log, buf := logger.NewTestLogger()
	app, err := newApplication(cfg, log)
	require.NoError(t, err)
	return app, buf
}
