package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	App       AppConfig       `mapstructure:"app"        validate:"required"`
	Server    ServerConfig    `mapstructure:"server"     validate:"required"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
}

// AppConfig describes the running build, reported by GET /version.
type AppConfig struct {
	Name    string `mapstructure:"name"    validate:"required"`
	Version string `mapstructure:"version" validate:"required"`
	Env     string `mapstructure:"env"     validate:"required,oneof=development staging production test"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port            int           `mapstructure:"port"             validate:"required,gt=0,lt=65536"`
	LogLevel        string        `mapstructure:"log_level"        validate:"required,oneof=debug info warn error"`
	LogFormat       string        `mapstructure:"log_format"       validate:"required,oneof=json text ci"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"     validate:"gt=0"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"    validate:"gt=0"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"     validate:"gt=0"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

// RateLimitConfig configures the global request limiter.
// RPS of zero disables limiting.
type RateLimitConfig struct {
	RPS   float64 `mapstructure:"rps"   validate:"gte=0"`
	Burst int     `mapstructure:"burst" validate:"gte=0"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"    validate:"required,startswith=/"`
}
