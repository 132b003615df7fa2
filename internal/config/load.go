package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable read by Load,
// e.g. TASKAPI_SERVER_PORT for server.port.
const EnvPrefix = "TASKAPI"

// ConfigFileEnv names an explicit config file, overriding the search path.
const ConfigFileEnv = "TASKAPI_CONFIG_FILE"

// setDefaults registers a default for every key. Viper only maps
// environment variables onto keys it already knows about, so each key
// must appear here for AutomaticEnv to reach it during Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "task-api")
	v.SetDefault("app.version", "1.0")
	v.SetDefault("app.env", "development")

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.log_format", "json")
	v.SetDefault("server.read_timeout", "5s")
	v.SetDefault("server.write_timeout", "10s")
	v.SetDefault("server.idle_timeout", "60s")
	v.SetDefault("server.shutdown_timeout", "10s")

	v.SetDefault("rate_limit.rps", 0)
	v.SetDefault("rate_limit.burst", 20)

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")
}

// Load configuration from environment variables and optionally config files.
// Environment variables take precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path := os.Getenv(ConfigFileEnv); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// A missing file on the search path is fine; an explicit one is not.
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks cfg against its struct tags.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}
