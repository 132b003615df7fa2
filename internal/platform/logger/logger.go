package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/phrazzld/task-api/internal/ciutil"
	"github.com/phrazzld/task-api/internal/config"
)

// Supported output formats.
const (
	FormatJSON = "json"
	FormatText = "text"
	FormatCI   = "ci"
)

// Setup initializes and configures the application's logging system based on
// the provided configuration. It writes to stdout, sets the result as the
// default logger for the application, and returns it.
func Setup(cfg config.ServerConfig) (*slog.Logger, error) {
	return SetupWithWriter(cfg, os.Stdout)
}

// SetupWithWriter is Setup with an explicit destination.
func SetupWithWriter(cfg config.ServerConfig, out io.Writer) (*slog.Logger, error) {
	opts := &slog.HandlerOptions{
		Level: ParseLevel(cfg.LogLevel),
	}

	logger := slog.New(newHandler(cfg.LogFormat, out, opts))
	slog.SetDefault(logger)
	return logger, nil
}

// ParseLevel maps a configured level name to a slog.Level (case-insensitive).
// Unknown names fall back to info with a warning on stderr.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		tmpLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		tmpLogger.Warn("invalid log level configured, using default level",
			"configured_level", name,
			"default_level", "info")
		return slog.LevelInfo
	}
}

// newHandler picks the handler for format. JSON output switches to the CI
// handler automatically when running inside a CI pipeline.
func newHandler(format string, out io.Writer, opts *slog.HandlerOptions) slog.Handler {
	switch strings.ToLower(format) {
	case FormatText:
		return slog.NewTextHandler(out, opts)
	case FormatCI:
		return NewCIHandler(out, opts)
	default:
		if ciutil.IsCI() {
			return NewCIHandler(out, opts)
		}
		return slog.NewJSONHandler(out, opts)
	}
}
