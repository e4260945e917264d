package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/felixgeelhaar/clickup-mcp/internal/infrastructure/config"
	"github.com/felixgeelhaar/clickup-mcp/internal/infrastructure/wiring"
	"github.com/felixgeelhaar/clickup-mcp/pkg/clickup"
)

// resolveConfigPath returns --config or the default location.
func resolveConfigPath() (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	return config.DefaultPath()
}

// loadConfig reads, overrides and validates the config. The --log-level
// flag wins over the file and the environment.
func loadConfig() (*config.Config, error) {
	path, err := resolveConfigPath()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, MapError(err)
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	return cfg, nil
}

// newLogger writes to stderr so the stdio transport keeps stdout clean.
func newLogger(cfg *config.Config) *slog.Logger {
	level := logLevel
	if level == "" && cfg != nil {
		level = cfg.LogLevel
	}
	return wiring.NewLogger(level, os.Stderr)
}

func loadServices() (*wiring.Services, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	services, err := wiring.BuildServices(cfg, newLogger(cfg))
	if err != nil {
		return nil, MapError(fmt.Errorf("failed to initialize services: %w", err))
	}
	return services, nil
}

// offlineClient backs commands that only inspect tool registrations and
// never dispatch a request.
func offlineClient() (*clickup.Client, error) {
	return clickup.New(clickup.Config{APIToken: "offline"})
}
