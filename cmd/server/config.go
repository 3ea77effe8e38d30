package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/Nivlac17/jwt-pizza-service/internal/config"
	"github.com/joho/godotenv"
)

// loadAppConfig loads envFile into the environment when it exists, then the
// application configuration.
func loadAppConfig(envFile string) (*config.Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"session_backend", cfg.Auth.SessionBackend)
	slog.Debug("Factory configuration", "enabled", cfg.Factory.URL != "")

	return cfg, nil
}
