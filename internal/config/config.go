// Package config loads dictkit settings from the environment. Variables may
// also come from .env files; values already present in the environment win.
package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/gabapcia/dictkit/internal/pkg/validator"
)

// Prefix is prepended to every variable name, as in DICTKIT_LOG_LEVEL.
const Prefix = "dictkit"

// Config holds the process settings.
type Config struct {
	LogLevel         string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`
	Output           string `envconfig:"OUTPUT" default:"text" validate:"oneof=text json yaml"`
	TelemetryEnabled bool   `envconfig:"TELEMETRY_ENABLED" default:"false"`
	ServiceName      string `envconfig:"SERVICE_NAME" default:"dictkit" validate:"required"`
}

// Load reads the given .env files, ".env" when none are given, and then the
// environment. Missing .env files are ignored.
func Load(envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load env file: %w", err)
	}

	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to process environment: %w", err)
	}

	if err := validator.Validate(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
