// Package config loads service settings from TODO_-prefixed environment
// variables, optionally seeded from a .env file in the working directory.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "TODO_"

type Config struct {
	Env      string `koanf:"env" validate:"oneof=development production test"`
	Port     string `koanf:"port" validate:"required,numeric"`
	LogLevel string `koanf:"log_level" validate:"oneof=debug info warn error"`

	MetricsEnabled bool   `koanf:"metrics_enabled"`
	MetricsToken   string `koanf:"metrics_token" validate:"required_if=MetricsEnabled true"`

	RateLimitPerMin int           `koanf:"rate_limit_per_min" validate:"gte=0"`
	TrustProxy      bool          `koanf:"trust_proxy"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`
}

func Default() Config {
	return Config{
		Env:             "development",
		Port:            "3001",
		LogLevel:        "info",
		ShutdownTimeout: 10 * time.Second,
	}
}

func (c Config) Addr() string {
	return ":" + c.Port
}

// Load reads .env (if present) and the process environment on top of
// Default. Variables already set in the environment take precedence over .env.
func Load(dotenvFiles ...string) (Config, error) {
	if len(dotenvFiles) == 0 {
		dotenvFiles = []string{".env"}
	}
	for _, f := range dotenvFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	k := koanf.New(".")
	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil)
	if err != nil {
		return Config{}, fmt.Errorf("read env: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
