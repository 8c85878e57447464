// Package config loads server configuration from a YAML file with
// environment variable overrides (RELAY_ prefix, "__" as the nesting
// separator: RELAY_SERVER__ADDRESS overrides server.address).
package config

import (
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config is the hosting server configuration.
type Config struct {
	Server ServerConfig `koanf:"server"`
	Log    LogConfig    `koanf:"log"`
	Sentry SentryConfig `koanf:"sentry"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Address         string        `koanf:"address"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `koanf:"level"` // debug, info, warn, error
}

// SentryConfig configures error reporting.
type SentryConfig struct {
	DSN         string `koanf:"dsn"`
	Environment string `koanf:"environment"`
}

const envPrefix = "RELAY_"

// Load reads configuration from the given YAML file, then applies
// environment overrides and defaults. A missing file is not an error;
// env-only configuration is fine.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			if !os.IsNotExist(err) {
				return nil, err
			}
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "__", ".")
	}), nil); err != nil {
		return nil, err
	}

	if !k.Exists("server.address") {
		k.Set("server.address", ":8080")
	}
	if !k.Exists("server.shutdown_timeout") {
		k.Set("server.shutdown_timeout", "30s")
	}
	if !k.Exists("log.level") {
		k.Set("log.level", "info")
	}
	if !k.Exists("sentry.environment") {
		k.Set("sentry.environment", "production")
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
