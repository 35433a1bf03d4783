// Package config loads the process configuration from the environment and .env files.
package config

//go:generate go tool errtrace -w .

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"maps"
	"strings"

	"braces.dev/errtrace"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// DefaultEnvFile is read when no env files are passed to [LoadEnv]. It may be absent.
const DefaultEnvFile = ".env"

// Config is the process configuration.
type Config struct {
	// ConnectionString is the broker connection string, may be empty.
	ConnectionString string `env:"RABBITMQ_BUS_CONNECTION_STRING"`
	// Scheme is the expected connection string scheme.
	Scheme string `env:"CONNSTR_SCHEME" envDefault:"amqp"`
	// LogFormat is one of "console", "dev" or "json".
	LogFormat string `env:"CONNSTR_LOG_FORMAT" envDefault:"console"`
	// LogLevel defaults to "INFO".
	LogLevel slog.Level `env:"CONNSTR_LOG_LEVEL" envDefault:"INFO"`
}

// LoadEnv reads the configuration from environ, a list of "key=value" pairs, and env files.
// Values from environ take precedence over the files, later files over earlier ones.
// Without files the optional [DefaultEnvFile] is read.
func LoadEnv(environ []string, files ...string) (*Config, error) {
	vars := make(map[string]string)
	if len(files) == 0 {
		m, err := godotenv.Read(DefaultEnvFile)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, errtrace.Wrap(fmt.Errorf("read %s: %w", DefaultEnvFile, err))
		}
		maps.Copy(vars, m)
	}
	for _, f := range files {
		m, err := godotenv.Read(f)
		if err != nil {
			return nil, errtrace.Wrap(fmt.Errorf("read %s: %w", f, err))
		}
		maps.Copy(vars, m)
	}
	for _, kv := range environ {
		if k, v, ok := strings.Cut(kv, "="); ok {
			vars[k] = v
		}
	}

	cfg := new(Config)
	if err := env.ParseWithOptions(cfg, env.Options{Environment: vars}); err != nil {
		return nil, errtrace.Wrap(fmt.Errorf("parse environment: %w", err))
	}
	return cfg, nil
}
