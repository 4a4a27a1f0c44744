// Package config loads the photofs configuration from a TOML file and
// PHOTOFS_* environment variables.
package config

import (
	"fmt"
	"os"
	"slices"

	"github.com/kelseyhightower/envconfig"
	"github.com/mwantia/photofs/backend/consul"
	"github.com/mwantia/photofs/backend/s3"
	"github.com/mwantia/photofs/data"
	"github.com/mwantia/photofs/log"
	"github.com/pelletier/go-toml/v2"
)

// EnvPrefix is the prefix of every environment override, e.g. PHOTOFS_BACKEND_TYPE.
const EnvPrefix = "PHOTOFS"

// Config holds all application configuration.
type Config struct {
	Log        LogConfig     `toml:"log"`
	Backend    BackendConfig `toml:"backend"`
	BlobPrefix string        `toml:"blob_prefix" split_words:"true"`
	ReadOnly   bool          `toml:"read_only" split_words:"true"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level      string `toml:"level"`
	File       string `toml:"file"`
	JSON       bool   `toml:"json"`
	NoTerminal bool   `toml:"no_terminal" split_words:"true"`
}

// BackendConfig selects and configures the storage backend of the root.
type BackendConfig struct {
	// Type is one of direct, ephemeral, sqlite, postgres, consul or s3
	Type string `toml:"type"`
	// Path is the root directory for direct and the database file for sqlite
	Path string `toml:"path"`
	// DSN is the postgres connection string
	DSN string `toml:"dsn"`

	Consul consul.ConsulBackendConfig `toml:"consul"`
	S3     s3.S3BackendConfig         `toml:"s3"`
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level: "info",
		},
		Backend: BackendConfig{
			Type: "direct",
			Path: ".",
		},
		BlobPrefix: "photofs",
	}
}

// Load reads the file at path over the defaults, when path is set, and then
// applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}

		if err := toml.Unmarshal(content, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config '%s': %w", path, err)
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return cfg, nil
}

// Validate checks values that would otherwise only fail when the root is opened.
func (c *Config) Validate() error {
	if _, err := log.Parse(c.Log.Level); err != nil {
		return err
	}

	if !slices.Contains(BackendTypes, c.Backend.Type) {
		return fmt.Errorf("%w: unknown backend type '%s'", data.ErrBackendUnsupported, c.Backend.Type)
	}

	switch c.Backend.Type {
	case "direct", "sqlite":
		if c.Backend.Path == "" {
			return fmt.Errorf("%w: backend '%s' requires a path", data.ErrInvalid, c.Backend.Type)
		}
	case "postgres":
		if c.Backend.DSN == "" {
			return fmt.Errorf("%w: backend 'postgres' requires a dsn", data.ErrInvalid)
		}
	case "s3":
		if c.Backend.S3.Endpoint == "" || c.Backend.S3.Bucket == "" {
			return fmt.Errorf("%w: backend 's3' requires endpoint and bucket", data.ErrInvalid)
		}
	}

	if c.BlobPrefix == "" {
		return fmt.Errorf("%w: blob prefix must not be empty", data.ErrInvalid)
	}

	return nil
}

// BackendTypes lists every supported backend type.
var BackendTypes = []string{"direct", "ephemeral", "sqlite", "postgres", "consul", "s3"}
