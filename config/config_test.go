package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mwantia/photofs/config"
	"github.com/mwantia/photofs/data"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "photofs.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, config.Default(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
blob_prefix = "gallery"
read_only = true

[log]
level = "debug"
json = true

[backend]
type = "consul"

[backend.consul]
address = "consul:8500"
prefix = "photos"
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "gallery", cfg.BlobPrefix)
	assert.True(t, cfg.ReadOnly)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.JSON)
	assert.Equal(t, "consul", cfg.Backend.Type)
	assert.Equal(t, "consul:8500", cfg.Backend.Consul.Address)
	assert.Equal(t, "photos", cfg.Backend.Consul.Prefix)
	// Untouched keys keep their defaults
	assert.Equal(t, ".", cfg.Backend.Path)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
[backend]
type = "sqlite"
path = "file.db"
`)

	t.Setenv("PHOTOFS_BACKEND_PATH", "env.db")
	t.Setenv("PHOTOFS_LOG_LEVEL", "warn")
	t.Setenv("PHOTOFS_LOG_NO_TERMINAL", "true")
	t.Setenv("PHOTOFS_BACKEND_S3_ACCESS_KEY", "minio")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Backend.Type)
	assert.Equal(t, "env.db", cfg.Backend.Path)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.True(t, cfg.Log.NoTerminal)
	assert.Equal(t, "minio", cfg.Backend.S3.AccessKey)
}

func TestLoad_Errors(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	_, err = config.Load(writeConfig(t, "[backend\ntype ="))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(cfg *config.Config)
		target error
	}{
		{"unknown backend", func(cfg *config.Config) { cfg.Backend.Type = "ftp" }, data.ErrBackendUnsupported},
		{"direct without path", func(cfg *config.Config) { cfg.Backend.Path = "" }, data.ErrInvalid},
		{"postgres without dsn", func(cfg *config.Config) { cfg.Backend.Type = "postgres" }, data.ErrInvalid},
		{"s3 without bucket", func(cfg *config.Config) { cfg.Backend.Type = "s3" }, data.ErrInvalid},
		{"empty blob prefix", func(cfg *config.Config) { cfg.BlobPrefix = "" }, data.ErrInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.modify(cfg)
			assert.ErrorIs(t, cfg.Validate(), tt.target)
		})
	}

	cfg := config.Default()
	cfg.Log.Level = "verbose"
	assert.Error(t, cfg.Validate())
}
