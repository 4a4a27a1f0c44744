package factory_test

import (
	"testing"

	"github.com/mwantia/photofs/backend/consul"
	"github.com/mwantia/photofs/backend/factory"
	"github.com/mwantia/photofs/backend/s3"
	"github.com/mwantia/photofs/config"
	"github.com/mwantia/photofs/data"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		cfg  config.BackendConfig
		name string
	}{
		{config.BackendConfig{Type: "direct", Path: t.TempDir()}, "direct"},
		{config.BackendConfig{Type: "ephemeral"}, "ephemeral"},
		{config.BackendConfig{Type: "sqlite", Path: ":memory:"}, "sqlite"},
		{config.BackendConfig{Type: "consul", Consul: consul.ConsulBackendConfig{Address: "127.0.0.1:8500"}}, "consul"},
		{config.BackendConfig{Type: "s3", S3: s3.S3BackendConfig{Endpoint: "127.0.0.1:9000", Bucket: "photos"}}, "s3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage, err := factory.New(t.Context(), tt.cfg)
			require.NoError(t, err)
			assert.Equal(t, tt.name, storage.Name())
		})
	}
}

func TestNew_Errors(t *testing.T) {
	_, err := factory.New(t.Context(), config.BackendConfig{Type: "ftp"})
	assert.ErrorIs(t, err, data.ErrBackendUnsupported)

	_, err = factory.New(t.Context(), config.BackendConfig{Type: "direct"})
	assert.ErrorIs(t, err, data.ErrInvalidPath)

	_, err = factory.New(t.Context(), config.BackendConfig{Type: "s3"})
	assert.ErrorIs(t, err, data.ErrInvalid)
}
