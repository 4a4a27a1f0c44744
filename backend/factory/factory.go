package factory

import (
	"context"
	"fmt"

	"github.com/mwantia/photofs/backend"
	"github.com/mwantia/photofs/backend/consul"
	"github.com/mwantia/photofs/backend/direct"
	"github.com/mwantia/photofs/backend/ephemeral"
	"github.com/mwantia/photofs/backend/postgres"
	"github.com/mwantia/photofs/backend/s3"
	"github.com/mwantia/photofs/backend/sqlite"
	"github.com/mwantia/photofs/config"
	"github.com/mwantia/photofs/data"
)

// New creates the storage backend selected by cfg.Type.
// The returned backend is not opened yet.
func New(ctx context.Context, cfg config.BackendConfig) (backend.ObjectStorageBackend, error) {
	switch cfg.Type {
	case "direct", "":
		return direct.NewDirectBackend(cfg.Path)
	case "ephemeral":
		return ephemeral.NewEphemeralBackend(), nil
	case "sqlite":
		return sqlite.NewSQLiteBackend(cfg.Path)
	case "postgres":
		return postgres.NewPostgresBackend(ctx, cfg.DSN)
	case "consul":
		return consul.NewConsulBackend(&cfg.Consul)
	case "s3":
		return s3.NewS3Backend(&cfg.S3)
	default:
		return nil, fmt.Errorf("%w: unknown backend type '%s'", data.ErrBackendUnsupported, cfg.Type)
	}
}
