package readonly

import (
	"context"
	"fmt"

	"github.com/mwantia/photofs/backend"
	"github.com/mwantia/photofs/data"
)

// ReadOnlyBackend wraps any object storage to make it read-only.
// All read operations are passed through to the underlying storage.
// All write operations return data.ErrPermission.
type ReadOnlyBackend struct {
	storage backend.ObjectStorageBackend
}

var _ backend.ObjectStorageBackend = (*ReadOnlyBackend)(nil)

// NewReadOnlyBackend creates a new read-only wrapper around storage.
func NewReadOnlyBackend(storage backend.ObjectStorageBackend) *ReadOnlyBackend {
	return &ReadOnlyBackend{
		storage: storage,
	}
}

func (rob *ReadOnlyBackend) Name() string {
	return rob.storage.Name()
}

func (rob *ReadOnlyBackend) Open(ctx context.Context) error {
	return rob.storage.Open(ctx)
}

func (rob *ReadOnlyBackend) Close(ctx context.Context) error {
	return rob.storage.Close(ctx)
}

// GetCapabilities reports the wrapped capabilities without exclusive creation.
func (rob *ReadOnlyBackend) GetCapabilities() *backend.BackendCapabilities {
	caps := rob.storage.GetCapabilities()

	filtered := make([]backend.BackendCapability, 0, len(caps.Capabilities))
	for _, capability := range caps.Capabilities {
		if capability != backend.CapabilityExclusiveCreate {
			filtered = append(filtered, capability)
		}
	}

	return &backend.BackendCapabilities{
		Capabilities:  filtered,
		MaxObjectSize: caps.MaxObjectSize,
	}
}

func (rob *ReadOnlyBackend) ReadObject(ctx context.Context, key string, offset int64, buf []byte) (int, error) {
	return rob.storage.ReadObject(ctx, key, offset, buf)
}

func (rob *ReadOnlyBackend) ListObjects(ctx context.Context, key string) ([]*data.FileStat, error) {
	return rob.storage.ListObjects(ctx, key)
}

func (rob *ReadOnlyBackend) HeadObject(ctx context.Context, key string) (*data.FileStat, error) {
	return rob.storage.HeadObject(ctx, key)
}

func (rob *ReadOnlyBackend) CreateObject(ctx context.Context, key string, mode data.FileMode) (*data.FileStat, error) {
	return nil, denied("create", key)
}

func (rob *ReadOnlyBackend) WriteObject(ctx context.Context, key string, offset int64, buf []byte) (int, error) {
	return 0, denied("write", key)
}

func (rob *ReadOnlyBackend) DeleteObject(ctx context.Context, key string, force bool) error {
	return denied("delete", key)
}

func denied(op, key string) error {
	return fmt.Errorf("%w: %s '%s' on read-only storage", data.ErrPermission, op, key)
}
