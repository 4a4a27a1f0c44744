package ephemeral

import (
	"context"
	"sync"

	"github.com/mwantia/photofs/backend"
	"github.com/mwantia/photofs/data"
	"github.com/tidwall/btree"
)

// EphemeralBackend keeps the whole tree in memory. Keys are indexed in a
// B-tree so that children of a directory are visited in name order.
type EphemeralBackend struct {
	mu sync.RWMutex

	keys    *btree.Map[string, string]
	objects map[string]*object
	maxSize int64
}

type object struct {
	stat    *data.FileStat
	content []byte
}

func NewEphemeralBackend() *EphemeralBackend {
	return &EphemeralBackend{
		keys:    btree.NewMap[string, string](0),
		objects: make(map[string]*object),
		maxSize: 10485760, // 10 MB
	}
}

// Returns the identifier name defined for this backend
func (*EphemeralBackend) Name() string {
	return "ephemeral"
}

// Open is part of the lifecycle behaviour and gets called when a root is selected.
func (eb *EphemeralBackend) Open(ctx context.Context) error {
	// No initialization needed - backend is ready to use
	return nil
}

// Close is part of the lifecycle behaviour and gets called when the root is released.
func (eb *EphemeralBackend) Close(ctx context.Context) error {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	eb.keys.Clear()
	for k := range eb.objects {
		delete(eb.objects, k)
	}

	return nil
}

// GetCapabilities returns a list of capabilities supported by this backend.
func (eb *EphemeralBackend) GetCapabilities() *backend.BackendCapabilities {
	return &backend.BackendCapabilities{
		Capabilities: []backend.BackendCapability{
			backend.CapabilityObjectStorage,
			backend.CapabilityMetadata,
			backend.CapabilityExclusiveCreate,
		},
		MaxObjectSize: eb.maxSize,
	}
}

// lookupUnsafe returns the object stored under key. Must be called with lock held.
func (eb *EphemeralBackend) lookupUnsafe(key string) (*object, bool) {
	id, exists := eb.keys.Get(key)
	if !exists {
		return nil, false
	}

	obj, exists := eb.objects[id]
	return obj, exists
}

// isDirectoryUnsafe reports whether key names an existing directory.
// The root is implicit. Must be called with lock held.
func (eb *EphemeralBackend) isDirectoryUnsafe(key string) (bool, error) {
	if key == "" {
		return true, nil
	}

	obj, exists := eb.lookupUnsafe(key)
	if !exists {
		return false, data.ErrNotExist
	}

	return obj.stat.IsDir(), nil
}
