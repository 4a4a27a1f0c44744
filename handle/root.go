// Package handle provides opaque directory and file references over a storage backend.
// Handles never expose storage keys; they are valid only while their Root is.
package handle

import (
	"sync/atomic"

	"github.com/mwantia/photofs/backend"
)

// Root binds handles to one mounted storage backend for the lifetime of a session.
type Root struct {
	storage backend.ObjectStorageBackend
	invalid atomic.Bool
}

// NewRoot creates a root over an already opened backend.
func NewRoot(storage backend.ObjectStorageBackend) *Root {
	return &Root{
		storage: storage,
	}
}

// Directory returns the handle of the mounted root directory.
func (r *Root) Directory() *Directory {
	return &Directory{
		root: r,
		key:  "",
		name: "",
	}
}

// Capabilities returns the capabilities of the underlying backend.
func (r *Root) Capabilities() *backend.BackendCapabilities {
	return r.storage.GetCapabilities()
}

// Invalidate detaches every handle derived from this root.
// Subsequent operations on those handles fail with data.ErrHandleInvalid.
func (r *Root) Invalidate() {
	r.invalid.Store(true)
}

// Valid reports whether the root has not been invalidated.
func (r *Root) Valid() bool {
	return !r.invalid.Load()
}
