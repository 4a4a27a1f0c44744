// Package photofs browses a slug-addressed folder tree on a pluggable storage
// backend and appends captured photos under sequential file names.
package photofs

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/mwantia/photofs/backend"
	"github.com/mwantia/photofs/backend/readonly"
	"github.com/mwantia/photofs/blob"
	"github.com/mwantia/photofs/data"
	"github.com/mwantia/photofs/handle"
	"github.com/mwantia/photofs/log"
	"github.com/mwantia/photofs/navigator"
)

// Session is the context of one selected root. Handles, listings and views
// obtained from a session become invalid once it is closed.
type Session struct {
	mu     sync.Mutex
	closed bool

	id      string
	log     *log.Logger
	options *SessionOptions

	storage    backend.ObjectStorageBackend
	root       *handle.Root
	enumerator *navigator.Enumerator
	resolver   *navigator.Resolver
	blobs      *blob.Store

	views atomic.Uint64
}

// Open selects storage as the session root. The backend is opened here and
// closed again by Session.Close.
func Open(ctx context.Context, storage backend.ObjectStorageBackend, opts ...SessionOption) (*Session, error) {
	options := newDefaultSessionOptions()
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}

	caps := storage.GetCapabilities()
	if !caps.Contains(backend.CapabilityObjectStorage) {
		return nil, fmt.Errorf("%w: backend '%s' has no object storage", data.ErrBackendUnsupported, storage.Name())
	}

	if options.ReadOnly {
		storage = readonly.NewReadOnlyBackend(storage)
	}

	logger := options.Logger
	if logger == nil {
		logger = log.NewLogger("photofs", options.LogLevel, options.LogFile, options.NoTerminalLog)
	}

	id := uuid.NewString()
	logger = logger.Named(storage.Name()).With("session", id)

	if err := storage.Open(ctx); err != nil {
		logger.Error("Failed to open backend '%s': %v", storage.Name(), err)
		return nil, err
	}

	enumerator := navigator.NewEnumerator(logger.Named("navigator"))
	session := &Session{
		id:         id,
		log:        logger,
		options:    options,
		storage:    storage,
		root:       handle.NewRoot(storage),
		enumerator: enumerator,
		resolver:   navigator.NewResolver(enumerator),
		blobs:      blob.NewStore(options.BlobPrefix),
	}

	logger.Info("Opened session (capabilities: %v)", caps.Capabilities)
	return session, nil
}

// ID returns the unique identifier of the session.
func (s *Session) ID() string {
	return s.id
}

// Root returns the handle of the selected root directory.
func (s *Session) Root() *handle.Directory {
	return s.root.Directory()
}

// Capabilities returns the capabilities of the session backend.
func (s *Session) Capabilities() *backend.BackendCapabilities {
	return s.storage.GetCapabilities()
}

// Blobs returns the display URL registry shared by all views of the session.
func (s *Session) Blobs() *blob.Store {
	return s.blobs
}

// List enumerates dir, splitting subdirectories from image files.
// Failures yield an empty listing.
func (s *Session) List(ctx context.Context, dir *handle.Directory) navigator.Listing {
	return s.enumerator.List(ctx, dir)
}

// Resolve walks segments from the root and reports whether every segment matched.
func (s *Session) Resolve(ctx context.Context, segments []string) (*handle.Directory, bool) {
	return s.resolver.Resolve(ctx, s.Root(), segments)
}

// NewView creates a folder view. The caller must Close it.
func (s *Session) NewView() *View {
	return newView(s, s.views.Add(1))
}

// Close invalidates every handle of the session and closes the backend.
// Calling Close more than once returns data.ErrClosed.
func (s *Session) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return data.ErrClosed
	}
	s.closed = true

	s.root.Invalidate()
	if err := s.storage.Close(ctx); err != nil {
		s.log.Error("Failed to close backend '%s': %v", s.storage.Name(), err)
		return err
	}

	if remaining := s.blobs.Len(); remaining > 0 {
		s.log.Warn("Session closed with %d unreleased display URLs", remaining)
	}

	s.log.Info("Closed session")
	return nil
}
