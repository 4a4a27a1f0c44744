package photofs

import (
	"context"
	"fmt"
	"sync"

	"github.com/mwantia/photofs/asset"
	"github.com/mwantia/photofs/blob"
	"github.com/mwantia/photofs/data"
	"github.com/mwantia/photofs/handle"
	"github.com/mwantia/photofs/log"
	"github.com/mwantia/photofs/navigator"
	"github.com/mwantia/photofs/slug"
)

// State is what a view currently displays.
type State struct {
	// Path is the normalized target path, "/" for the root.
	Path     string
	Segments []string

	// Directory is nil when the path did not resolve.
	Directory *handle.Directory
	Listing   navigator.Listing
}

// Found reports whether the path resolved to a directory.
func (s State) Found() bool {
	return s.Directory != nil
}

// View is a single folder view. Operations are expected to be issued one at a
// time, but navigation may be superseded by a later navigation at any point.
type View struct {
	mu     sync.Mutex
	closed bool

	session *Session
	log     *log.Logger
	cache   *blob.Cache

	// generation increases with every navigation; results of older ones are dropped
	generation uint64
	// committed is the generation of the navigation that produced state
	committed uint64
	state     State
}

func newView(session *Session, seq uint64) *View {
	return &View{
		session: session,
		log:     session.log.Named("view").With("view", seq),
		cache:   blob.NewCache(session.blobs),
		state: State{
			Path:     "/",
			Segments: []string{},
			Listing:  emptyListing(),
		},
	}
}

// State returns the committed state of the view.
func (v *View) State() State {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.state
}

// Navigate makes path the target of the view, resolves it and lists the
// directory. The result is only committed if no newer navigation started in
// the meantime; committed reports whether that happened.
func (v *View) Navigate(ctx context.Context, path string) (state State, committed bool, err error) {
	segments := slug.Split(path)

	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return State{}, false, data.ErrClosed
	}
	v.generation++
	generation := v.generation
	v.mu.Unlock()

	next := State{
		Path:     slug.Join(segments),
		Segments: segments,
		Listing:  emptyListing(),
	}

	if dir, ok := v.session.Resolve(ctx, segments); ok {
		next.Directory = dir
		next.Listing = v.session.List(ctx, dir)
	} else {
		v.log.Debug("Path '%s' did not resolve", next.Path)
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if generation != v.generation || v.closed {
		v.log.Debug("Discarded stale navigation to '%s'", next.Path)
		return v.state, false, nil
	}

	v.state = next
	v.committed = generation
	return v.state, true, nil
}

// Refresh lists the current directory again. The listing is dropped when a
// navigation committed another state while it was read.
func (v *View) Refresh(ctx context.Context) (State, error) {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return State{}, data.ErrClosed
	}
	committed := v.committed
	current := v.state
	v.mu.Unlock()

	if current.Directory == nil {
		return current, nil
	}

	listing := v.session.List(ctx, current.Directory)

	v.mu.Lock()
	defer v.mu.Unlock()

	if v.closed || committed != v.committed || current.Directory != v.state.Directory {
		v.log.Debug("Discarded stale listing of '%s'", current.Path)
		return v.state, nil
	}

	v.state.Listing = listing

	return v.state, nil
}

// CreateDirectory creates a child directory of the current directory.
func (v *View) CreateDirectory(ctx context.Context, name string) (*handle.Directory, error) {
	if err := handle.ValidateName(name); err != nil {
		return nil, err
	}

	dir, err := v.mutable()
	if err != nil {
		return nil, err
	}

	created, err := dir.CreateDirectory(ctx, name)
	if err != nil {
		v.log.Error("Failed to create directory '%s': %v", name, err)
		return nil, err
	}

	v.log.Info("Created directory '%s'", name)
	_, err = v.Refresh(ctx)
	return created, err
}

// DeleteFile removes a file of the current directory.
func (v *View) DeleteFile(ctx context.Context, name string) error {
	if err := handle.ValidateName(name); err != nil {
		return err
	}

	dir, err := v.mutable()
	if err != nil {
		return err
	}

	if _, err := dir.File(ctx, name); err != nil {
		v.log.Error("Failed to delete file '%s': %v", name, err)
		return err
	}

	if err := dir.RemoveEntry(ctx, name, false); err != nil {
		v.log.Error("Failed to delete file '%s': %v", name, err)
		return err
	}

	v.log.Info("Deleted file '%s'", name)
	_, err = v.Refresh(ctx)
	return err
}

// Capture stores content as the next sequential asset of the current directory.
// The extension is taken from sourceName.
func (v *View) Capture(ctx context.Context, sourceName string, content []byte) (*handle.File, error) {
	dir, err := v.mutable()
	if err != nil {
		return nil, err
	}

	file, err := asset.Save(ctx, dir, sourceName, content)
	if err != nil {
		v.log.Error("Failed to capture '%s': %v", sourceName, err)
		return nil, err
	}

	v.log.Info("Captured '%s' as '%s' (%d bytes)", sourceName, file.Name(), file.Size())
	_, err = v.Refresh(ctx)
	return file, err
}

// Link returns the path of a child directory of the current target.
func (v *View) Link(childName string) string {
	v.mu.Lock()
	defer v.mu.Unlock()

	return slug.Link(v.state.Segments, childName)
}

// ImageURL returns the display URL of file, created on first use.
func (v *View) ImageURL(ctx context.Context, file *handle.File) (string, error) {
	return v.cache.URLFor(ctx, file)
}

// Close releases every display URL created by the view. Later calls are no-ops.
func (v *View) Close() error {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return nil
	}
	v.closed = true
	v.mu.Unlock()

	released := v.cache.Close()
	v.log.Debug("Released %d display URLs", released)

	return nil
}

// mutable returns the current directory for a write operation.
func (v *View) mutable() (*handle.Directory, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.closed {
		return nil, data.ErrClosed
	}

	if v.session.options.ReadOnly {
		return nil, fmt.Errorf("%w: session is read-only", data.ErrPermission)
	}

	if v.state.Directory == nil {
		return nil, data.NotFound(v.state.Path)
	}

	return v.state.Directory, nil
}

func emptyListing() navigator.Listing {
	return navigator.Listing{
		Directories: make([]*handle.Directory, 0),
		Files:       make([]*handle.File, 0),
	}
}
