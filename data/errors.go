package data

import (
	"errors"
	"fmt"
	"sync"
)

// Standard errors that backends and handles should use.
var (
	// Path resolution errors
	ErrInvalidPath = errors.New("photofs: invalid path detected")
	ErrNotFound    = errors.New("photofs: path not found")

	// Backend errors
	ErrBackendUnsupported = errors.New("photofs: backend capability unsupported")
	ErrMountFailed        = errors.New("photofs: mount initialization failed")
	ErrObjectTooLarge     = errors.New("photofs: object exceeds backend size limit")

	// Handle errors
	ErrHandleInvalid = errors.New("photofs: handle no longer valid")
	ErrInvalidName   = errors.New("photofs: invalid entry name")

	// File operation errors
	ErrNotExist     = errors.New("photofs: file does not exist")
	ErrExist        = errors.New("photofs: file already exists")
	ErrIsDirectory  = errors.New("photofs: is a directory")
	ErrNotDirectory = errors.New("photofs: not a directory")
	ErrPermission   = errors.New("photofs: permission denied")

	// I/O errors
	ErrClosed  = errors.New("photofs: file already closed")
	ErrInvalid = errors.New("photofs: invalid argument")
)

// NotFound reports a view path that does not address a directory.
func NotFound(path string) error {
	return fmt.Errorf("%w: '%s' is not a directory", ErrNotFound, path)
}

// InvalidName reports a user supplied entry name rejected before any storage call.
func InvalidName(name string, reason string) error {
	return fmt.Errorf("%w: '%s' %s", ErrInvalidName, name, reason)
}

// HandleInvalid reports an operation on a handle whose session root is gone.
func HandleInvalid(name string) error {
	return fmt.Errorf("%w: '%s'", ErrHandleInvalid, name)
}

// TooLarge reports an object rejected by the backend size limit.
func TooLarge(size, limit int64) error {
	return fmt.Errorf("%w: %d bytes (limit %d)", ErrObjectTooLarge, size, limit)
}

// Errors collects the failures of a multi-step operation.
type Errors struct {
	mu     sync.RWMutex
	errors []error
}

func (e *Errors) Add(err error) {
	if err == nil {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.errors = append(e.errors, err)
}

func (e *Errors) Errors() error {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if len(e.errors) == 0 {
		return nil
	}

	return errors.Join(e.errors...)
}
