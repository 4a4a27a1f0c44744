// Package navigator lists directories and resolves slug paths into directory handles.
package navigator

import (
	"context"

	"github.com/mwantia/photofs/data"
	"github.com/mwantia/photofs/handle"
	"github.com/mwantia/photofs/log"
)

// Listing holds the immediate children of a directory, split by kind.
// Files only contain entries with an image media type.
type Listing struct {
	Directories []*handle.Directory
	Files       []*handle.File
}

// Enumerator lists directories. Failures are logged and yield an empty listing.
type Enumerator struct {
	log *log.Logger
}

func NewEnumerator(logger *log.Logger) *Enumerator {
	if logger == nil {
		logger = log.Discard()
	}

	return &Enumerator{
		log: logger,
	}
}

// List enumerates dir once. Non-image files are left out of the listing.
func (e *Enumerator) List(ctx context.Context, dir *handle.Directory) Listing {
	listing := Listing{
		Directories: make([]*handle.Directory, 0),
		Files:       make([]*handle.File, 0),
	}

	entries, err := dir.Entries(ctx)
	if err != nil {
		e.log.Warn("Unable to list directory '%s': %v", dir.Name(), err)
		return listing
	}

	for _, entry := range entries {
		switch child := entry.(type) {
		case *handle.Directory:
			listing.Directories = append(listing.Directories, child)
		case *handle.File:
			if data.IsImage(child.MediaType()) {
				listing.Files = append(listing.Files, child)
			}
		}
	}

	return listing
}
