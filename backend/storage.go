package backend

import (
	"context"

	"github.com/mwantia/photofs/data"
)

// ObjectStorageBackend stores a tree of files and directories addressed by keys.
// Keys are slash separated and relative to the mounted root; the root is "".
// Only the handle layer works with keys, callers never see them.
type ObjectStorageBackend interface {
	Backend

	// CreateObject creates an empty file or a directory. The parent must exist.
	CreateObject(ctx context.Context, key string, mode data.FileMode) (*data.FileStat, error)

	// ReadObject reads into buf starting at offset. Returns io.EOF at the end.
	ReadObject(ctx context.Context, key string, offset int64, buf []byte) (int, error)

	// WriteObject writes buf at offset, growing the object as needed.
	WriteObject(ctx context.Context, key string, offset int64, buf []byte) (int, error)

	// DeleteObject removes a file, or a directory with its subtree when force is set.
	DeleteObject(ctx context.Context, key string, force bool) error

	// ListObjects returns the immediate children of a directory ordered by name.
	ListObjects(ctx context.Context, key string) ([]*data.FileStat, error)

	// HeadObject returns the stat of a single object.
	HeadObject(ctx context.Context, key string) (*data.FileStat, error)
}
