package direct

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/mwantia/photofs/backend"
	"github.com/mwantia/photofs/data"
)

// DirectBackend exposes a directory on the local disk as the mounted root.
type DirectBackend struct {
	mu   sync.RWMutex
	path string
}

func NewDirectBackend(path string) (*DirectBackend, error) {
	if path == "" {
		return nil, data.ErrInvalidPath
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	return &DirectBackend{
		path: filepath.Clean(abs),
	}, nil
}

// Returns the identifier name defined for this backend
func (*DirectBackend) Name() string {
	return "direct"
}

// Open is part of the lifecycle behaviour and gets called when a root is selected.
func (db *DirectBackend) Open(ctx context.Context) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	// Verify the root directory exists
	info, err := os.Stat(db.path)
	if err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return data.ErrPermission
		}

		return data.ErrMountFailed
	}

	// Ensure the root is a directory
	if !info.IsDir() {
		return data.ErrNotDirectory
	}

	return nil
}

// Close is part of the lifecycle behaviour and gets called when the root is released.
func (db *DirectBackend) Close(ctx context.Context) error {
	// The underlying filesystem persists independently
	return nil
}

// GetCapabilities returns a list of capabilities supported by this backend.
func (db *DirectBackend) GetCapabilities() *backend.BackendCapabilities {
	return &backend.BackendCapabilities{
		Capabilities: []backend.BackendCapability{
			backend.CapabilityObjectStorage,
			backend.CapabilityPersistent,
			backend.CapabilityExclusiveCreate,
		},
		// Local filesystem limits vary by OS/filesystem, but we set a practical limit
		MaxObjectSize: 10737418240, // 10 GB
	}
}

// resolvePath joins the backend path with the relative key.
func (db *DirectBackend) resolvePath(key string) string {
	return filepath.Join(db.path, filepath.FromSlash(data.CleanKey(key)))
}

// toFileStat converts os.FileInfo to a FileStat.
func (db *DirectBackend) toFileStat(key string, fullPath string, fileInfo os.FileInfo) *data.FileStat {
	mode := data.FileMode(fileInfo.Mode().Perm())
	contentType := ""

	switch {
	case fileInfo.IsDir():
		mode |= data.ModeDir
		contentType = data.ContentTypeDirectory
	case !fileInfo.Mode().IsRegular():
		mode |= data.ModeIrregular
	default:
		contentType = data.DetectContentType(fileInfo.Name(), nil)
		if contentType == data.ContentTypeApplicationStream {
			contentType = data.DetectContentType(fileInfo.Name(), sniff(fullPath))
		}
	}

	return &data.FileStat{
		Key:  key,
		Size: fileInfo.Size(),
		Mode: mode,

		ModifyTime:  fileInfo.ModTime(),
		ContentType: contentType,
	}
}

// sniff reads the leading bytes used for content detection.
func sniff(fullPath string) []byte {
	file, err := os.Open(fullPath)
	if err != nil {
		return nil
	}
	defer file.Close()

	head := make([]byte, 3072)
	n, _ := file.Read(head)
	return head[:n]
}

// translate maps os errors onto the shared error set.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, fs.ErrNotExist):
		return data.ErrNotExist
	case errors.Is(err, fs.ErrExist):
		return data.ErrExist
	case errors.Is(err, fs.ErrPermission):
		return data.ErrPermission
	case isNotDirectory(err):
		return data.ErrNotDirectory
	default:
		return err
	}
}
