package ephemeral

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mwantia/photofs/data"
)

func (eb *EphemeralBackend) CreateObject(ctx context.Context, key string, mode data.FileMode) (*data.FileStat, error) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	key = data.CleanKey(key)
	if key == "" {
		return nil, data.ErrExist
	}

	if _, exists := eb.keys.Get(key); exists {
		return nil, data.ErrExist
	}

	// Verify parent directory exists
	isDir, err := eb.isDirectoryUnsafe(data.ParentKey(key))
	if err != nil {
		return nil, err
	}
	if !isDir {
		return nil, data.ErrNotDirectory
	}

	now := time.Now()
	stat := &data.FileStat{
		Key:        key,
		Mode:       data.DefaultFileMode,
		CreateTime: now,
		ModifyTime: now,
	}

	if mode.IsDir() {
		stat.Mode = data.DefaultDirMode
		stat.ContentType = data.ContentTypeDirectory
	} else {
		stat.ContentType = string(data.GetMIMEType(key))
	}

	id := uuid.Must(uuid.NewV7()).String()
	eb.keys.Set(key, id)
	eb.objects[id] = &object{stat: stat}

	return stat.Clone(), nil
}

func (eb *EphemeralBackend) ReadObject(ctx context.Context, key string, offset int64, buf []byte) (int, error) {
	eb.mu.RLock()
	defer eb.mu.RUnlock()

	obj, exists := eb.lookupUnsafe(data.CleanKey(key))
	if !exists {
		return 0, data.ErrNotExist
	}

	if obj.stat.IsDir() {
		return 0, data.ErrIsDirectory
	}

	if offset >= int64(len(obj.content)) {
		return 0, io.EOF
	}

	return copy(buf, obj.content[offset:]), nil
}

func (eb *EphemeralBackend) WriteObject(ctx context.Context, key string, offset int64, buf []byte) (int, error) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	obj, exists := eb.lookupUnsafe(data.CleanKey(key))
	if !exists {
		return 0, data.ErrNotExist
	}

	if obj.stat.IsDir() {
		return 0, data.ErrIsDirectory
	}

	if offset < 0 {
		return 0, data.ErrInvalid
	}

	writeEnd := offset + int64(len(buf))
	if writeEnd > eb.maxSize {
		return 0, data.TooLarge(writeEnd, eb.maxSize)
	}

	// Expand buffer if needed
	if int64(len(obj.content)) < writeEnd {
		expanded := make([]byte, writeEnd)
		copy(expanded, obj.content)
		obj.content = expanded
	}

	copy(obj.content[offset:], buf)

	obj.stat.Size = int64(len(obj.content))
	obj.stat.ModifyTime = time.Now()
	if obj.stat.ContentType == data.ContentTypeApplicationStream {
		obj.stat.ContentType = data.DetectContentType(obj.stat.Key, obj.content)
	}

	return len(buf), nil
}

func (eb *EphemeralBackend) DeleteObject(ctx context.Context, key string, force bool) error {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	key = data.CleanKey(key)
	if key == "" {
		return data.ErrPermission
	}

	obj, exists := eb.lookupUnsafe(key)
	if !exists {
		return data.ErrNotExist
	}

	if !obj.stat.IsDir() {
		eb.deleteUnsafe(key)
		return nil
	}

	// Directories can only be deleted with force=true
	if !force {
		return data.ErrIsDirectory
	}

	keysToDelete := []string{key}
	prefix := key + "/"
	// Use B-tree range scan to find all descendants
	eb.keys.Ascend(prefix, func(childKey string, _ string) bool {
		if !strings.HasPrefix(childKey, prefix) {
			return false
		}
		keysToDelete = append(keysToDelete, childKey)
		return true
	})

	for _, delKey := range keysToDelete {
		eb.deleteUnsafe(delKey)
	}

	return nil
}

func (eb *EphemeralBackend) ListObjects(ctx context.Context, key string) ([]*data.FileStat, error) {
	eb.mu.RLock()
	defer eb.mu.RUnlock()

	key = data.CleanKey(key)
	isDir, err := eb.isDirectoryUnsafe(key)
	if err != nil {
		return nil, err
	}
	if !isDir {
		return nil, data.ErrNotDirectory
	}

	prefix := ""
	if key != "" {
		prefix = key + "/"
	}

	stats := make([]*data.FileStat, 0)
	eb.keys.Ascend(prefix, func(childKey string, id string) bool {
		if !strings.HasPrefix(childKey, prefix) {
			return false
		}
		if data.IsChildKey(key, childKey) {
			if obj, exists := eb.objects[id]; exists {
				stats = append(stats, obj.stat.Clone())
			}
		}
		return true
	})

	return stats, nil
}

func (eb *EphemeralBackend) HeadObject(ctx context.Context, key string) (*data.FileStat, error) {
	eb.mu.RLock()
	defer eb.mu.RUnlock()

	key = data.CleanKey(key)
	if key == "" {
		return &data.FileStat{
			Mode:        data.DefaultDirMode,
			ContentType: data.ContentTypeDirectory,
		}, nil
	}

	obj, exists := eb.lookupUnsafe(key)
	if !exists {
		return nil, data.ErrNotExist
	}

	return obj.stat.Clone(), nil
}

// deleteUnsafe drops key and its content. Must be called with lock held.
func (eb *EphemeralBackend) deleteUnsafe(key string) {
	if id, exists := eb.keys.Delete(key); exists {
		delete(eb.objects, id)
	}
}
