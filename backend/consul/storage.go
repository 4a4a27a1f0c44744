package consul

import (
	"context"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/hashicorp/consul/api"
	"github.com/mwantia/photofs/data"
)

// CreateObject creates a new object (file or directory)
func (cb *ConsulBackend) CreateObject(ctx context.Context, key string, mode data.FileMode) (*data.FileStat, error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	key = data.CleanKey(key)
	if key == "" {
		return nil, data.ErrExist
	}

	parent, err := cb.head(ctx, data.ParentKey(key))
	if err != nil {
		return nil, err
	}
	if !parent.IsDir() {
		return nil, data.ErrNotDirectory
	}

	// A file and a directory of the same name would shadow each other
	if _, err := cb.head(ctx, key); err == nil {
		return nil, data.ErrExist
	}

	now := time.Now()
	stat := &data.FileStat{
		Key:         key,
		Mode:        data.DefaultFileMode,
		CreateTime:  now,
		ModifyTime:  now,
		ContentType: string(data.GetMIMEType(key)),
	}
	consulKey := cb.fileKey(key)
	if mode.IsDir() {
		stat.Mode = data.DefaultDirMode
		stat.ContentType = data.ContentTypeDirectory
		consulKey = cb.dirKey(key)
	}

	// ModifyIndex 0 makes the CAS succeed only when the key does not exist yet
	pair := &api.KVPair{
		Key:   consulKey,
		Flags: uint64(now.UnixNano()),
		Value: []byte{},
	}
	ok, _, err := cb.kv.CAS(pair, writeOptions(ctx))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, data.ErrExist
	}

	return stat, nil
}

// ReadObject reads data from an object at a given offset
func (cb *ConsulBackend) ReadObject(ctx context.Context, key string, offset int64, buf []byte) (int, error) {
	cb.mu.RLock()
	defer cb.mu.RUnlock()

	pair, err := cb.getFile(ctx, data.CleanKey(key))
	if err != nil {
		return 0, err
	}

	size := int64(len(pair.Value))
	if offset >= size {
		return 0, io.EOF
	}

	return copy(buf, pair.Value[offset:]), nil
}

// WriteObject writes data to an object at a given offset
func (cb *ConsulBackend) WriteObject(ctx context.Context, key string, offset int64, buf []byte) (int, error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if offset < 0 {
		return 0, data.ErrInvalid
	}

	pair, err := cb.getFile(ctx, data.CleanKey(key))
	if err != nil {
		return 0, err
	}

	writeEnd := offset + int64(len(buf))

	// Check size constraint from capabilities
	if capabilities := cb.GetCapabilities(); !capabilities.Accepts(writeEnd) {
		return 0, data.TooLarge(writeEnd, capabilities.MaxObjectSize)
	}

	// Expand buffer if needed
	buffer := pair.Value
	if writeEnd > int64(len(buffer)) {
		expanded := make([]byte, writeEnd)
		copy(expanded, buffer)
		buffer = expanded
	}
	copy(buffer[offset:], buf)

	pair.Value = buffer
	pair.Flags = uint64(time.Now().UnixNano())
	if _, err := cb.kv.Put(pair, writeOptions(ctx)); err != nil {
		return 0, err
	}

	return len(buf), nil
}

// DeleteObject deletes an object (file or directory)
func (cb *ConsulBackend) DeleteObject(ctx context.Context, key string, force bool) error {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	key = data.CleanKey(key)
	if key == "" {
		return data.ErrPermission
	}

	stat, err := cb.head(ctx, key)
	if err != nil {
		return err
	}

	if !stat.IsDir() {
		_, err := cb.kv.Delete(cb.fileKey(key), writeOptions(ctx))
		return err
	}

	if !force {
		return data.ErrIsDirectory
	}

	_, err = cb.kv.DeleteTree(cb.dirKey(key), writeOptions(ctx))
	return err
}

// ListObjects lists the immediate children of a directory
func (cb *ConsulBackend) ListObjects(ctx context.Context, key string) ([]*data.FileStat, error) {
	cb.mu.RLock()
	defer cb.mu.RUnlock()

	key = data.CleanKey(key)
	stat, err := cb.head(ctx, key)
	if err != nil {
		return nil, err
	}
	if !stat.IsDir() {
		return nil, data.ErrNotDirectory
	}

	prefix := cb.dirKey(key)
	keys, _, err := cb.kv.Keys(prefix, "/", queryOptions(ctx))
	if err != nil {
		return nil, err
	}

	stats := make([]*data.FileStat, 0, len(keys))
	for _, consulKey := range keys {
		if consulKey == prefix {
			continue
		}

		childKey := cb.relativeKey(consulKey)
		if strings.HasSuffix(consulKey, "/") {
			stats = append(stats, directoryStat(childKey, 0))
			continue
		}

		pair, _, err := cb.kv.Get(consulKey, queryOptions(ctx))
		if err != nil {
			return nil, err
		}
		// Removed between Keys and Get
		if pair == nil {
			continue
		}
		stats = append(stats, fileStat(childKey, pair))
	}

	slices.SortFunc(stats, func(a, b *data.FileStat) int {
		return strings.Compare(a.Key, b.Key)
	})

	return stats, nil
}

// HeadObject retrieves object metadata
func (cb *ConsulBackend) HeadObject(ctx context.Context, key string) (*data.FileStat, error) {
	cb.mu.RLock()
	defer cb.mu.RUnlock()

	return cb.head(ctx, data.CleanKey(key))
}

func (cb *ConsulBackend) head(ctx context.Context, key string) (*data.FileStat, error) {
	if key == "" {
		return directoryStat("", 0), nil
	}

	pair, _, err := cb.kv.Get(cb.fileKey(key), queryOptions(ctx))
	if err != nil {
		return nil, err
	}
	if pair != nil {
		return fileStat(key, pair), nil
	}

	pair, _, err = cb.kv.Get(cb.dirKey(key), queryOptions(ctx))
	if err != nil {
		return nil, err
	}
	if pair != nil {
		return directoryStat(key, pair.Flags), nil
	}

	// Folders written by other tools may exist only as a prefix
	keys, _, err := cb.kv.Keys(cb.dirKey(key), "/", queryOptions(ctx))
	if err != nil {
		return nil, err
	}
	if len(keys) > 0 {
		return directoryStat(key, 0), nil
	}

	return nil, data.ErrNotExist
}

// getFile returns the KV pair of a file, distinguishing directories from missing keys.
func (cb *ConsulBackend) getFile(ctx context.Context, key string) (*api.KVPair, error) {
	if key == "" {
		return nil, data.ErrIsDirectory
	}

	pair, _, err := cb.kv.Get(cb.fileKey(key), queryOptions(ctx))
	if err != nil {
		return nil, err
	}
	if pair != nil {
		return pair, nil
	}

	if _, err := cb.head(ctx, key); err == nil {
		return nil, data.ErrIsDirectory
	}

	return nil, data.ErrNotExist
}

func fileStat(key string, pair *api.KVPair) *data.FileStat {
	modifyTime := time.Unix(0, int64(pair.Flags))
	return &data.FileStat{
		Key:         key,
		Mode:        data.DefaultFileMode,
		Size:        int64(len(pair.Value)),
		ModifyTime:  modifyTime,
		CreateTime:  modifyTime,
		ContentType: data.DetectContentType(key, pair.Value),
	}
}

func directoryStat(key string, flags uint64) *data.FileStat {
	modifyTime := time.Unix(0, int64(flags))
	return &data.FileStat{
		Key:         key,
		Mode:        data.DefaultDirMode,
		ModifyTime:  modifyTime,
		CreateTime:  modifyTime,
		ContentType: data.ContentTypeDirectory,
	}
}

func queryOptions(ctx context.Context) *api.QueryOptions {
	return (&api.QueryOptions{}).WithContext(ctx)
}

func writeOptions(ctx context.Context) *api.WriteOptions {
	return (&api.WriteOptions{}).WithContext(ctx)
}
