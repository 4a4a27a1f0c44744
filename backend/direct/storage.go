package direct

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/mwantia/photofs/data"
)

func (db *DirectBackend) CreateObject(ctx context.Context, key string, mode data.FileMode) (*data.FileStat, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	key = data.CleanKey(key)
	if key == "" {
		return nil, data.ErrExist
	}

	fullPath := db.resolvePath(key)
	if _, err := os.Stat(filepath.Dir(fullPath)); err != nil {
		return nil, translate(err)
	}

	now := time.Now()
	if mode.IsDir() {
		if err := os.Mkdir(fullPath, os.FileMode(data.DefaultDirMode.Perm())); err != nil {
			return nil, translate(err)
		}

		return &data.FileStat{
			Key:         key,
			Mode:        data.DefaultDirMode,
			CreateTime:  now,
			ModifyTime:  now,
			ContentType: data.ContentTypeDirectory,
		}, nil
	}

	// O_EXCL makes concurrent captures of the same name fail instead of overwrite
	file, err := os.OpenFile(fullPath, os.O_RDWR|os.O_CREATE|os.O_EXCL, os.FileMode(data.DefaultFileMode.Perm()))
	if err != nil {
		return nil, translate(err)
	}

	return &data.FileStat{
		Key:  key,
		Mode: data.DefaultFileMode,
		Size: 0,

		CreateTime:  now,
		ModifyTime:  now,
		ContentType: string(data.GetMIMEType(key)),
	}, file.Close()
}

func (db *DirectBackend) ReadObject(ctx context.Context, key string, offset int64, buf []byte) (int, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	fullPath := db.resolvePath(key)

	info, err := os.Stat(fullPath)
	if err != nil {
		return 0, translate(err)
	}
	if info.IsDir() {
		return 0, data.ErrIsDirectory
	}

	file, err := os.Open(fullPath)
	if err != nil {
		return 0, translate(err)
	}
	defer file.Close()

	n, err := file.ReadAt(buf, offset)
	if err == io.EOF && n > 0 {
		// A short read at the end is reported as EOF on the next call
		return n, nil
	}

	return n, err
}

func (db *DirectBackend) WriteObject(ctx context.Context, key string, offset int64, buf []byte) (int, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	fullPath := db.resolvePath(key)

	file, err := os.OpenFile(fullPath, os.O_RDWR, 0)
	if err != nil {
		if info, statErr := os.Stat(fullPath); statErr == nil && info.IsDir() {
			return 0, data.ErrIsDirectory
		}
		return 0, translate(err)
	}
	defer file.Close()

	return file.WriteAt(buf, offset)
}

func (db *DirectBackend) DeleteObject(ctx context.Context, key string, force bool) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	key = data.CleanKey(key)
	if key == "" {
		return data.ErrPermission
	}

	fullPath := db.resolvePath(key)

	info, err := os.Stat(fullPath)
	if err != nil {
		return translate(err)
	}

	if info.IsDir() {
		if !force {
			// Directories require force=true to delete
			return data.ErrIsDirectory
		}

		return translate(os.RemoveAll(fullPath))
	}

	return translate(os.Remove(fullPath))
}

func (db *DirectBackend) ListObjects(ctx context.Context, key string) ([]*data.FileStat, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	key = data.CleanKey(key)
	fullPath := db.resolvePath(key)

	info, err := os.Stat(fullPath)
	if err != nil {
		return nil, translate(err)
	}

	if !info.IsDir() {
		return nil, data.ErrNotDirectory
	}

	entries, err := os.ReadDir(fullPath)
	if err != nil {
		return nil, translate(err)
	}

	stats := make([]*data.FileStat, 0, len(entries))
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		childInfo, err := entry.Info()
		if err != nil {
			// Removed between ReadDir and Info
			continue
		}

		childPath := filepath.Join(fullPath, entry.Name())
		stat := db.toFileStat(data.JoinKey(key, entry.Name()), childPath, childInfo)
		if !stat.IsDir() && !stat.Mode.IsRegular() {
			continue
		}

		stats = append(stats, stat)
	}

	sort.Slice(stats, func(i, j int) bool {
		return stats[i].Key < stats[j].Key
	})

	return stats, nil
}

func (db *DirectBackend) HeadObject(ctx context.Context, key string) (*data.FileStat, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	key = data.CleanKey(key)
	fullPath := db.resolvePath(key)

	info, err := os.Stat(fullPath)
	if err != nil {
		return nil, translate(err)
	}

	return db.toFileStat(key, fullPath, info), nil
}
