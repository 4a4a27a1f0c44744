package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/mwantia/photofs/data"
)

const selectStat = `SELECT key, mode, size, content_type, modify_time, create_time FROM photofs_objects`

func (sb *SQLiteBackend) CreateObject(ctx context.Context, key string, mode data.FileMode) (*data.FileStat, error) {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	key = data.CleanKey(key)
	if key == "" {
		return nil, data.ErrExist
	}

	parent := data.ParentKey(key)
	if parent != "" {
		parentStat, err := sb.headUnsafe(ctx, parent)
		if err != nil {
			return nil, err
		}
		if !parentStat.IsDir() {
			return nil, data.ErrNotDirectory
		}
	}

	now := time.Now()
	stat := &data.FileStat{
		Key:         key,
		Mode:        data.DefaultFileMode,
		CreateTime:  now,
		ModifyTime:  now,
		ContentType: string(data.GetMIMEType(key)),
	}
	if mode.IsDir() {
		stat.Mode = data.DefaultDirMode
		stat.ContentType = data.ContentTypeDirectory
	}

	_, err := sb.db.ExecContext(ctx, `
		INSERT INTO photofs_objects (id, key, parent, mode, size, content, content_type, modify_time, create_time)
		VALUES (?, ?, ?, ?, 0, X'', ?, ?, ?)
	`, uuid.Must(uuid.NewV7()).String(), key, parent, int64(stat.Mode), stat.ContentType,
		now.UnixNano(), now.UnixNano())
	if isUniqueViolation(err) {
		return nil, data.ErrExist
	}
	if err != nil {
		return nil, err
	}

	return stat, nil
}

func (sb *SQLiteBackend) ReadObject(ctx context.Context, key string, offset int64, buf []byte) (int, error) {
	sb.mu.RLock()
	defer sb.mu.RUnlock()

	stat, err := sb.headUnsafe(ctx, data.CleanKey(key))
	if err != nil {
		return 0, err
	}
	if stat.IsDir() {
		return 0, data.ErrIsDirectory
	}
	if offset >= stat.Size {
		return 0, io.EOF
	}

	var chunk []byte
	// substr is 1-based on BLOBs
	err = sb.db.QueryRowContext(ctx, `SELECT substr(content, ?, ?) FROM photofs_objects WHERE key = ?`,
		offset+1, len(buf), stat.Key).Scan(&chunk)
	if err != nil {
		return 0, err
	}

	return copy(buf, chunk), nil
}

func (sb *SQLiteBackend) WriteObject(ctx context.Context, key string, offset int64, buf []byte) (int, error) {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	key = data.CleanKey(key)
	if offset < 0 {
		return 0, data.ErrInvalid
	}

	var mode int64
	var content []byte
	var contentType sql.NullString
	err := sb.db.QueryRowContext(ctx, `SELECT mode, content, content_type FROM photofs_objects WHERE key = ?`, key).
		Scan(&mode, &content, &contentType)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, data.ErrNotExist
	}
	if err != nil {
		return 0, err
	}
	if data.FileMode(mode).IsDir() {
		return 0, data.ErrIsDirectory
	}

	writeEnd := offset + int64(len(buf))
	if int64(len(content)) < writeEnd {
		expanded := make([]byte, writeEnd)
		copy(expanded, content)
		content = expanded
	}
	copy(content[offset:], buf)

	ct := contentType.String
	if ct == "" || ct == data.ContentTypeApplicationStream {
		ct = data.DetectContentType(key, content)
	}

	_, err = sb.db.ExecContext(ctx, `
		UPDATE photofs_objects SET content = ?, size = ?, content_type = ?, modify_time = ? WHERE key = ?
	`, content, len(content), ct, time.Now().UnixNano(), key)
	if err != nil {
		return 0, err
	}

	return len(buf), nil
}

func (sb *SQLiteBackend) DeleteObject(ctx context.Context, key string, force bool) error {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	key = data.CleanKey(key)
	if key == "" {
		return data.ErrPermission
	}

	stat, err := sb.headUnsafe(ctx, key)
	if err != nil {
		return err
	}

	if !stat.IsDir() {
		_, err := sb.db.ExecContext(ctx, `DELETE FROM photofs_objects WHERE key = ?`, key)
		return err
	}

	if !force {
		return data.ErrIsDirectory
	}

	prefix := key + "/"
	_, err = sb.db.ExecContext(ctx, `
		DELETE FROM photofs_objects WHERE key = ? OR substr(key, 1, ?) = ?
	`, key, len(prefix), prefix)
	return err
}

func (sb *SQLiteBackend) ListObjects(ctx context.Context, key string) ([]*data.FileStat, error) {
	sb.mu.RLock()
	defer sb.mu.RUnlock()

	key = data.CleanKey(key)
	if key != "" {
		stat, err := sb.headUnsafe(ctx, key)
		if err != nil {
			return nil, err
		}
		if !stat.IsDir() {
			return nil, data.ErrNotDirectory
		}
	}

	rows, err := sb.db.QueryContext(ctx, selectStat+` WHERE parent = ? ORDER BY key`, key)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := make([]*data.FileStat, 0)
	for rows.Next() {
		stat, err := scanStat(rows)
		if err != nil {
			return nil, err
		}
		stats = append(stats, stat)
	}

	return stats, rows.Err()
}

func (sb *SQLiteBackend) HeadObject(ctx context.Context, key string) (*data.FileStat, error) {
	sb.mu.RLock()
	defer sb.mu.RUnlock()

	return sb.headUnsafe(ctx, data.CleanKey(key))
}

// headUnsafe reads the stat of key. Must be called with lock held.
func (sb *SQLiteBackend) headUnsafe(ctx context.Context, key string) (*data.FileStat, error) {
	if key == "" {
		return &data.FileStat{
			Mode:        data.DefaultDirMode,
			ContentType: data.ContentTypeDirectory,
		}, nil
	}

	stat, err := scanStat(sb.db.QueryRowContext(ctx, selectStat+` WHERE key = ?`, key))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, data.ErrNotExist
	}

	return stat, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanStat(row scanner) (*data.FileStat, error) {
	var stat data.FileStat
	var mode int64
	var contentType sql.NullString
	var modifyTime, createTime int64

	if err := row.Scan(&stat.Key, &mode, &stat.Size, &contentType, &modifyTime, &createTime); err != nil {
		return nil, err
	}

	stat.Mode = data.FileMode(mode)
	stat.ContentType = contentType.String
	stat.ModifyTime = time.Unix(0, modifyTime)
	stat.CreateTime = time.Unix(0, createTime)

	return &stat, nil
}
