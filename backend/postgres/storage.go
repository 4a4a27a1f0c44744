package postgres

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/mwantia/photofs/data"
)

const selectStat = `SELECT key, mode, size, content_type, modify_time, create_time FROM photofs_objects`

func (pb *PostgresBackend) CreateObject(ctx context.Context, key string, mode data.FileMode) (*data.FileStat, error) {
	pb.mu.Lock()
	defer pb.mu.Unlock()

	key = data.CleanKey(key)
	if key == "" {
		return nil, data.ErrExist
	}

	parent := data.ParentKey(key)
	if parent != "" {
		parentStat, err := pb.head(ctx, parent)
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

	_, err := pb.pool.Exec(ctx, `
		INSERT INTO photofs_objects (id, key, parent, mode, size, content_type, modify_time, create_time)
		VALUES ($1, $2, $3, $4, 0, $5, $6, $7)
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

func (pb *PostgresBackend) ReadObject(ctx context.Context, key string, offset int64, buf []byte) (int, error) {
	pb.mu.RLock()
	defer pb.mu.RUnlock()

	stat, err := pb.head(ctx, data.CleanKey(key))
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
	err = pb.pool.QueryRow(ctx, `SELECT substring(content FROM $1 FOR $2) FROM photofs_objects WHERE key = $3`,
		offset+1, len(buf), stat.Key).Scan(&chunk)
	if err != nil {
		return 0, err
	}

	return copy(buf, chunk), nil
}

func (pb *PostgresBackend) WriteObject(ctx context.Context, key string, offset int64, buf []byte) (int, error) {
	pb.mu.Lock()
	defer pb.mu.Unlock()

	key = data.CleanKey(key)
	if offset < 0 {
		return 0, data.ErrInvalid
	}

	tx, err := pb.pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	var mode int64
	var content []byte
	var contentType *string
	err = tx.QueryRow(ctx, `SELECT mode, content, content_type FROM photofs_objects WHERE key = $1 FOR UPDATE`, key).
		Scan(&mode, &content, &contentType)
	if errors.Is(err, pgx.ErrNoRows) {
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

	ct := ""
	if contentType != nil {
		ct = *contentType
	}
	if ct == "" || ct == data.ContentTypeApplicationStream {
		ct = data.DetectContentType(key, content)
	}

	_, err = tx.Exec(ctx, `
		UPDATE photofs_objects SET content = $1, size = $2, content_type = $3, modify_time = $4 WHERE key = $5
	`, content, len(content), ct, time.Now().UnixNano(), key)
	if err != nil {
		return 0, err
	}

	return len(buf), tx.Commit(ctx)
}

func (pb *PostgresBackend) DeleteObject(ctx context.Context, key string, force bool) error {
	pb.mu.Lock()
	defer pb.mu.Unlock()

	key = data.CleanKey(key)
	if key == "" {
		return data.ErrPermission
	}

	stat, err := pb.head(ctx, key)
	if err != nil {
		return err
	}

	if !stat.IsDir() {
		_, err := pb.pool.Exec(ctx, `DELETE FROM photofs_objects WHERE key = $1`, key)
		return err
	}

	if !force {
		return data.ErrIsDirectory
	}

	prefix := key + "/"
	_, err = pb.pool.Exec(ctx, `
		DELETE FROM photofs_objects WHERE key = $1 OR left(key, $2) = $3
	`, key, len(prefix), prefix)
	return err
}

func (pb *PostgresBackend) ListObjects(ctx context.Context, key string) ([]*data.FileStat, error) {
	pb.mu.RLock()
	defer pb.mu.RUnlock()

	key = data.CleanKey(key)
	if key != "" {
		stat, err := pb.head(ctx, key)
		if err != nil {
			return nil, err
		}
		if !stat.IsDir() {
			return nil, data.ErrNotDirectory
		}
	}

	// COLLATE "C" keeps byte order, matching the other backends
	rows, err := pb.pool.Query(ctx, selectStat+` WHERE parent = $1 ORDER BY key COLLATE "C"`, key)
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

func (pb *PostgresBackend) HeadObject(ctx context.Context, key string) (*data.FileStat, error) {
	pb.mu.RLock()
	defer pb.mu.RUnlock()

	return pb.head(ctx, data.CleanKey(key))
}

func (pb *PostgresBackend) head(ctx context.Context, key string) (*data.FileStat, error) {
	if key == "" {
		return &data.FileStat{
			Mode:        data.DefaultDirMode,
			ContentType: data.ContentTypeDirectory,
		}, nil
	}

	stat, err := scanStat(pb.pool.QueryRow(ctx, selectStat+` WHERE key = $1`, key))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, data.ErrNotExist
	}

	return stat, err
}

func scanStat(row pgx.Row) (*data.FileStat, error) {
	var stat data.FileStat
	var mode int64
	var contentType *string
	var modifyTime, createTime int64

	if err := row.Scan(&stat.Key, &mode, &stat.Size, &contentType, &modifyTime, &createTime); err != nil {
		return nil, err
	}

	stat.Mode = data.FileMode(mode)
	if contentType != nil {
		stat.ContentType = *contentType
	}
	stat.ModifyTime = time.Unix(0, modifyTime)
	stat.CreateTime = time.Unix(0, createTime)

	return &stat, nil
}
