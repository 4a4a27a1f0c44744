package s3

import (
	"bytes"
	"context"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/mwantia/photofs/data"
)

func (sb *S3Backend) CreateObject(ctx context.Context, key string, mode data.FileMode) (*data.FileStat, error) {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	key = data.CleanKey(key)
	if key == "" {
		return nil, data.ErrExist
	}

	parent, err := sb.head(ctx, data.ParentKey(key))
	if err != nil {
		return nil, err
	}
	if !parent.IsDir() {
		return nil, data.ErrNotDirectory
	}

	// Check if object already exists
	if _, err := sb.head(ctx, key); err == nil {
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
	objectKey := sb.fileKey(key)
	if mode.IsDir() {
		stat.Mode = data.DefaultDirMode
		stat.ContentType = data.ContentTypeDirectory
		objectKey = sb.dirKey(key)
	}

	_, err = sb.client.PutObject(ctx, sb.config.Bucket, objectKey, bytes.NewReader([]byte{}), 0, minio.PutObjectOptions{
		ContentType: stat.ContentType,
	})
	if err != nil {
		return nil, err
	}

	return stat, nil
}

func (sb *S3Backend) ReadObject(ctx context.Context, key string, offset int64, buf []byte) (int, error) {
	sb.mu.RLock()
	defer sb.mu.RUnlock()

	stat, err := sb.head(ctx, data.CleanKey(key))
	if err != nil {
		return 0, err
	}
	if stat.IsDir() {
		return 0, data.ErrIsDirectory
	}
	if offset >= stat.Size {
		return 0, io.EOF
	}
	if len(buf) == 0 {
		return 0, nil
	}

	opts := minio.GetObjectOptions{}
	end := min(offset+int64(len(buf)), stat.Size) - 1
	if err := opts.SetRange(offset, end); err != nil {
		return 0, err
	}

	object, err := sb.client.GetObject(ctx, sb.config.Bucket, sb.fileKey(stat.Key), opts)
	if err != nil {
		return 0, err
	}
	defer object.Close()

	n, err := io.ReadFull(object, buf[:end-offset+1])
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return n, err
	}

	return n, nil
}

func (sb *S3Backend) WriteObject(ctx context.Context, key string, offset int64, buf []byte) (int, error) {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	key = data.CleanKey(key)
	if offset < 0 {
		return 0, data.ErrInvalid
	}

	stat, err := sb.head(ctx, key)
	if err != nil {
		return 0, err
	}
	if stat.IsDir() {
		return 0, data.ErrIsDirectory
	}

	writeEnd := offset + int64(len(buf))
	if capabilities := sb.GetCapabilities(); !capabilities.Accepts(writeEnd) {
		return 0, data.TooLarge(writeEnd, capabilities.MaxObjectSize)
	}

	// S3 doesn't support partial writes - we need to read-modify-write
	var existing []byte
	if stat.Size > 0 {
		object, err := sb.client.GetObject(ctx, sb.config.Bucket, sb.fileKey(key), minio.GetObjectOptions{})
		if err != nil {
			return 0, err
		}
		existing, err = io.ReadAll(object)
		object.Close()
		if err != nil {
			return 0, err
		}
	}

	content := make([]byte, max(writeEnd, int64(len(existing))))
	copy(content, existing)
	copy(content[offset:], buf)

	_, err = sb.client.PutObject(ctx, sb.config.Bucket, sb.fileKey(key), bytes.NewReader(content), int64(len(content)), minio.PutObjectOptions{
		ContentType: data.DetectContentType(key, content),
	})
	if err != nil {
		return 0, err
	}

	return len(buf), nil
}

func (sb *S3Backend) DeleteObject(ctx context.Context, key string, force bool) error {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	key = data.CleanKey(key)
	if key == "" {
		return data.ErrPermission
	}

	stat, err := sb.head(ctx, key)
	if err != nil {
		return err
	}

	if !stat.IsDir() {
		return sb.client.RemoveObject(ctx, sb.config.Bucket, sb.fileKey(key), minio.RemoveObjectOptions{})
	}

	if !force {
		return data.ErrIsDirectory
	}

	// Delete directory marker and all its contents
	objectsCh := sb.client.ListObjects(ctx, sb.config.Bucket, minio.ListObjectsOptions{
		Prefix:    sb.dirKey(key),
		Recursive: true,
	})

	errs := data.Errors{}
	for object := range objectsCh {
		if object.Err != nil {
			return object.Err
		}
		if err := sb.client.RemoveObject(ctx, sb.config.Bucket, object.Key, minio.RemoveObjectOptions{}); err != nil {
			errs.Add(err)
		}
	}

	return errs.Errors()
}

func (sb *S3Backend) ListObjects(ctx context.Context, key string) ([]*data.FileStat, error) {
	sb.mu.RLock()
	defer sb.mu.RUnlock()

	key = data.CleanKey(key)
	stat, err := sb.head(ctx, key)
	if err != nil {
		return nil, err
	}
	if !stat.IsDir() {
		return nil, data.ErrNotDirectory
	}

	prefix := sb.dirKey(key)
	// List objects with delimiter to get only direct children
	objectsCh := sb.client.ListObjects(ctx, sb.config.Bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: false,
	})

	stats := make([]*data.FileStat, 0)
	for object := range objectsCh {
		if object.Err != nil {
			return nil, object.Err
		}

		// Skip the directory marker itself
		if object.Key == prefix {
			continue
		}

		stats = append(stats, sb.toFileStat(object))
	}

	slices.SortFunc(stats, func(a, b *data.FileStat) int {
		return strings.Compare(a.Key, b.Key)
	})

	return stats, nil
}

func (sb *S3Backend) HeadObject(ctx context.Context, key string) (*data.FileStat, error) {
	sb.mu.RLock()
	defer sb.mu.RUnlock()

	return sb.head(ctx, data.CleanKey(key))
}

func (sb *S3Backend) head(ctx context.Context, key string) (*data.FileStat, error) {
	// Handle empty key (root of bucket) - return synthetic directory stat
	if key == "" {
		return &data.FileStat{
			Mode:        data.DefaultDirMode,
			ContentType: data.ContentTypeDirectory,
		}, nil
	}

	objInfo, err := sb.client.StatObject(ctx, sb.config.Bucket, sb.fileKey(key), minio.StatObjectOptions{})
	if err == nil {
		return sb.toFileStat(objInfo), nil
	}
	if !isNoSuchKey(err) {
		return nil, err
	}

	objInfo, err = sb.client.StatObject(ctx, sb.config.Bucket, sb.dirKey(key), minio.StatObjectOptions{})
	if err == nil {
		return sb.toFileStat(objInfo), nil
	}
	if !isNoSuchKey(err) {
		return nil, err
	}

	// Directories uploaded by other tools may exist only as a common prefix
	for object := range sb.client.ListObjects(ctx, sb.config.Bucket, minio.ListObjectsOptions{
		Prefix:  sb.dirKey(key),
		MaxKeys: 1,
	}) {
		if object.Err != nil {
			return nil, object.Err
		}
		return &data.FileStat{
			Key:         key,
			Mode:        data.DefaultDirMode,
			ContentType: data.ContentTypeDirectory,
		}, nil
	}

	return nil, data.ErrNotExist
}

// toFileStat converts minio.ObjectInfo to FileStat
func (sb *S3Backend) toFileStat(objInfo minio.ObjectInfo) *data.FileStat {
	stat := &data.FileStat{
		Key:        sb.relativeKey(objInfo.Key),
		Size:       objInfo.Size,
		Mode:       data.DefaultFileMode,
		ModifyTime: objInfo.LastModified,
		// S3 doesn't track creation time separately
		CreateTime:  objInfo.LastModified,
		ContentType: data.BaseMediaType(objInfo.ContentType),
	}

	if strings.HasSuffix(objInfo.Key, "/") || stat.ContentType == data.ContentTypeDirectory {
		stat.Mode = data.DefaultDirMode
		stat.ContentType = data.ContentTypeDirectory
		stat.Size = 0
		return stat
	}

	if stat.ContentType == "" || stat.ContentType == data.ContentTypeApplicationStream {
		stat.ContentType = data.DetectContentType(stat.Key, nil)
	}

	return stat
}
