package backend_test

import (
	"context"
	"io"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/mwantia/photofs/backend"
	"github.com/mwantia/photofs/backend/consul"
	"github.com/mwantia/photofs/backend/direct"
	"github.com/mwantia/photofs/backend/ephemeral"
	"github.com/mwantia/photofs/backend/postgres"
	"github.com/mwantia/photofs/backend/s3"
	"github.com/mwantia/photofs/backend/sqlite"
	"github.com/mwantia/photofs/data"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBackendFactory creates a new backend instance for testing.
type TestBackendFactory func(t *testing.T) (backend.ObjectStorageBackend, error)

// GetTestBackendFactories returns all backend implementations to test.
// Backends that need an external service only run when its address is set.
func GetTestBackendFactories() map[string]TestBackendFactory {
	factories := map[string]TestBackendFactory{
		"direct": func(t *testing.T) (backend.ObjectStorageBackend, error) {
			return direct.NewDirectBackend(t.TempDir())
		},
		"ephemeral": func(t *testing.T) (backend.ObjectStorageBackend, error) {
			return ephemeral.NewEphemeralBackend(), nil
		},
		"sqlite": func(t *testing.T) (backend.ObjectStorageBackend, error) {
			return sqlite.NewSQLiteBackend(":memory:")
		},
	}

	if dsn := os.Getenv("PHOTOFS_TEST_POSTGRES"); dsn != "" {
		factories["postgres"] = func(t *testing.T) (backend.ObjectStorageBackend, error) {
			return postgres.NewPostgresBackend(t.Context(), dsn)
		}
	}

	if address := os.Getenv("PHOTOFS_TEST_CONSUL"); address != "" {
		factories["consul"] = func(t *testing.T) (backend.ObjectStorageBackend, error) {
			return consul.NewConsulBackend(&consul.ConsulBackendConfig{
				Address: address,
				Prefix:  "photofs-test",
			})
		}
	}

	if endpoint := os.Getenv("PHOTOFS_TEST_S3"); endpoint != "" {
		factories["s3"] = func(t *testing.T) (backend.ObjectStorageBackend, error) {
			return s3.NewS3Backend(&s3.S3BackendConfig{
				Endpoint:  endpoint,
				Bucket:    "photofs-test",
				AccessKey: "minioadmin",
				SecretKey: "minioadmin",
			})
		}
	}

	return factories
}

// forEachBackend opens every backend and hands the test a fresh base directory,
// so shared external services do not leak state between tests.
func forEachBackend(t *testing.T, fn func(t *testing.T, ctx context.Context, b backend.ObjectStorageBackend, base string)) {
	for name, factory := range GetTestBackendFactories() {
		t.Run(name, func(tst *testing.T) {
			ctx := tst.Context()

			b, err := factory(tst)
			require.NoError(tst, err, "Backend init failed")
			require.NoError(tst, b.Open(ctx), "Backend open failed")

			base := uuid.NewString()
			_, err = b.CreateObject(ctx, base, data.ModeDir)
			require.NoError(tst, err)

			tst.Cleanup(func() {
				_ = b.DeleteObject(context.Background(), base, true)
				_ = b.Close(context.Background())
			})

			fn(tst, ctx, b, base)
		})
	}
}

// TestAllBackends_FileOperations verifies basic file create, write, and read operations
// across all backend implementations.
func TestAllBackends_FileOperations(t *testing.T) {
	forEachBackend(t, func(t *testing.T, ctx context.Context, b backend.ObjectStorageBackend, base string) {
		key := data.JoinKey(base, "trip-1.jpg")

		stat, err := b.CreateObject(ctx, key, 0)
		require.NoError(t, err)
		assert.Equal(t, "trip-1.jpg", stat.Name())
		assert.False(t, stat.IsDir())

		n, err := b.WriteObject(ctx, key, 0, []byte("hello world"))
		require.NoError(t, err)
		assert.Equal(t, 11, n)

		stat, err = b.HeadObject(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, int64(11), stat.Size)
		assert.Equal(t, data.ContentTypeImageJPEG, stat.ContentType)

		buf := make([]byte, 5)
		n, err = b.ReadObject(ctx, key, 6, buf)
		require.NoError(t, err)
		assert.Equal(t, "world", string(buf[:n]))

		_, err = b.ReadObject(ctx, key, 11, buf)
		assert.ErrorIs(t, err, io.EOF)
	})
}

// TestAllBackends_WriteAtOffset verifies that writes past the end grow the object.
func TestAllBackends_WriteAtOffset(t *testing.T) {
	forEachBackend(t, func(t *testing.T, ctx context.Context, b backend.ObjectStorageBackend, base string) {
		key := data.JoinKey(base, "note.txt")

		_, err := b.CreateObject(ctx, key, 0)
		require.NoError(t, err)

		_, err = b.WriteObject(ctx, key, 0, []byte("abc"))
		require.NoError(t, err)
		_, err = b.WriteObject(ctx, key, 2, []byte("XYZ"))
		require.NoError(t, err)

		buf := make([]byte, 16)
		n, err := b.ReadObject(ctx, key, 0, buf)
		require.NoError(t, err)
		assert.Equal(t, "abXYZ", string(buf[:n]))
	})
}

// TestAllBackends_ListObjects verifies that listings hold only immediate children in name order.
func TestAllBackends_ListObjects(t *testing.T) {
	forEachBackend(t, func(t *testing.T, ctx context.Context, b backend.ObjectStorageBackend, base string) {
		for _, name := range []string{"zeta", "alpha", "mid"} {
			_, err := b.CreateObject(ctx, data.JoinKey(base, name), data.ModeDir)
			require.NoError(t, err)
		}
		_, err := b.CreateObject(ctx, data.JoinKey(base, "beta.png"), 0)
		require.NoError(t, err)
		_, err = b.CreateObject(ctx, data.JoinKey(base, "alpha/nested.png"), 0)
		require.NoError(t, err)

		stats, err := b.ListObjects(ctx, base)
		require.NoError(t, err)

		names := make([]string, 0, len(stats))
		for _, stat := range stats {
			names = append(names, stat.Name())
		}
		assert.Equal(t, []string{"alpha", "beta.png", "mid", "zeta"}, names)
		assert.True(t, stats[0].IsDir())
		assert.False(t, stats[1].IsDir())

		empty, err := b.ListObjects(ctx, data.JoinKey(base, "mid"))
		require.NoError(t, err)
		assert.Empty(t, empty)

		_, err = b.ListObjects(ctx, data.JoinKey(base, "beta.png"))
		assert.ErrorIs(t, err, data.ErrNotDirectory)

		_, err = b.ListObjects(ctx, data.JoinKey(base, "missing"))
		assert.ErrorIs(t, err, data.ErrNotExist)
	})
}

// TestAllBackends_CreateConflicts verifies parent checks and exclusive creation.
func TestAllBackends_CreateConflicts(t *testing.T) {
	forEachBackend(t, func(t *testing.T, ctx context.Context, b backend.ObjectStorageBackend, base string) {
		key := data.JoinKey(base, "photo.jpg")

		_, err := b.CreateObject(ctx, key, 0)
		require.NoError(t, err)

		_, err = b.CreateObject(ctx, key, 0)
		assert.ErrorIs(t, err, data.ErrExist)

		_, err = b.CreateObject(ctx, data.JoinKey(base, "missing/photo.jpg"), 0)
		assert.ErrorIs(t, err, data.ErrNotExist)

		_, err = b.CreateObject(ctx, data.JoinKey(key, "child"), 0)
		assert.ErrorIs(t, err, data.ErrNotDirectory)
	})
}

// TestAllBackends_DeleteObject verifies file removal and recursive directory removal.
func TestAllBackends_DeleteObject(t *testing.T) {
	forEachBackend(t, func(t *testing.T, ctx context.Context, b backend.ObjectStorageBackend, base string) {
		dir := data.JoinKey(base, "album")
		file := data.JoinKey(dir, "one.jpg")

		_, err := b.CreateObject(ctx, dir, data.ModeDir)
		require.NoError(t, err)
		_, err = b.CreateObject(ctx, file, 0)
		require.NoError(t, err)

		assert.ErrorIs(t, b.DeleteObject(ctx, dir, false), data.ErrIsDirectory)
		assert.ErrorIs(t, b.DeleteObject(ctx, "", true), data.ErrPermission)

		require.NoError(t, b.DeleteObject(ctx, file, false))
		_, err = b.HeadObject(ctx, file)
		assert.ErrorIs(t, err, data.ErrNotExist)

		_, err = b.CreateObject(ctx, file, 0)
		require.NoError(t, err)
		require.NoError(t, b.DeleteObject(ctx, dir, true))

		_, err = b.HeadObject(ctx, dir)
		assert.ErrorIs(t, err, data.ErrNotExist)
		_, err = b.HeadObject(ctx, file)
		assert.ErrorIs(t, err, data.ErrNotExist)
	})
}

// TestAllBackends_Capabilities verifies the capability contract shared by every backend.
func TestAllBackends_Capabilities(t *testing.T) {
	forEachBackend(t, func(t *testing.T, ctx context.Context, b backend.ObjectStorageBackend, base string) {
		caps := b.GetCapabilities()
		assert.True(t, caps.Contains(backend.CapabilityObjectStorage))
		assert.True(t, caps.Accepts(1024))
		assert.NotEmpty(t, b.Name())
	})
}
