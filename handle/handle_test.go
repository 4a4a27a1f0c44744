package handle_test

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/mwantia/photofs/backend/ephemeral"
	"github.com/mwantia/photofs/data"
	"github.com/mwantia/photofs/handle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRoot(t *testing.T) *handle.Root {
	t.Helper()

	storage := ephemeral.NewEphemeralBackend()
	require.NoError(t, storage.Open(t.Context()))

	return handle.NewRoot(storage)
}

func TestValidateName(t *testing.T) {
	tests := []struct {
		name  string
		valid bool
	}{
		{"Summer Trip", true},
		{"trip-1.jpg", true},
		{"", false},
		{"   ", false},
		{".", false},
		{"..", false},
		{"a/b", false},
		{"nul\x00byte", false},
	}

	for _, tt := range tests {
		err := handle.ValidateName(tt.name)
		if tt.valid {
			assert.NoError(t, err, tt.name)
		} else {
			assert.ErrorIs(t, err, data.ErrInvalidName, tt.name)
		}
	}
}

func TestDirectory_CreateAndEntries(t *testing.T) {
	ctx := t.Context()
	root := newRoot(t).Directory()

	trip, err := root.CreateDirectory(ctx, "Summer Trip")
	require.NoError(t, err)
	assert.Equal(t, "Summer Trip", trip.Name())

	again, err := root.CreateDirectory(ctx, "Summer Trip")
	require.NoError(t, err)
	assert.Equal(t, trip.Name(), again.Name())

	_, err = trip.CreateFile(ctx, "beach.jpg", strings.NewReader("jpeg"))
	require.NoError(t, err)
	_, err = trip.CreateDirectory(ctx, "Day 1")
	require.NoError(t, err)

	entries, err := trip.Entries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Day 1", entries[0].Name())
	assert.True(t, entries[0].IsDir())
	assert.Equal(t, "beach.jpg", entries[1].Name())
	assert.False(t, entries[1].IsDir())
}

func TestDirectory_CreateFileExclusive(t *testing.T) {
	ctx := t.Context()
	root := newRoot(t).Directory()

	file, err := root.CreateFile(ctx, "trip-1.jpg", strings.NewReader("first"))
	require.NoError(t, err)
	assert.Equal(t, int64(5), file.Size())
	assert.Equal(t, data.ContentTypeImageJPEG, file.MediaType())

	_, err = root.CreateFile(ctx, "trip-1.jpg", strings.NewReader("second"))
	assert.ErrorIs(t, err, data.ErrExist)

	content, err := file.ReadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, "first", string(content))
}

func TestDirectory_CreateFileTooLarge(t *testing.T) {
	ctx := t.Context()
	root := newRoot(t).Directory()

	limit := newRoot(t).Capabilities().MaxObjectSize
	_, err := root.CreateFile(ctx, "huge.jpg", bytes.NewReader(make([]byte, limit+1)))
	assert.ErrorIs(t, err, data.ErrObjectTooLarge)

	_, err = root.File(ctx, "huge.jpg")
	assert.ErrorIs(t, err, data.ErrNotExist)
}

func TestDirectory_RemoveEntry(t *testing.T) {
	ctx := t.Context()
	root := newRoot(t).Directory()

	album, err := root.CreateDirectory(ctx, "album")
	require.NoError(t, err)
	_, err = album.CreateFile(ctx, "one.jpg", strings.NewReader("1"))
	require.NoError(t, err)

	assert.ErrorIs(t, root.RemoveEntry(ctx, "album", false), data.ErrIsDirectory)
	require.NoError(t, album.RemoveEntry(ctx, "one.jpg", false))
	assert.ErrorIs(t, album.RemoveEntry(ctx, "one.jpg", false), data.ErrNotExist)
	assert.ErrorIs(t, album.RemoveEntry(ctx, "", false), data.ErrInvalidName)
	require.NoError(t, root.RemoveEntry(ctx, "album", true))

	entries, err := root.Entries(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDirectory_Lookup(t *testing.T) {
	ctx := t.Context()
	root := newRoot(t).Directory()

	_, err := root.CreateDirectory(ctx, "album")
	require.NoError(t, err)
	_, err = root.CreateFile(ctx, "cover.png", strings.NewReader("png"))
	require.NoError(t, err)

	album, err := root.Directory(ctx, "album")
	require.NoError(t, err)
	assert.Equal(t, "album", album.Name())

	_, err = root.Directory(ctx, "cover.png")
	assert.ErrorIs(t, err, data.ErrNotDirectory)

	_, err = root.File(ctx, "album")
	assert.ErrorIs(t, err, data.ErrIsDirectory)
}

func TestRoot_Invalidate(t *testing.T) {
	ctx := t.Context()
	root := newRoot(t)
	dir := root.Directory()

	file, err := dir.CreateFile(ctx, "a.jpg", strings.NewReader("a"))
	require.NoError(t, err)

	root.Invalidate()
	assert.False(t, root.Valid())

	_, err = dir.Entries(ctx)
	assert.ErrorIs(t, err, data.ErrHandleInvalid)

	_, err = dir.CreateDirectory(ctx, "late")
	assert.ErrorIs(t, err, data.ErrHandleInvalid)

	_, err = file.Open(ctx)
	assert.ErrorIs(t, err, data.ErrHandleInvalid)
}

func TestReader_Seek(t *testing.T) {
	ctx := t.Context()
	root := newRoot(t).Directory()

	file, err := root.CreateFile(ctx, "note.txt", strings.NewReader("hello world"))
	require.NoError(t, err)

	reader, err := file.Open(ctx)
	require.NoError(t, err)

	pos, err := reader.Seek(-5, io.SeekEnd)
	require.NoError(t, err)
	assert.Equal(t, int64(6), pos)

	rest, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, "world", string(rest))

	_, err = reader.Seek(-1, io.SeekStart)
	assert.ErrorIs(t, err, data.ErrInvalid)

	require.NoError(t, reader.Close())
	assert.ErrorIs(t, reader.Close(), data.ErrClosed)

	_, err = reader.Read(make([]byte, 1))
	assert.ErrorIs(t, err, data.ErrClosed)
}
