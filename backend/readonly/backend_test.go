package readonly

import (
	"testing"

	"github.com/mwantia/photofs/backend"
	"github.com/mwantia/photofs/backend/ephemeral"
	"github.com/mwantia/photofs/data"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadOnlyBackend(t *testing.T) {
	ctx := t.Context()

	inner := ephemeral.NewEphemeralBackend()
	require.NoError(t, inner.Open(ctx))
	_, err := inner.CreateObject(ctx, "album", data.ModeDir|0o755)
	require.NoError(t, err)

	storage := NewReadOnlyBackend(inner)
	assert.Equal(t, inner.Name(), storage.Name())
	assert.False(t, storage.GetCapabilities().Contains(backend.CapabilityExclusiveCreate))
	assert.True(t, storage.GetCapabilities().Contains(backend.CapabilityObjectStorage))

	stats, err := storage.ListObjects(ctx, "")
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, "album", stats[0].Name())

	_, err = storage.CreateObject(ctx, "album/a.png", 0o644)
	assert.ErrorIs(t, err, data.ErrPermission)

	_, err = storage.WriteObject(ctx, "album", 0, []byte("x"))
	assert.ErrorIs(t, err, data.ErrPermission)

	assert.ErrorIs(t, storage.DeleteObject(ctx, "album", true), data.ErrPermission)

	_, err = inner.HeadObject(ctx, "album")
	assert.NoError(t, err)
}
