package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStorageRoundTrip(t *testing.T) {
	c := context.Background()
	store, err := NewFileStorage(c, t.TempDir())
	require.NoError(t, err)

	_, err = store.Get(c, "cart:missing")
	assert.ErrorIs(t, err, ErrNotFound)

	err = store.Set(c, "cart:abc", []byte(`{"items":[]}`))
	require.NoError(t, err)

	value, err := store.Get(c, "cart:abc")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"items":[]}`), value)

	err = store.Set(c, "cart:abc", []byte(`{"items":[{"id":1}]}`))
	require.NoError(t, err)
	value, err = store.Get(c, "cart:abc")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"items":[{"id":1}]}`), value)

	err = store.Delete(c, "cart:abc")
	require.NoError(t, err)
	_, err = store.Get(c, "cart:abc")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.NoError(t, store.Delete(c, "cart:abc"), "deleting absent key is a no-op")
}
