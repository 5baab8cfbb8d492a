package cart

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emberline/storefront/internal/storage"
)

func TestManagerReusesStorePerSession(t *testing.T) {
	c := context.Background()
	fileStorage, err := storage.NewFileStorage(c, t.TempDir())
	require.NoError(t, err)
	manager := NewManager(fileStorage)

	sessionID := uuid.New()
	first := manager.Store(c, sessionID)
	second := manager.Store(c, sessionID)
	assert.Same(t, first, second)
}

func TestManagerIsolatesSessions(t *testing.T) {
	c := context.Background()
	fileStorage, err := storage.NewFileStorage(c, t.TempDir())
	require.NoError(t, err)
	manager := NewManager(fileStorage)

	alpha := manager.Store(c, uuid.New())
	beta := manager.Store(c, uuid.New())
	require.NotSame(t, alpha, beta)

	require.NoError(t, alpha.AddItem(c, testProduct(1, "10"), 2))
	assert.Equal(t, 2, alpha.ItemCount())
	assert.Equal(t, 0, beta.ItemCount())
}

func TestManagerRestoresAcrossProcesses(t *testing.T) {
	c := context.Background()
	dir := t.TempDir()
	fileStorage, err := storage.NewFileStorage(c, dir)
	require.NoError(t, err)
	sessionID := uuid.New()

	manager := NewManager(fileStorage)
	store := manager.Store(c, sessionID)
	require.NoError(t, store.AddItem(c, testProduct(7, "12.34"), 3))

	// A fresh manager over the same storage stands in for a restart.
	reopened, err := storage.NewFileStorage(c, dir)
	require.NoError(t, err)
	restored := NewManager(reopened).Store(c, sessionID)
	items := restored.Snapshot()
	require.Len(t, items, 1)
	assert.Equal(t, int64(7), items[0].ID)
	assert.Equal(t, 3, items[0].Quantity)
	assert.Equal(t, "37.02", restored.Total().String())
}
