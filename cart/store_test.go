package cart

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emberline/storefront/catalog/pkg/product"
	inErrors "github.com/emberline/storefront/internal/errors"
	"github.com/emberline/storefront/internal/storage"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	c := context.Background()
	fileStorage, err := storage.NewFileStorage(c, t.TempDir())
	require.NoError(t, err)
	return New(c, fileStorage, "cart:test")
}

func testProduct(id int64, price string) product.Product {
	return product.Product{
		ID:       id,
		Name:     "product",
		Price:    decimal.RequireFromString(price),
		Category: "Decor",
	}
}

func TestAddItemMergesByProductId(t *testing.T) {
	c := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.AddItem(c, testProduct(1, "10"), 2))
	require.NoError(t, store.AddItem(c, testProduct(1, "10"), 3))

	items := store.Snapshot()
	require.Len(t, items, 1, "second add must not create a second line item")
	assert.Equal(t, int64(1), items[0].ID)
	assert.Equal(t, 5, items[0].Quantity)
}

func TestAddItemPreservesInsertionOrder(t *testing.T) {
	c := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.AddItem(c, testProduct(1, "10"), 1))
	require.NoError(t, store.AddItem(c, testProduct(2, "5"), 1))
	require.NoError(t, store.AddItem(c, testProduct(1, "10"), 1))

	items := store.Snapshot()
	require.Len(t, items, 2)
	assert.Equal(t, int64(1), items[0].ID, "merged item keeps its position")
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, int64(2), items[1].ID)
}

func TestAddItemRejectsNonPositiveQuantity(t *testing.T) {
	c := context.Background()
	store := newTestStore(t)

	assert.ErrorIs(t, store.AddItem(c, testProduct(1, "10"), 0), inErrors.ErrInvalidQuantity)
	assert.ErrorIs(t, store.AddItem(c, testProduct(1, "10"), -3), inErrors.ErrInvalidQuantity)
	assert.Empty(t, store.Snapshot())
}

func TestRemoveItem(t *testing.T) {
	c := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.AddItem(c, testProduct(1, "10"), 2))
	assert.Equal(t, "20", store.Total().String())
	assert.Equal(t, 2, store.ItemCount())

	store.RemoveItem(c, 1)
	assert.Empty(t, store.Snapshot())
	assert.Equal(t, "0", store.Total().String())
	assert.Equal(t, 0, store.ItemCount())

	store.RemoveItem(c, 42)
	assert.Empty(t, store.Snapshot(), "removing unknown id is a no-op")
}

func TestUpdateQuantity(t *testing.T) {
	tests := []struct {
		name             string
		quantity         int
		expectedPresent  bool
		expectedQuantity int
	}{
		{name: "positive quantity replaces", quantity: 7, expectedPresent: true, expectedQuantity: 7},
		{name: "quantity one is kept", quantity: 1, expectedPresent: true, expectedQuantity: 1},
		{name: "zero quantity deletes", quantity: 0, expectedPresent: false},
		{name: "negative quantity deletes", quantity: -2, expectedPresent: false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			c := context.Background()
			store := newTestStore(t)
			require.NoError(t, store.AddItem(c, testProduct(2, "5"), 3))

			store.UpdateQuantity(c, 2, test.quantity)

			items := store.Snapshot()
			if !test.expectedPresent {
				assert.Empty(t, items)
				return
			}
			require.Len(t, items, 1)
			assert.Equal(t, test.expectedQuantity, items[0].Quantity)
			assert.GreaterOrEqual(t, items[0].Quantity, 1)
		})
	}
}

func TestUpdateQuantityUnknownIdIsNoop(t *testing.T) {
	c := context.Background()
	store := newTestStore(t)
	require.NoError(t, store.AddItem(c, testProduct(1, "10"), 1))

	store.UpdateQuantity(c, 99, 5)

	items := store.Snapshot()
	require.Len(t, items, 1)
	assert.Equal(t, int64(1), items[0].ID)
	assert.Equal(t, 1, items[0].Quantity)
}

func TestClearIsIdempotent(t *testing.T) {
	c := context.Background()
	store := newTestStore(t)
	require.NoError(t, store.AddItem(c, testProduct(1, "10"), 2))
	require.NoError(t, store.AddItem(c, testProduct(2, "5"), 1))

	store.Clear(c)
	assert.Empty(t, store.Snapshot())
	assert.Equal(t, "0", store.Total().String())
	assert.Equal(t, 0, store.ItemCount())

	store.Clear(c)
	assert.Empty(t, store.Snapshot())
	assert.Equal(t, "0", store.Total().String())
	assert.Equal(t, 0, store.ItemCount())
}

func TestTotalIsExact(t *testing.T) {
	c := context.Background()
	store := newTestStore(t)

	// 0.1 * 3 drifts under binary floats; decimals must not.
	require.NoError(t, store.AddItem(c, testProduct(1, "0.1"), 3))
	require.NoError(t, store.AddItem(c, testProduct(2, "19.99"), 2))

	assert.Equal(t, "40.28", store.Total().String())
	assert.Equal(t, 5, store.ItemCount())

	store.UpdateQuantity(c, 2, 1)
	assert.Equal(t, "20.29", store.Total().String())
	assert.Equal(t, 4, store.ItemCount())
}

func TestPersistenceRoundTrip(t *testing.T) {
	c := context.Background()
	fileStorage, err := storage.NewFileStorage(c, t.TempDir())
	require.NoError(t, err)

	store := New(c, fileStorage, "cart:roundtrip")
	require.NoError(t, store.AddItem(c, testProduct(1, "10.50"), 2))
	require.NoError(t, store.AddItem(c, testProduct(2, "3.25"), 1))

	restored := New(c, fileStorage, "cart:roundtrip")
	items := restored.Snapshot()
	require.Len(t, items, 2)
	assert.Equal(t, int64(1), items[0].ID)
	assert.Equal(t, 2, items[0].Quantity)
	assert.True(t, items[0].Price.Equal(decimal.RequireFromString("10.50")))
	assert.Equal(t, int64(2), items[1].ID)
	assert.Equal(t, 1, items[1].Quantity)
	assert.Equal(t, store.Total().String(), restored.Total().String())
}

func TestRestoreFromUnparseableStateStartsEmpty(t *testing.T) {
	c := context.Background()
	fileStorage, err := storage.NewFileStorage(c, t.TempDir())
	require.NoError(t, err)
	require.NoError(t, fileStorage.Set(c, "cart:corrupt", []byte("not json at all")))

	store := New(c, fileStorage, "cart:corrupt")
	assert.Empty(t, store.Snapshot())
	assert.Equal(t, 0, store.ItemCount())

	require.NoError(t, store.AddItem(c, testProduct(1, "10"), 1))
	restored := New(c, fileStorage, "cart:corrupt")
	assert.Len(t, restored.Snapshot(), 1, "store recovers by overwriting the bad value")
}

func TestSubscribe(t *testing.T) {
	c := context.Background()
	store := newTestStore(t)

	notified := [][]Item{}
	unsubscribe := store.Subscribe(func(items []Item) {
		notified = append(notified, items)
	})

	require.NoError(t, store.AddItem(c, testProduct(1, "10"), 1))
	require.Len(t, notified, 1)
	assert.Len(t, notified[0], 1)

	store.UpdateQuantity(c, 1, 4)
	require.Len(t, notified, 2)
	assert.Equal(t, 4, notified[1][0].Quantity)

	unsubscribe()
	store.Clear(c)
	assert.Len(t, notified, 2, "unsubscribed listener is not called")
}

func TestSnapshotIsACopy(t *testing.T) {
	c := context.Background()
	store := newTestStore(t)
	require.NoError(t, store.AddItem(c, testProduct(1, "10"), 1))

	snapshot := store.Snapshot()
	snapshot[0].Quantity = 99

	assert.Equal(t, 1, store.Snapshot()[0].Quantity)
}
