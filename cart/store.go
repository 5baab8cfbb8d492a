package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/emberline/storefront/catalog/pkg/product"
	inErrors "github.com/emberline/storefront/internal/errors"
	"github.com/emberline/storefront/internal/log"
	"github.com/emberline/storefront/internal/otel"
	"github.com/emberline/storefront/internal/storage"
)

// Item is a product plus the quantity of it currently selected for
// purchase. Quantity is always >= 1; an item that would drop to zero is
// removed from the cart instead.
type Item struct {
	product.Product
	Quantity int `json:"quantity"`
}

type state struct {
	Items []Item `json:"items"`
}

// Store owns the authoritative cart state for one session. All mutations go
// through it; readers get copies via Snapshot or a Subscribe listener. Every
// mutation is written through to the backing storage under the store's key,
// so the cart survives restarts.
type Store struct {
	mu        sync.Mutex
	items     []Item
	storage   storage.Storage
	key       string
	listeners map[int]func([]Item)
	nextToken int
}

// New restores the snapshot stored under key, if any. An absent or
// unparseable value yields an empty cart; restore problems are logged, never
// surfaced.
func New(c context.Context, store storage.Storage, key string) *Store {
	c, span := otel.Tracer.Start(c, "cart New")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "cart New").
		Str(log.KeyStorageKey, key).
		Logger()

	s := &Store{
		storage:   store,
		key:       key,
		listeners: map[int]func([]Item){},
	}

	logger = logger.With().Str(log.KeyProcess, "restoring cart from storage").Logger()
	logger.Info().Msg("restoring cart from storage")
	value, err := store.Get(c, key)
	if err != nil {
		logger.Info().Err(err).Msg("no stored cart, starting empty")
		return s
	}

	restored := state{}
	err = json.Unmarshal(value, &restored)
	if err != nil {
		err = fmt.Errorf("failed unmarshaling stored cart with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg("discarding unparseable stored cart, starting empty")
		return s
	}
	s.items = restored.Items
	logger.Info().Msgf("restored cart with %d items", len(s.items))

	return s
}

// AddItem merges the product into the cart: an existing line item for the
// same product id gets its quantity incremented in place, anything else is
// appended. Quantity below 1 is rejected.
func (s *Store) AddItem(c context.Context, p product.Product, quantity int) error {
	c, span := otel.Tracer.Start(c, "Store AddItem")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "Store AddItem").
		Int64(log.KeyProductID, p.ID).
		Int(log.KeyQuantity, quantity).
		Logger()

	if quantity < 1 {
		err := fmt.Errorf(
			"failed adding productId=%d with error=%w",
			p.ID,
			inErrors.ErrInvalidQuantity,
		)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}

	s.mu.Lock()
	merged := false
	for i := range s.items {
		if s.items[i].ID == p.ID {
			s.items[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		s.items = append(s.items, Item{Product: p, Quantity: quantity})
	}
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	if merged {
		logger.Info().Msg("merged quantity into existing cart item")
	} else {
		logger.Info().Msg("appended new cart item")
	}

	s.persistAndNotify(c, snapshot)
	return nil
}

// RemoveItem deletes the line item with the given product id. Removing an
// absent id is a no-op, not an error.
func (s *Store) RemoveItem(c context.Context, id int64) {
	c, span := otel.Tracer.Start(c, "Store RemoveItem")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "Store RemoveItem").
		Int64(log.KeyProductID, id).
		Logger()

	s.mu.Lock()
	kept := s.items[:0]
	for _, item := range s.items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	removed := len(kept) != len(s.items)
	s.items = kept
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	if !removed {
		logger.Info().Msg("cart item not found, nothing removed")
		return
	}
	logger.Info().Msg("removed cart item")

	s.persistAndNotify(c, snapshot)
}

// UpdateQuantity replaces the line item's quantity. A quantity of zero or
// less deletes the item. Updating an absent id is a no-op.
func (s *Store) UpdateQuantity(c context.Context, id int64, quantity int) {
	c, span := otel.Tracer.Start(c, "Store UpdateQuantity")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "Store UpdateQuantity").
		Int64(log.KeyProductID, id).
		Int(log.KeyQuantity, quantity).
		Logger()

	if quantity <= 0 {
		logger.Info().Msg("non-positive quantity, removing cart item")
		s.RemoveItem(c, id)
		return
	}

	s.mu.Lock()
	updated := false
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Quantity = quantity
			updated = true
			break
		}
	}
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	if !updated {
		logger.Info().Msg("cart item not found, nothing updated")
		return
	}
	logger.Info().Msg("updated cart item quantity")

	s.persistAndNotify(c, snapshot)
}

// Clear empties the cart unconditionally.
func (s *Store) Clear(c context.Context) {
	c, span := otel.Tracer.Start(c, "Store Clear")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "Store Clear").
		Logger()

	s.mu.Lock()
	s.items = nil
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	logger.Info().Msg("cleared cart")

	s.persistAndNotify(c, snapshot)
}

// Snapshot returns a copy of the current line items in insertion order.
func (s *Store) Snapshot() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Total is the exact sum of price * quantity over all line items.
func (s *Store) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := decimal.Zero
	for _, item := range s.items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// ItemCount is the sum of quantities over all line items.
func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, item := range s.items {
		count += item.Quantity
	}
	return count
}

// Subscribe registers a listener invoked with the new snapshot after every
// mutation, synchronously in the mutating call. The returned function
// unsubscribes it.
func (s *Store) Subscribe(listener func([]Item)) func() {
	s.mu.Lock()
	token := s.nextToken
	s.nextToken++
	s.listeners[token] = listener
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, token)
		s.mu.Unlock()
	}
}

func (s *Store) snapshotLocked() []Item {
	snapshot := make([]Item, len(s.items))
	copy(snapshot, s.items)
	return snapshot
}

func (s *Store) persistAndNotify(c context.Context, snapshot []Item) {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "Store persistAndNotify").
		Str(log.KeyStorageKey, s.key).
		Logger()

	value, err := json.Marshal(state{Items: snapshot})
	if err != nil {
		err = fmt.Errorf("failed marshaling cart with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return
	}
	err = s.storage.Set(c, s.key, value)
	if err != nil {
		err = fmt.Errorf("failed persisting cart with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
	}

	s.mu.Lock()
	listeners := make([]func([]Item), 0, len(s.listeners))
	for _, listener := range s.listeners {
		listeners = append(listeners, listener)
	}
	s.mu.Unlock()
	for _, listener := range listeners {
		listener(snapshot)
	}
}
