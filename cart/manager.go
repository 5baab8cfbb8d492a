package cart

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/emberline/storefront/internal/log"
	"github.com/emberline/storefront/internal/otel"
	"github.com/emberline/storefront/internal/storage"
)

const storageKeyFormat = "cart:%s"

// Manager hands out one Store per session. A session's store is created on
// first use, restoring whatever the storage holds under its key, and reused
// for the rest of the process lifetime.
type Manager struct {
	mu      sync.Mutex
	stores  map[uuid.UUID]*Store
	storage storage.Storage
}

func NewManager(store storage.Storage) *Manager {
	return &Manager{
		stores:  map[uuid.UUID]*Store{},
		storage: store,
	}
}

func (m *Manager) Store(c context.Context, sessionID uuid.UUID) *Store {
	c, span := otel.Tracer.Start(c, "Manager Store")
	defer span.End()

	m.mu.Lock()
	defer m.mu.Unlock()

	if store, ok := m.stores[sessionID]; ok {
		return store
	}

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "Manager Store").
		Str(log.KeySessionID, sessionID.String()).
		Logger()
	logger.Info().Msg("creating cart store for session")
	c = logger.WithContext(c)

	store := New(c, m.storage, fmt.Sprintf(storageKeyFormat, sessionID.String()))
	m.stores[sessionID] = store
	return store
}
