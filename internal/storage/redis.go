package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/emberline/storefront/internal/otel"
)

// RedisStorage stores values as plain redis strings. Used when carts should
// be shared across storefront processes; concurrent writers are not
// reconciled, the last write wins.
type RedisStorage struct {
	client *redis.Client
}

func NewRedisStorage(client *redis.Client) *RedisStorage {
	return &RedisStorage{client: client}
}

func (s *RedisStorage) Get(c context.Context, key string) ([]byte, error) {
	c, span := otel.Tracer.Start(c, "RedisStorage Get")
	defer span.End()

	value, err := s.client.Get(c, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed reading key=%s with error=%w", key, err)
	}
	return value, nil
}

func (s *RedisStorage) Set(c context.Context, key string, value []byte) error {
	c, span := otel.Tracer.Start(c, "RedisStorage Set")
	defer span.End()

	err := s.client.Set(c, key, value, 0).Err()
	if err != nil {
		return fmt.Errorf("failed writing key=%s with error=%w", key, err)
	}
	return nil
}

func (s *RedisStorage) Delete(c context.Context, key string) error {
	c, span := otel.Tracer.Start(c, "RedisStorage Delete")
	defer span.End()

	err := s.client.Del(c, key).Err()
	if err != nil {
		return fmt.Errorf("failed deleting key=%s with error=%w", key, err)
	}
	return nil
}
