package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when no value exists under the key.
var ErrNotFound = errors.New("key not found")

// Storage is a string-keyed durable key-value area. Writes are synchronous:
// when Set returns, the value survives a process restart (for the drivers
// that promise durability at all — redis delegates that to its own config).
type Storage interface {
	Get(c context.Context, key string) ([]byte, error)
	Set(c context.Context, key string, value []byte) error
	Delete(c context.Context, key string) error
}
