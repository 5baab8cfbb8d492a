package storage

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/emberline/storefront/internal/log"
	"github.com/emberline/storefront/internal/otel"
)

// FileStorage keeps one file per key under a single directory. It is the
// on-device storage driver: local to the machine, surviving restarts,
// last write wins.
type FileStorage struct {
	dir string
}

func NewFileStorage(c context.Context, dir string) (*FileStorage, error) {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "NewFileStorage").
		Str("dir", dir).
		Logger()

	logger.Info().Msg("creating storage directory")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		err = fmt.Errorf("failed creating storage directory=%s with error=%w", dir, err)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Msg("created storage directory")

	return &FileStorage{dir: dir}, nil
}

func (s *FileStorage) path(key string) string {
	return filepath.Join(s.dir, url.PathEscape(key))
}

func (s *FileStorage) Get(c context.Context, key string) ([]byte, error) {
	_, span := otel.Tracer.Start(c, "FileStorage Get")
	defer span.End()

	value, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed reading key=%s with error=%w", key, err)
	}
	return value, nil
}

func (s *FileStorage) Set(c context.Context, key string, value []byte) error {
	_, span := otel.Tracer.Start(c, "FileStorage Set")
	defer span.End()

	err := os.WriteFile(s.path(key), value, 0o644)
	if err != nil {
		return fmt.Errorf("failed writing key=%s with error=%w", key, err)
	}
	return nil
}

func (s *FileStorage) Delete(c context.Context, key string) error {
	_, span := otel.Tracer.Start(c, "FileStorage Delete")
	defer span.End()

	err := os.Remove(s.path(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed deleting key=%s with error=%w", key, err)
	}
	return nil
}
