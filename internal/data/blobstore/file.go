package blobstore

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Store is opaque durable byte storage. Callers own their own serialization.
type Store interface {
	Read(key string) ([]byte, bool, error)
	Write(key string, data []byte) error
}

// FileStore keeps one file per key under dir.
type FileStore struct {
	dir string
	log *zap.Logger
}

func NewFileStore(dir string, log *zap.Logger) *FileStore {
	return &FileStore{
		dir: dir,
		log: log.With(zap.String("store", "blob")),
	}
}

func (s *FileStore) Read(key string) ([]byte, bool, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read blob %s: %w", key, err)
	}
	return data, true, nil
}

func (s *FileStore) Write(key string, data []byte) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create blob dir: %w", err)
	}

	if err := os.WriteFile(filepath.Join(s.dir, key), data, 0o644); err != nil {
		return fmt.Errorf("write blob %s: %w", key, err)
	}

	s.log.Debug("Blob written", zap.String("key", key), zap.Int("bytes", len(data)))
	return nil
}
