package cache

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileStore keeps one file per key at {dir}/{key}{ext}.
type FileStore struct {
	dir string
	ext string
}

// NewFileStore creates a store rooted at dir. ext includes the dot.
func NewFileStore(dir, ext string) *FileStore {
	return &FileStore{dir: dir, ext: ext}
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key+s.ext)
}

func (s *FileStore) Location(key string) string {
	return s.path(key)
}

func (s *FileStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(s.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Put writes through a temp file and renames it into place; a reader never
// sees a partial value.
func (s *FileStore) Put(ctx context.Context, key string, data []byte) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("create dir %s: %w", s.dir, err)
	}

	tmp, err := os.CreateTemp(s.dir, "."+key+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path(key)); err != nil {
		return fmt.Errorf("rename into place: %w", err)
	}
	return nil
}
