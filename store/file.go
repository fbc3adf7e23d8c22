package store

import (
	"context"
	"fmt"
	"os"
	"path"
)

// FileStore writes artifacts as files in a directory, created on first
// use.
type FileStore struct {
	dir string
}

var _ Store = &FileStore{}

func NewFileStore(dir string) (*FileStore, error) {
	if _, err := os.Stat(dir); err != nil {
		if err := os.MkdirAll(dir, 0777); err != nil {
			return nil, fmt.Errorf("error creating store directory: %s", err)
		}
	}
	return &FileStore{dir: dir}, nil
}

func (f *FileStore) Save(_ context.Context, name string, data []byte) error {
	return os.WriteFile(path.Join(f.dir, name), data, 0644)
}

func (f *FileStore) Load(_ context.Context, name string) ([]byte, error) {
	return os.ReadFile(path.Join(f.dir, name))
}
