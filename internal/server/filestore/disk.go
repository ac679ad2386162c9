package filestore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

type DiskStore struct {
	dir string
}

// NewDiskStore creates the upload folder if needed and returns a store
// writing into it.
func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskStore{dir: dir}, nil
}

func (s *DiskStore) Save(ctx context.Context, name string, data io.Reader) error {
	// name is sanitized by the caller; Base guards against traversal anyway
	path := filepath.Join(s.dir, filepath.Base(name))

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}

	if _, err := io.Copy(f, data); err != nil {
		_ = f.Close()
		return fmt.Errorf("write file: %w", err)
	}

	return f.Close()
}
