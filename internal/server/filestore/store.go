// Package filestore persists uploaded paper files. Two backends exist: the
// local disk (default) and an S3-compatible object store.
package filestore

import (
	"context"
	"io"
)

// Store writes an uploaded file under its storage name.
type Store interface {
	Save(ctx context.Context, name string, data io.Reader) error
}
