package storage

import (
	"context"
	"errors"
)

// ErrObjectNotFound is returned when the requested object does not exist
// or cannot be read from the backing store.
var ErrObjectNotFound = errors.New("storage object not found")

// Storage stores and retrieves raw document bytes by path.
type Storage interface {
	Download(ctx context.Context, path string) ([]byte, error)
	Upload(ctx context.Context, path string, data []byte) (string, error)
	Remove(ctx context.Context, paths []string) error
}
