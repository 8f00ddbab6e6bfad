package storage

import (
	"context"
	"time"
)

// ObjectInfo describes a stored object, enough for the orphan sweep to
// decide whether it is stale.
type ObjectInfo struct {
	Key          string
	LastModified time.Time
}

// ObjectStorage is the blob-store contract the domain services depend
// on. Injected so tests can substitute a fake; there is no package
// level client.
type ObjectStorage interface {
	// Upload stores data under key and returns the public URL.
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)

	// Delete removes the object stored under key.
	Delete(ctx context.Context, key string) error

	// List returns every object whose key starts with prefix.
	List(ctx context.Context, prefix string) ([]ObjectInfo, error)
}
