// Package storage provides object storage for uploaded media.
package storage

import "context"

// ObjectStore abstracts the blob store holding uploaded images.
type ObjectStore interface {
	// Upload stores data under key and returns a publicly reachable URL.
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
	// Exists reports whether an object is stored under key.
	Exists(ctx context.Context, key string) (bool, error)
	Delete(ctx context.Context, key string) error
}
