// Package storage persists finished marketing images and hands back the URL
// that is returned to the caller.
package storage

import "context"

// Store is the contract implemented by all storage backends.
type Store interface {
	// Save writes data under key with the given content type and returns the
	// publicly reachable URL of the stored object.
	Save(ctx context.Context, key string, data []byte, contentType string) (string, error)
}
