// internal/domain/cart/store.go
package cart

import "context"

// BlobStore is the keyed persistence facility carts are saved to. The Redis
// implementation lives in internal/infrastructure/storage; tests use an
// in-memory fake.
type BlobStore interface {
	// Get returns the blob stored under key, with found=false when the key
	// does not exist.
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
}
