// internal/infrastructure/storage/redis_store.go
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultCartTTL keeps idle carts around for a month before Redis reclaims
// them.
const DefaultCartTTL = 30 * 24 * time.Hour

// RedisBlobStore is the keyed blob store backed by Redis. It satisfies
// cart.BlobStore.
type RedisBlobStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisBlobStore creates a blob store on top of an existing Redis client.
// A ttl of 0 falls back to DefaultCartTTL.
func NewRedisBlobStore(client *redis.Client, ttl time.Duration) *RedisBlobStore {
	if ttl <= 0 {
		ttl = DefaultCartTTL
	}
	return &RedisBlobStore{
		client: client,
		ttl:    ttl,
	}
}

// Get retrieves the blob stored under key.
func (s *RedisBlobStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

// Set overwrites the blob stored under key and refreshes its expiry.
func (s *RedisBlobStore) Set(ctx context.Context, key string, value []byte) error {
	return s.client.Set(ctx, key, value, s.ttl).Err()
}

// Remove deletes the blob stored under key.
func (s *RedisBlobStore) Remove(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}
