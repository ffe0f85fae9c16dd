// Package hashstore defines the hash-container API the dictionary cache is
// written to: one named key holding field -> payload pairs.
//
// Three implementations are provided:
//   - Redis: a native Redis hash (HSET/HGETALL/HGET).
//   - Memory: an in-process map, for tests and single-node deployments.
//   - Blob: the whole hash framed as one value on any provider.Provider
//     (BigCache, Ristretto, a Redis string key).
package hashstore

import (
	"context"
	"time"
)

// HashStore must be safe for concurrent use.
type HashStore interface {
	// PutAll replaces the hash at key with fields. Fields absent from the
	// new map are removed. Readers observe the old or the new hash, never a
	// mix of both. ttl <= 0 means no expiry.
	PutAll(ctx context.Context, key string, fields map[string][]byte, ttl time.Duration) error

	// GetAll returns every field of the hash; a missing hash yields an
	// empty map and a nil error.
	GetAll(ctx context.Context, key string) (map[string][]byte, error)

	// Get returns (payload, true, nil) on hit; (nil, false, nil) when the
	// hash or the field is missing.
	Get(ctx context.Context, key, field string) ([]byte, bool, error)

	// Close releases resources.
	Close(ctx context.Context) error
}
