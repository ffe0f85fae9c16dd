// Package genstore hands out per-key generation numbers. The dictionary
// service bumps the generation of its hash whenever it schedules a refresh
// and only lets a refresh write while its generation is still current.
package genstore

import "context"

// GenStore abstracts where generations live.
// Use LocalGenStore for a single process, RedisGenStore when several
// replicas refresh the same hash.
type GenStore interface {
	// Snapshot returns the current generation; missing => 0.
	Snapshot(ctx context.Context, key string) (uint64, error)
	// Bump atomically increments and returns the new generation.
	Bump(ctx context.Context, key string) (uint64, error)
	// Close releases resources (no-op ok).
	Close(context.Context) error
}
