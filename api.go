package dictcache

import (
	"context"
	"time"

	c "github.com/unkn0wn-root/dictcache/codec"
	gen "github.com/unkn0wn-root/dictcache/genstore"
	hs "github.com/unkn0wn-root/dictcache/hashstore"
)

// Service keeps a cache-resident copy of all dictionary entries grouped by type.
// Writes schedule an out-of-band full reload; reads never fail.
type Service interface {
	// AddConfig optionally persists e, schedules a refresh and returns e's ID
	// without waiting for it. The cache may still be stale when it returns.
	AddConfig(ctx context.Context, e Entry) (string, error)

	// GetAllGrouped returns every cached type. Empty (never nil) on miss or error.
	GetAllGrouped(ctx context.Context) map[string][]Entry
	// GetByType returns the cached entries of one type. Empty (never nil) on miss or error.
	GetByType(ctx context.Context, typ string) []Entry

	// Refresh schedules a reload of the hash from the store. Fire-and-forget.
	Refresh(template Entry)
	// RefreshNow reloads the hash synchronously and reports why it did not write.
	RefreshNow(ctx context.Context, template Entry) error

	// Close stops accepting refreshes, waits for queued ones until ctx ends and
	// closes the backends. Errors from each step are joined.
	Close(ctx context.Context) error
}

// Options configure a Service.
// Only Store and HashStore are required; others have sensible defaults.
type Options struct {
	// Required
	Store     Store
	HashStore hs.HashStore

	HashKey        string           // "" => DefaultHashKey
	Codec          c.Codec[[]Entry] // nil => JSON
	Logger         Logger           // nil => NopLogger
	Hooks          Hooks            // nil => NopHooks
	GenStore       gen.GenStore     // nil => last write wins
	PersistOnAdd   bool             // default false: AddConfig only refreshes
	RefreshWorkers int              // 0 => 1
	RefreshQueue   int              // 0 => 64
	RefreshTimeout time.Duration    // 0 => no timeout
	TTL            time.Duration    // expiry of the hash key; 0 => none
}

func New(opts Options) (Service, error) {
	return newService(opts)
}
