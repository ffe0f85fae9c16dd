package dictcache

const (
	// DefaultHashKey names the hash that holds every dictionary type.
	DefaultHashKey = "Redis:Hash"

	defaultRefreshWorkers = 1
	defaultRefreshQueue   = 64
)

// coalesce returns def when v is the zero value of T - otherwise v.
func coalesce[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}
