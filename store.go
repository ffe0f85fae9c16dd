package dictcache

import "context"

// Store is the source of truth for dictionary entries.
// Implementations must be safe for concurrent use.
type Store interface {
	// GetAll returns every entry selected by the template, in a stable order.
	// A template with Status != 0 selects that status; otherwise only
	// entries with StatusValid are returned. Other template fields are ignored.
	GetAll(ctx context.Context, template Entry) ([]Entry, error)

	// Insert persists e and returns it as stored (ID and timestamps filled in).
	Insert(ctx context.Context, e Entry) (Entry, error)
}

// StatusFilter resolves the status a template selects.
func StatusFilter(template Entry) int {
	return coalesce(template.Status, StatusValid)
}
