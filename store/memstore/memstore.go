// Package memstore is an in-process dictcache.Store, for tests and demos.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/unkn0wn-root/dictcache"
)

// Store keeps entries in insertion order. GetAll returns them sorted by
// SortOrder, ties broken by insertion order, matching the Postgres store.
type Store struct {
	mu      sync.RWMutex
	entries []dictcache.Entry
	now     func() time.Time
}

var _ dictcache.Store = (*Store)(nil)

func New(seed ...dictcache.Entry) *Store {
	s := &Store{now: time.Now}
	for _, e := range seed {
		_, _ = s.Insert(context.Background(), e)
	}
	return s
}

func (s *Store) GetAll(ctx context.Context, template dictcache.Entry) ([]dictcache.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	status := dictcache.StatusFilter(template)

	s.mu.RLock()
	out := make([]dictcache.Entry, 0, len(s.entries))
	for _, e := range s.entries {
		if e.Status == status {
			out = append(out, e)
		}
	}
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out, nil
}

func (s *Store) Insert(ctx context.Context, e dictcache.Entry) (dictcache.Entry, error) {
	if err := ctx.Err(); err != nil {
		return dictcache.Entry{}, err
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Status == 0 {
		e.Status = dictcache.StatusValid
	}
	now := s.now().UTC()
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
	e.UpdatedAt = now

	s.mu.Lock()
	s.entries = append(s.entries, e)
	s.mu.Unlock()
	return e, nil
}
