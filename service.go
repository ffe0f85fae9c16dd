package dictcache

import (
	"context"
	"errors"
	"fmt"

	c "github.com/unkn0wn-root/dictcache/codec"
	gen "github.com/unkn0wn-root/dictcache/genstore"
	hs "github.com/unkn0wn-root/dictcache/hashstore"
	"github.com/unkn0wn-root/dictcache/internal/util"
)

type service struct {
	key     string
	store   Store
	hash    hs.HashStore
	codec   c.Codec[[]Entry]
	log     Logger
	hooks   Hooks
	gen     gen.GenStore
	persist bool
	opts    Options

	workers *refresher
}

func newService(opts Options) (*service, error) {
	if opts.Store == nil {
		return nil, fmt.Errorf("dictcache: store is required")
	}
	if opts.HashStore == nil {
		return nil, fmt.Errorf("dictcache: hash store is required")
	}

	s := &service{
		store:   opts.Store,
		hash:    opts.HashStore,
		gen:     opts.GenStore,
		persist: opts.PersistOnAdd,
		opts:    opts,
	}

	s.key = coalesce(opts.HashKey, DefaultHashKey)
	s.codec = coalesce[c.Codec[[]Entry]](opts.Codec, c.JSON[[]Entry]{})
	s.log = coalesce[Logger](opts.Logger, NopLogger{})
	s.hooks = coalesce[Hooks](opts.Hooks, NopHooks{})

	s.workers = newRefresher(
		coalesce(opts.RefreshWorkers, defaultRefreshWorkers),
		coalesce(opts.RefreshQueue, defaultRefreshQueue),
	)
	return s, nil
}

func (s *service) AddConfig(ctx context.Context, e Entry) (string, error) {
	if s.persist {
		stored, err := s.store.Insert(ctx, e)
		if err != nil {
			return "", fmt.Errorf("dictcache: persist entry: %w", err)
		}
		e = stored
	}
	s.Refresh(e)
	return e.ID, nil
}

func (s *service) GetAllGrouped(ctx context.Context) map[string][]Entry {
	out, err := s.loadAll(ctx)
	if err != nil {
		s.log.Error("read all dictionary types from cache failed", Fields{"hashKey": s.key, "err": err})
		return map[string][]Entry{}
	}
	return out
}

func (s *service) GetByType(ctx context.Context, typ string) []Entry {
	out, err := s.loadType(ctx, typ)
	if err != nil {
		s.log.Error("read dictionary type from cache failed", Fields{"hashKey": s.key, "type": typ, "err": err})
		return []Entry{}
	}
	return out
}

func (s *service) Refresh(template Entry) {
	ok := s.workers.submit(func() {
		ctx, cancel := s.refreshContext()
		defer cancel()
		ticket, cas := s.ticket(ctx)
		if err := s.refresh(ctx, template, ticket, cas); err != nil {
			s.reportRefresh(err)
		}
	})
	if !ok {
		s.log.Warn("refresh dropped", Fields{"hashKey": s.key})
		s.hooks.RefreshDropped(s.key)
	}
}

func (s *service) RefreshNow(ctx context.Context, template Entry) error {
	if s.workers.isClosed() {
		return ErrClosed
	}
	ticket, cas := s.ticket(ctx)
	err := s.refresh(ctx, template, ticket, cas)
	if err != nil {
		s.reportRefresh(err)
	}
	return err
}

// Close stops intake and waits for queued refreshes until ctx ends. The
// backends are closed either way.
func (s *service) Close(ctx context.Context) error {
	errs := []error{s.workers.close(ctx)}
	if s.gen != nil {
		errs = append(errs, s.gen.Close(ctx))
	}
	errs = append(errs, s.hash.Close(ctx))
	return errors.Join(errs...)
}

// refresh loads the full snapshot and replaces the hash with it.
// The hash is only written when every group encoded cleanly.
func (s *service) refresh(ctx context.Context, template Entry, ticket uint64, cas bool) error {
	entries, err := s.store.GetAll(ctx, template)
	if err != nil {
		return &RefreshError{HashKey: s.key, Stage: StageLoad, Err: err}
	}
	if len(entries) == 0 {
		return ErrEmptySnapshot
	}

	groups := GroupByType(entries)
	fields := make(map[string][]byte, len(groups))
	for typ, list := range groups {
		b, err := s.codec.Encode(list)
		if err != nil {
			return &RefreshError{HashKey: s.key, Stage: StageEncode, Field: typ, Err: err}
		}
		fields[typ] = b
	}

	if cas && s.snapshotGen(ctx) != ticket {
		return ErrStaleRefresh
	}
	if err := s.hash.PutAll(ctx, s.key, fields, s.opts.TTL); err != nil {
		return &RefreshError{HashKey: s.key, Stage: StageStore, Err: err}
	}

	s.log.Debug("dictionary cache refreshed", Fields{
		"hashKey": s.key,
		"types":   len(fields),
		"entries": len(entries),
		"digest":  util.Fingerprint(fields),
	})
	s.hooks.RefreshCompleted(s.key, len(fields), len(entries))
	return nil
}

func (s *service) reportRefresh(err error) {
	var re *RefreshError
	switch {
	case errors.Is(err, ErrEmptySnapshot):
		s.log.Debug("refresh skipped (empty snapshot)", Fields{"hashKey": s.key})
		s.hooks.RefreshSkipped(s.key, "empty_snapshot")
	case errors.Is(err, ErrStaleRefresh):
		s.log.Debug("refresh skipped (gen mismatch)", Fields{"hashKey": s.key})
		s.hooks.RefreshSkipped(s.key, "gen_mismatch")
	case errors.As(err, &re):
		s.log.Error("refresh failed", Fields{"hashKey": s.key, "stage": re.Stage, "err": re.Err})
		s.hooks.RefreshFailed(s.key, re.Stage, re.Err)
	default:
		s.log.Error("refresh failed", Fields{"hashKey": s.key, "err": err})
		s.hooks.RefreshFailed(s.key, "", err)
	}
}

func (s *service) loadAll(ctx context.Context) (map[string][]Entry, error) {
	raw, err := s.hash.GetAll(ctx, s.key)
	if err != nil {
		s.hooks.ReadFailed(s.key, "get_all", err)
		return nil, err
	}
	out := make(map[string][]Entry, len(raw))
	for typ, b := range raw {
		list, err := s.codec.Decode(b)
		if err != nil {
			s.log.Warn("cached dictionary type undecodable", Fields{"hashKey": s.key, "type": typ, "err": err})
			s.hooks.DecodeFailed(s.key, typ, err)
			continue
		}
		out[typ] = list
	}
	return out, nil
}

func (s *service) loadType(ctx context.Context, typ string) ([]Entry, error) {
	b, ok, err := s.hash.Get(ctx, s.key, typ)
	if err != nil {
		s.hooks.ReadFailed(s.key, "get", err)
		return nil, err
	}
	if !ok {
		return []Entry{}, nil
	}
	list, err := s.codec.Decode(b)
	if err != nil {
		s.hooks.DecodeFailed(s.key, typ, err)
		return nil, err
	}
	if list == nil {
		list = []Entry{}
	}
	return list, nil
}

// ticket bumps the hash generation as a refresh starts, so only the latest
// started refresh may write. cas is false when no GenStore is configured or
// the bump failed.
func (s *service) ticket(ctx context.Context) (uint64, bool) {
	if s.gen == nil {
		return 0, false
	}
	g, err := s.gen.Bump(ctx, s.genKey())
	if err != nil {
		s.log.Warn("gen bump error; refresh falls back to last write wins", Fields{"hashKey": s.key, "err": err})
		return 0, false
	}
	return g, true
}

func (s *service) snapshotGen(ctx context.Context) uint64 {
	g, err := s.gen.Snapshot(ctx, s.genKey())
	if err != nil {
		// treat as 0 so the write is skipped
		s.log.Warn("gen snapshot error", Fields{"hashKey": s.key, "err": err})
		return 0
	}
	return g
}

func (s *service) genKey() string { return "hash:" + s.key }

func (s *service) refreshContext() (context.Context, context.CancelFunc) {
	if s.opts.RefreshTimeout > 0 {
		return context.WithTimeout(context.Background(), s.opts.RefreshTimeout)
	}
	return context.WithCancel(context.Background())
}
