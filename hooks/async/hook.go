// Package asynchook moves dictcache hook calls off refresh workers and
// read paths onto a small queue.
//
//	raw := sloghooks.New(slog.Default(), sloghooks.Options{DecodeFailEvery: 10})
//	hooks := asynchook.New(raw, 1, 1000) // 1 worker; queue 1000 events
//	defer hooks.Close()
//
//	svc, _ := dictcache.New(dictcache.Options{
//	    Store:     store,
//	    HashStore: hashstore.NewMemory(),
//	    Hooks:     hooks,
//	})
//
// Events are dropped when the queue is full.
package asynchook

import (
	"sync"

	"github.com/unkn0wn-root/dictcache"
)

type Hooks struct {
	inner dictcache.Hooks
	q     chan func()
	wg    sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

var _ dictcache.Hooks = (*Hooks)(nil)

func New(inner dictcache.Hooks, workers, qlen int) *Hooks {
	if workers <= 0 {
		workers = 1
	}
	if qlen <= 0 {
		qlen = 1024
	}

	h := &Hooks{inner: inner, q: make(chan func(), qlen)}
	h.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer h.wg.Done()
			for f := range h.q {
				f()
			}
		}()
	}
	return h
}

// Close delivers queued events and stops the workers. Later events are dropped.
func (h *Hooks) Close() {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	h.closed = true
	close(h.q)
	h.mu.Unlock()
	h.wg.Wait()
}

func (h *Hooks) try(f func()) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.closed {
		return
	}
	select {
	case h.q <- f:
	default: // drop
	}
}

func (h *Hooks) RefreshCompleted(k string, types, entries int) {
	h.try(func() { h.inner.RefreshCompleted(k, types, entries) })
}
func (h *Hooks) RefreshSkipped(k, reason string) {
	h.try(func() { h.inner.RefreshSkipped(k, reason) })
}
func (h *Hooks) RefreshFailed(k, stage string, err error) {
	h.try(func() { h.inner.RefreshFailed(k, stage, err) })
}
func (h *Hooks) RefreshDropped(k string) { h.try(func() { h.inner.RefreshDropped(k) }) }
func (h *Hooks) ReadFailed(k, op string, err error) {
	h.try(func() { h.inner.ReadFailed(k, op, err) })
}
func (h *Hooks) DecodeFailed(k, field string, err error) {
	h.try(func() { h.inner.DecodeFailed(k, field, err) })
}
