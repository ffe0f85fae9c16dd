package dictcache

import (
	"context"
	"sync"
)

// refresher runs refresh tasks on a fixed set of workers.
// submit never blocks: a full queue rejects the task.
type refresher struct {
	q    chan func()
	wg   sync.WaitGroup
	done chan struct{} // closed once every worker has exited

	mu     sync.RWMutex
	closed bool
}

func newRefresher(workers, qlen int) *refresher {
	r := &refresher{q: make(chan func(), qlen), done: make(chan struct{})}
	r.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer r.wg.Done()
			for f := range r.q {
				f()
			}
		}()
	}
	go func() {
		r.wg.Wait()
		close(r.done)
	}()
	return r
}

func (r *refresher) submit(f func()) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		return false
	}
	select {
	case r.q <- f:
		return true
	default:
		return false
	}
}

// close stops intake and waits for queued tasks to finish or ctx to end.
// Tasks still running when ctx ends keep going in the background.
func (r *refresher) close(ctx context.Context) error {
	r.mu.Lock()
	if !r.closed {
		r.closed = true
		close(r.q)
	}
	r.mu.Unlock()

	select {
	case <-r.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *refresher) isClosed() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.closed
}
