package dictcache

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptySnapshot is returned by RefreshNow when the store had nothing to
	// cache. The hash is left as it was.
	ErrEmptySnapshot = errors.New("dictcache: store returned no entries")
	// ErrStaleRefresh is returned by RefreshNow when a newer refresh was
	// scheduled while this one was loading.
	ErrStaleRefresh = errors.New("dictcache: refresh superseded")
	// ErrClosed is returned by RefreshNow after Close.
	ErrClosed = errors.New("dictcache: service closed")
)

const (
	StageLoad   = "load"
	StageEncode = "encode"
	StageStore  = "store"
)

// RefreshError reports which step of a refresh failed.
type RefreshError struct {
	HashKey string
	Stage   string
	Field   string // set for encode failures
	Err     error
}

func (e *RefreshError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("refresh %q: %s %q: %v", e.HashKey, e.Stage, e.Field, e.Err)
	}
	return fmt.Sprintf("refresh %q: %s: %v", e.HashKey, e.Stage, e.Err)
}

func (e *RefreshError) Unwrap() error { return e.Err }
