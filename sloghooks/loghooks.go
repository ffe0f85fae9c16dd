// Package sloghooks logs dictcache hook events through log/slog.
package sloghooks

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/unkn0wn-root/dictcache"
)

type Options struct {
	// Sampling to avoid floods; 0/1 = log all.
	ReadFailEvery   uint64
	DecodeFailEvery uint64
	// Log completed refreshes at Info instead of Debug.
	VerboseRefresh bool
}

type Hooks struct {
	l    *slog.Logger
	opts Options

	readFailCtr   atomic.Uint64
	decodeFailCtr atomic.Uint64
}

var _ dictcache.Hooks = (*Hooks)(nil)

func New(l *slog.Logger, opts Options) *Hooks {
	return &Hooks{l: l, opts: opts}
}

func sample(n uint64, ctr *atomic.Uint64) bool {
	if n == 0 || n == 1 {
		return true
	}
	return ctr.Add(1)%n == 0
}

func (h *Hooks) RefreshCompleted(hashKey string, types, entries int) {
	if h.l == nil {
		return
	}
	lvl := slog.LevelDebug
	if h.opts.VerboseRefresh {
		lvl = slog.LevelInfo
	}
	h.l.Log(context.Background(), lvl, "dictcache.refresh_completed",
		"hash", hashKey,
		"types", types,
		"entries", entries)
}

func (h *Hooks) RefreshSkipped(hashKey, reason string) {
	if h.l == nil {
		return
	}
	h.l.Debug("dictcache.refresh_skipped",
		"hash", hashKey,
		"reason", reason)
}

func (h *Hooks) RefreshFailed(hashKey, stage string, err error) {
	if h.l == nil {
		return
	}
	h.l.Error("dictcache.refresh_failed",
		"hash", hashKey,
		"stage", stage,
		"err", err)
}

func (h *Hooks) RefreshDropped(hashKey string) {
	if h.l == nil {
		return
	}
	h.l.Warn("dictcache.refresh_dropped", "hash", hashKey)
}

func (h *Hooks) ReadFailed(hashKey, op string, err error) {
	if h.l == nil || !sample(h.opts.ReadFailEvery, &h.readFailCtr) {
		return
	}
	h.l.Warn("dictcache.read_failed",
		"hash", hashKey,
		"op", op,
		"err", err)
}

func (h *Hooks) DecodeFailed(hashKey, field string, err error) {
	if h.l == nil || !sample(h.opts.DecodeFailEvery, &h.decodeFailCtr) {
		return
	}
	h.l.Warn("dictcache.decode_failed",
		"hash", hashKey,
		"field", field,
		"err", err)
}
