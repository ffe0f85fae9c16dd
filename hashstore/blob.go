package hashstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/unkn0wn-root/dictcache/internal/wire"
	pr "github.com/unkn0wn-root/dictcache/provider"
)

// ErrRejected is returned by Blob.PutAll when the provider refused the write.
var ErrRejected = errors.New("hashstore: provider rejected write")

// Blob stores each hash as a single framed value on a byte Provider.
// Replacing the value is one Set, which gives the all-or-nothing PutAll
// a HashStore needs. A corrupt blob is left in place and reported as an
// error; the next PutAll overwrites it.
type Blob struct {
	p pr.Provider
}

var _ HashStore = (*Blob)(nil)

func NewBlob(p pr.Provider) *Blob { return &Blob{p: p} }

func (b *Blob) PutAll(ctx context.Context, key string, fields map[string][]byte, ttl time.Duration) error {
	raw, err := wire.EncodeHash(fields)
	if err != nil {
		return fmt.Errorf("hashstore: encode %q: %w", key, err)
	}
	ok, err := b.p.Set(ctx, key, raw, int64(len(raw)), ttl)
	if err != nil {
		return err
	}
	if !ok {
		return ErrRejected
	}
	return nil
}

func (b *Blob) GetAll(ctx context.Context, key string) (map[string][]byte, error) {
	m, ok, err := b.load(ctx, key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return map[string][]byte{}, nil
	}
	return m, nil
}

func (b *Blob) Get(ctx context.Context, key, field string) ([]byte, bool, error) {
	m, ok, err := b.load(ctx, key)
	if err != nil || !ok {
		return nil, false, err
	}
	p, ok := m[field]
	return p, ok, nil
}

func (b *Blob) Close(ctx context.Context) error { return b.p.Close(ctx) }

func (b *Blob) load(ctx context.Context, key string) (map[string][]byte, bool, error) {
	raw, ok, err := b.p.Get(ctx, key)
	if err != nil || !ok {
		return nil, false, err
	}
	m, err := wire.DecodeHash(raw)
	if err != nil {
		return nil, false, fmt.Errorf("hashstore: decode %q: %w", key, err)
	}
	return m, true, nil
}
