package hashstore

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrNilClient = errors.New("hashstore: nil redis client")

// Redis keeps the dictionary in a native Redis hash.
// PutAll runs DEL + HSET (+ EXPIRE) inside MULTI/EXEC, so other clients see
// either the previous hash or the complete new one.
type Redis struct {
	rdb         redis.UniversalClient
	closeClient bool
}

var _ HashStore = (*Redis)(nil)

type RedisConfig struct {
	Client      redis.UniversalClient
	CloseClient bool // set true only if this store exclusively owns the client
}

func NewRedis(cfg RedisConfig) (*Redis, error) {
	if cfg.Client == nil {
		return nil, ErrNilClient
	}
	return &Redis{rdb: cfg.Client, closeClient: cfg.CloseClient}, nil
}

func (r *Redis) PutAll(ctx context.Context, key string, fields map[string][]byte, ttl time.Duration) error {
	args := make([]any, 0, 2*len(fields))
	for f, p := range fields {
		args = append(args, f, p)
	}
	_, err := r.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Del(ctx, key)
		if len(args) > 0 {
			p.HSet(ctx, key, args...)
		}
		if ttl > 0 {
			p.Expire(ctx, key, ttl)
		}
		return nil
	})
	return err
}

func (r *Redis) GetAll(ctx context.Context, key string) (map[string][]byte, error) {
	m, err := r.rdb.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, err
	}
	out := make(map[string][]byte, len(m))
	for f, v := range m {
		out[f] = []byte(v)
	}
	return out, nil
}

func (r *Redis) Get(ctx context.Context, key, field string) ([]byte, bool, error) {
	b, err := r.rdb.HGet(ctx, key, field).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

// Close releases the underlying client only when this store owns it.
func (r *Redis) Close(context.Context) error {
	if r.closeClient {
		if err := r.rdb.Close(); err != nil && !errors.Is(err, redis.ErrClosed) {
			return err
		}
	}
	return nil
}
