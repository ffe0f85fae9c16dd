package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"go.uber.org/zap"

	"github.com/unkn0wn-root/dictcache"
	"github.com/unkn0wn-root/dictcache/codec"
	"github.com/unkn0wn-root/dictcache/genstore"
	"github.com/unkn0wn-root/dictcache/hashstore"
	asynchook "github.com/unkn0wn-root/dictcache/hooks/async"
	"github.com/unkn0wn-root/dictcache/internal/config"
	dictlogrus "github.com/unkn0wn-root/dictcache/log/logrus"
	dictslog "github.com/unkn0wn-root/dictcache/log/slog"
	dictzap "github.com/unkn0wn-root/dictcache/log/zap"
	"github.com/unkn0wn-root/dictcache/provider"
	bcprov "github.com/unkn0wn-root/dictcache/provider/bigcache"
	redisprov "github.com/unkn0wn-root/dictcache/provider/redis"
	rprov "github.com/unkn0wn-root/dictcache/provider/ristretto"
	"github.com/unkn0wn-root/dictcache/sloghooks"
	"github.com/unkn0wn-root/dictcache/store/memstore"
	"github.com/unkn0wn-root/dictcache/store/postgres"
)

const (
	hookWorkers = 1
	hookQueue   = 256
)

// Application owns every long-lived resource the binary opens.
type Application struct {
	Config *config.AppConfig
	Dict   dictcache.Service

	closers []func(context.Context)
}

func NewApp(cfg *config.AppConfig) (*Application, error) {
	ctx := context.Background()
	a := &Application{Config: cfg}

	store, err := a.openStore(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}

	var rdb goredis.UniversalClient
	if needsRedis(cfg.Backend) {
		rdb = goredis.NewClient(&goredis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			a.Close()
			return nil, fmt.Errorf("unable to reach redis at %s: %w", cfg.RedisAddr, err)
		}
		a.onClose(func(context.Context) { _ = rdb.Close() })
	}

	hash, err := openHashStore(ctx, cfg.Backend, rdb)
	if err != nil {
		a.Close()
		return nil, err
	}

	c, err := openCodec(cfg.Codec, cfg.MaxDecode)
	if err != nil {
		_ = hash.Close(ctx)
		a.Close()
		return nil, err
	}

	logger, err := a.newLogger(cfg.LogBackend)
	if err != nil {
		_ = hash.Close(ctx)
		a.Close()
		return nil, err
	}

	hooks := asynchook.New(sloghooks.New(slog.Default(), sloghooks.Options{
		ReadFailEvery:   10,
		DecodeFailEvery: 10,
		VerboseRefresh:  cfg.DevMode,
	}), hookWorkers, hookQueue)

	var gens genstore.GenStore
	if cfg.Generations {
		if rdb != nil {
			gens = genstore.NewRedisGenStoreWithTTL(rdb, "dictcache", 24*time.Hour)
		} else {
			gens = genstore.NewLocalGenStore()
		}
	}

	svc, err := dictcache.New(dictcache.Options{
		Store:          store,
		HashStore:      hash,
		HashKey:        cfg.HashKey,
		Codec:          c,
		Logger:         logger,
		Hooks:          hooks,
		GenStore:       gens,
		PersistOnAdd:   cfg.PersistOnAdd,
		RefreshWorkers: cfg.RefreshWorkers,
		RefreshQueue:   cfg.RefreshQueue,
		RefreshTimeout: cfg.RefreshTimeout,
	})
	if err != nil {
		hooks.Close()
		_ = hash.Close(ctx)
		a.Close()
		return nil, err
	}
	a.Dict = svc

	// Service first so queued refreshes finish before hooks and clients go away.
	a.closers = append([]func(context.Context){
		func(ctx context.Context) {
			if err := svc.Close(ctx); err != nil {
				slog.Warn("Error closing dictionary cache", "error", err)
			}
		},
		func(context.Context) { hooks.Close() },
	}, a.closers...)
	return a, nil
}

// Warm loads the cache once before the server starts taking traffic.
// An empty store is not an error.
func (a *Application) Warm(ctx context.Context) error {
	err := a.Dict.RefreshNow(ctx, dictcache.Entry{})
	if err == nil || errors.Is(err, dictcache.ErrEmptySnapshot) {
		return nil
	}
	return err
}

func (a *Application) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for _, c := range a.closers {
		c(ctx)
	}
	a.closers = nil
}

func (a *Application) onClose(f func(context.Context)) {
	a.closers = append(a.closers, f)
}

func (a *Application) openStore(ctx context.Context) (dictcache.Store, error) {
	cfg := a.Config
	switch strings.ToLower(cfg.Store) {
	case "memory":
		return memstore.New(), nil
	case "postgres":
		pool, err := postgres.Connect(ctx, postgres.Config{
			Host:     cfg.DBHost,
			Port:     cfg.DBPort,
			Name:     cfg.DBName,
			User:     cfg.DBUsername,
			Password: cfg.DBPassword,
			SSLMode:  cfg.DBSSLMode,
			MaxConns: cfg.DBMaxConns,
			MinConns: cfg.DBMinConns,
		})
		if err != nil {
			return nil, fmt.Errorf("unable to connect to database: %w", err)
		}
		a.onClose(func(context.Context) { pool.Close() })
		st := postgres.New(pool)
		if cfg.DBMigrate {
			if err := st.EnsureSchema(ctx); err != nil {
				return nil, fmt.Errorf("unable to create schema: %w", err)
			}
		}
		return st, nil
	default:
		return nil, fmt.Errorf("unknown store %q", cfg.Store)
	}
}

func needsRedis(backend string) bool {
	switch strings.ToLower(backend) {
	case "redis", "redis-blob":
		return true
	}
	return false
}

func openHashStore(ctx context.Context, backend string, rdb goredis.UniversalClient) (hashstore.HashStore, error) {
	var p provider.Provider
	var err error
	switch strings.ToLower(backend) {
	case "memory":
		return hashstore.NewMemory(), nil
	case "redis":
		return hashstore.NewRedis(hashstore.RedisConfig{Client: rdb})
	case "redis-blob":
		p, err = redisprov.New(redisprov.Config{Client: rdb, Prefix: "blob:"})
	case "bigcache":
		p, err = bcprov.New(ctx, bcprov.Config{})
	case "ristretto":
		p, err = rprov.New(rprov.Config{})
	default:
		return nil, fmt.Errorf("unknown cache backend %q", backend)
	}
	if err != nil {
		return nil, fmt.Errorf("unable to open %s backend: %w", backend, err)
	}
	return hashstore.NewBlob(p), nil
}

func openCodec(name string, maxDecode int) (codec.Codec[[]dictcache.Entry], error) {
	var c codec.Codec[[]dictcache.Entry]
	if strings.ToLower(name) == "proto" {
		c = dictcache.ProtoCodec()
	} else {
		var err error
		if c, err = codec.ForName[[]dictcache.Entry](name); err != nil {
			return nil, err
		}
	}
	if maxDecode > 0 {
		c = codec.Limit[[]dictcache.Entry]{Inner: c, MaxDecode: maxDecode}
	}
	return c, nil
}

func (a *Application) newLogger(backend string) (dictcache.Logger, error) {
	switch strings.ToLower(backend) {
	case "", "slog":
		return dictslog.Logger{L: slog.Default().With("component", "dictcache")}, nil
	case "zap":
		zc := zap.NewProductionConfig()
		zc.Level = zap.NewAtomicLevelAt(zapLevel(config.Level()))
		zl, err := zc.Build()
		if err != nil {
			return nil, fmt.Errorf("unable to build zap logger: %w", err)
		}
		a.onClose(func(context.Context) { _ = zl.Sync() })
		return dictzap.ZapLogger{L: zl.Named("dictcache")}, nil
	case "logrus":
		l := logrus.New()
		l.SetFormatter(&logrus.JSONFormatter{})
		l.SetLevel(logrusLevel(config.Level()))
		return dictlogrus.LogrusLogger{E: logrus.NewEntry(l).WithField("component", "dictcache")}, nil
	default:
		return nil, fmt.Errorf("unknown log backend %q", backend)
	}
}
