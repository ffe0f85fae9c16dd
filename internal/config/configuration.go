package config

import (
	"log/slog"
	"strings"
	"time"

	"github.com/alexflint/go-arg"
	"github.com/joho/godotenv"
)

type AppConfig struct {
	DevMode    bool   `arg:"--dev,env:DEV_MODE" default:"false"`
	Port       int    `arg:"-p,--port,env:LISTEN_PORT" default:"8010"`
	LogLevel   string `arg:"--log-level,env:LOG_LEVEL" default:"default" help:"Log level to use.  Valid values are: debug, info, and warn/warning.  If default the level will be info or debug in dev mode."`
	LogBackend string `arg:"--log-backend,env:LOG_BACKEND" default:"slog" help:"Logger behind the cache library: slog, zap or logrus."`

	Store      string `arg:"--store,env:DICT_STORE" default:"postgres" help:"Backing store: postgres or memory."`
	DBHost     string `arg:"--db-host,env:DB_HOST" default:"localhost"`
	DBName     string `arg:"--db-name,env:DB_NAME" default:"dictcache"`
	DBPort     int    `arg:"--db-port,env:DB_PORT" default:"5432"`
	DBMaxConns int    `arg:"--db-max-conns,env:DB_MAX_CONNS" default:"10"`
	DBMinConns int    `arg:"--db-min-conns,env:DB_MIN_CONNS" default:"1"`
	DBSSLMode  string `arg:"--db-ssl-mode,env:DB_SSL_MODE" default:"disable"`
	DBUsername string `arg:"--db-username,env:DB_USERNAME" default:"dictcache"`
	DBPassword string `arg:"--db-password,env:DB_PASSWORD" default:"badpassword"`
	DBMigrate  bool   `arg:"--db-migrate,env:DB_MIGRATE" default:"false" help:"Create sys_dict on startup when missing."`

	Backend       string `arg:"--backend,env:CACHE_BACKEND" default:"redis" help:"Cache backend: redis (native hash), redis-blob, bigcache, ristretto or memory."`
	RedisAddr     string `arg:"--redis-addr,env:REDIS_ADDR" default:"localhost:6379"`
	RedisPassword string `arg:"--redis-password,env:REDIS_PASSWORD" default:""`
	RedisDB       int    `arg:"--redis-db,env:REDIS_DB" default:"0"`

	HashKey        string        `arg:"--hash-key,env:DICT_HASH_KEY" default:"Redis:Hash"`
	Codec          string        `arg:"--codec,env:DICT_CODEC" default:"json" help:"Field codec: json, msgpack, cbor, cbor-det or proto."`
	MaxDecode      int           `arg:"--max-decode,env:DICT_MAX_DECODE" default:"0" help:"Refuse to decode cached fields larger than this many bytes (0 = no limit)."`
	PersistOnAdd   bool          `arg:"--persist-on-add,env:DICT_PERSIST_ON_ADD" default:"false"`
	Generations    bool          `arg:"--generations,env:DICT_GENERATIONS" default:"false" help:"Only let the latest scheduled refresh write (Redis-backed when the backend is Redis)."`
	RefreshWorkers int           `arg:"--refresh-workers,env:DICT_REFRESH_WORKERS" default:"1"`
	RefreshQueue   int           `arg:"--refresh-queue,env:DICT_REFRESH_QUEUE" default:"64"`
	RefreshTimeout time.Duration `arg:"--refresh-timeout,env:DICT_REFRESH_TIMEOUT" default:"0s"`
	WarmOnStart    bool          `arg:"--warm,env:DICT_WARM_ON_START" default:"true" help:"Refresh the cache synchronously before serving."`
}

func LoadConfig() (*AppConfig, error) {
	var appConfig AppConfig
	arg.MustParse(&appConfig)

	if appConfig.DevMode {
		err := godotenv.Load(".env")
		if err == nil {
			// re-parse to get env vars from .env
			slog.Info("Loaded .env")
			arg.MustParse(&appConfig)
		}
	}

	SetLogLevel(appConfig.LogLevel, appConfig.DevMode)
	return &appConfig, nil
}

// SetLogLevel applies a --log-level value to the process-wide slog level.
func SetLogLevel(level string, devMode bool) {
	if level == "default" {
		if devMode {
			logLevel.Set(slog.LevelDebug)
		} else {
			logLevel.Set(slog.LevelInfo)
		}
		return
	}
	switch strings.ToLower(level) {
	case "debug":
		logLevel.Set(slog.LevelDebug)
	case "info":
		logLevel.Set(slog.LevelInfo)
	case "warn", "warning":
		logLevel.Set(slog.LevelWarn)
	default:
		slog.Error("Unable to configure log level", "level", level)
	}
}
