// Package config loads apinav settings.
//
// Settings are layered, later sources overriding earlier ones:
//
//  1. built-in defaults ([Default])
//  2. a TOML file, by default $XDG_CONFIG_HOME/apinav/config.toml
//  3. a .env file in the working directory (never overrides variables that
//     are already set)
//  4. APINAV_* environment variables
//
// Example file:
//
//	[tree]
//	hide_internal = true
//
//	[cache]
//	backend = "redis"
//	ttl = "24h"
//	redis_addr = "localhost:6379"
//
//	[server]
//	addr = ":8080"
//	memo_size = 512
package config

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/matzehuels/apinav/pkg/cache"
	"github.com/matzehuels/apinav/pkg/core/toc"
	"github.com/matzehuels/apinav/pkg/errors"
)

const appName = "apinav"

// Cache backends.
const (
	BackendNone  = "none"
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
)

// Config is the complete apinav configuration.
type Config struct {
	Tree   toc.Config   `toml:"tree"`
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
}

// CacheConfig selects and configures the artifact cache.
type CacheConfig struct {
	Backend       string   `toml:"backend"`
	Dir           string   `toml:"dir"`
	TTL           Duration `toml:"ttl"`
	RedisAddr     string   `toml:"redis_addr"`
	RedisPassword string   `toml:"redis_password"`
	RedisDB       int      `toml:"redis_db"`
	MongoURI      string   `toml:"mongo_uri"`
	MongoDatabase string   `toml:"mongo_database"`
}

// ServerConfig configures `apinav serve`.
type ServerConfig struct {
	Addr            string   `toml:"addr"`
	MemoSize        int      `toml:"memo_size"`
	ShutdownTimeout Duration `toml:"shutdown_timeout"`
}

// Duration is a time.Duration read from strings such as "90m".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Cache: CacheConfig{
			Backend:       BackendFile,
			Dir:           defaultCacheDir(),
			TTL:           Duration{cache.TTLArtifact},
			RedisAddr:     "localhost:6379",
			MongoDatabase: cache.DefaultMongoDatabase,
		},
		Server: ServerConfig{
			Addr:            ":8080",
			MemoSize:        256,
			ShutdownTimeout: Duration{10 * time.Second},
		},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/apinav/config.toml, falling back to
// ~/.config/apinav/config.toml.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

func defaultCacheDir() string {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), appName)
	}
	return filepath.Join(home, ".cache", appName)
}

// Load builds the configuration. An explicit path must exist; with an empty
// path the default file is used when present.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err == nil {
			path = p
		}
	}
	if path != "" {
		if err := cfg.loadFile(path, explicit); err != nil {
			return nil, err
		}
	}

	_ = godotenv.Load()

	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) loadFile(path string, required bool) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if required {
			return errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s not found", path)
		}
		return nil
	}

	md, err := toml.DecodeFile(path, c)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return errors.New(errors.ErrCodeInvalidConfig, "unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}
	return nil
}

// ApplyEnv overrides settings from APINAV_* variables read through getenv.
// PORT is honoured as a shorthand for ":<port>" when APINAV_ADDR is unset.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	str := func(key string, dst *string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}
	boolean := func(key string, dst *bool) error {
		v := strings.TrimSpace(getenv(key))
		if v == "" {
			return nil
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s", key)
		}
		*dst = b
		return nil
	}

	str("APINAV_CACHE_BACKEND", &c.Cache.Backend)
	str("APINAV_CACHE_DIR", &c.Cache.Dir)
	str("APINAV_REDIS_ADDR", &c.Cache.RedisAddr)
	str("APINAV_REDIS_PASSWORD", &c.Cache.RedisPassword)
	str("APINAV_MONGO_URI", &c.Cache.MongoURI)
	str("APINAV_MONGO_DATABASE", &c.Cache.MongoDatabase)

	if v := strings.TrimSpace(getenv("APINAV_CACHE_TTL")); v != "" {
		if err := c.Cache.TTL.UnmarshalText([]byte(v)); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "APINAV_CACHE_TTL")
		}
	}
	if v := strings.TrimSpace(getenv("APINAV_REDIS_DB")); v != "" {
		db, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "APINAV_REDIS_DB")
		}
		c.Cache.RedisDB = db
	}

	if v := strings.TrimSpace(getenv("APINAV_ADDR")); v != "" {
		c.Server.Addr = v
	} else if port := strings.TrimSpace(getenv("PORT")); port != "" {
		c.Server.Addr = ":" + strings.TrimPrefix(port, ":")
	}

	if err := boolean("APINAV_HIDE_INTERNAL", &c.Tree.HideInternal); err != nil {
		return err
	}
	return boolean("APINAV_HIDE_SCHEMAS", &c.Tree.HideSchemas)
}

// Validate checks the configuration for values no component can use.
func (c *Config) Validate() error {
	switch c.Cache.Backend {
	case BackendNone:
	case BackendFile:
		if c.Cache.Dir == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "cache backend %q needs a dir", c.Cache.Backend)
		}
	case BackendRedis:
		if c.Cache.RedisAddr == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "cache backend %q needs redis_addr", c.Cache.Backend)
		}
	case BackendMongo:
		if c.Cache.MongoURI == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "cache backend %q needs mongo_uri", c.Cache.Backend)
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q (want none, file, redis or mongo)", c.Cache.Backend)
	}
	if c.Cache.TTL.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache ttl must not be negative")
	}
	if c.Server.MemoSize <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "server memo_size must be positive, got %d", c.Server.MemoSize)
	}
	return nil
}

// OpenCache opens the configured cache backend.
func (c *Config) OpenCache(ctx context.Context) (cache.Cache, error) {
	switch c.Cache.Backend {
	case BackendFile:
		fc, err := cache.NewFileCache(c.Cache.Dir)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open cache dir %s", c.Cache.Dir)
		}
		return fc, nil
	case BackendRedis:
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     c.Cache.RedisAddr,
			Password: c.Cache.RedisPassword,
			DB:       c.Cache.RedisDB,
		})
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeNetwork, err, "connect to redis")
		}
		return rc, nil
	case BackendMongo:
		mc, err := cache.NewMongoCache(ctx, cache.MongoConfig{
			URI:      c.Cache.MongoURI,
			Database: c.Cache.MongoDatabase,
		})
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeNetwork, err, "connect to mongo")
		}
		return mc, nil
	default:
		return cache.NewNullCache(), nil
	}
}
