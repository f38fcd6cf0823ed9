// Package config loads stepwall's settings.
//
// Settings come from three layers, later ones winning:
//
//  1. built-in defaults ([Default])
//  2. a TOML file, by default $XDG_CONFIG_HOME/stepwall/config.toml
//  3. the PORT environment variable, which replaces the listen port
//
// A missing config file is not an error. Every key is optional:
//
//	[server]
//	addr = ":3000"
//	max-dimension = 5000
//	default-scale = 3.0
//	read-timeout = "10s"
//
//	[render]
//	goal = 10000
//	format = "png"
//
//	[palette]
//	missed = "#ef4444"
//
//	[cache]
//	backend = "redis"
//	ttl = "24h"
//	redis-addr = "localhost:6379"
//
// [Load] returns a validated [Config] value.
package config

import (
	"net"
	"time"

	"github.com/matzehuels/stepwall/pkg/cache"
	"github.com/matzehuels/stepwall/pkg/errors"
	"github.com/matzehuels/stepwall/pkg/pipeline"
)

// Config is the resolved configuration.
type Config struct {
	Server   Server
	Goal     int
	Format   string
	Pipeline pipeline.Config
	Cache    Cache
}

// Server holds the HTTP server settings.
type Server struct {
	Addr            string
	DefaultScale    float64
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// Cache holds the image cache settings.
type Cache struct {
	Backend string
	TTL     time.Duration
	Dir     string
	Prefix  string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	MongoURI        string
	MongoDatabase   string
	MongoCollection string
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: Server{
			Addr:            ":3000",
			DefaultScale:    pipeline.DefaultScale,
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Goal:     pipeline.DefaultGoal,
		Format:   pipeline.DefaultFormat,
		Pipeline: pipeline.DefaultConfig(),
		Cache: Cache{
			Backend:         cache.BackendNone,
			TTL:             cache.TTLImage,
			Dir:             DefaultCacheDir(),
			Prefix:          appName + ":",
			RedisAddr:       "localhost:6379",
			MongoDatabase:   appName,
			MongoCollection: "images",
		},
	}
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if err := c.Pipeline.Validate(); err != nil {
		return err
	}
	if c.Server.Addr == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "server.addr must not be empty")
	}
	if _, _, err := net.SplitHostPort(c.Server.Addr); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "server.addr %q", c.Server.Addr)
	}
	if err := errors.ValidateScale(c.Server.DefaultScale); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "server.default-scale")
	}
	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 || c.Server.ShutdownTimeout < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "server timeouts must not be negative")
	}
	if err := errors.ValidateGoal(c.Goal); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "render.goal")
	}
	if err := pipeline.ValidateFormat(c.Format); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "render.format")
	}
	switch c.Cache.Backend {
	case cache.BackendNone, cache.BackendFile, cache.BackendRedis, cache.BackendMongo:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "cache.backend %q must be one of: none, file, redis, mongo", c.Cache.Backend)
	}
	if c.Cache.TTL < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.ttl must not be negative")
	}
	if c.Cache.Backend == cache.BackendMongo && c.Cache.MongoURI == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.mongo-uri is required for the mongo backend")
	}
	return nil
}

// CacheOptions converts the cache settings for cache.Open.
func (c Config) CacheOptions() cache.Options {
	return cache.Options{
		Backend:         c.Cache.Backend,
		Dir:             c.Cache.Dir,
		Prefix:          c.Cache.Prefix,
		RedisAddr:       c.Cache.RedisAddr,
		RedisPassword:   c.Cache.RedisPassword,
		RedisDB:         c.Cache.RedisDB,
		MongoURI:        c.Cache.MongoURI,
		MongoDatabase:   c.Cache.MongoDatabase,
		MongoCollection: c.Cache.MongoCollection,
	}
}

// WithPort returns addr with its port replaced.
func WithPort(addr, port string) string {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		host = ""
	}
	return net.JoinHostPort(host, port)
}
