package cache

import (
	"context"
	"fmt"
	"time"
)

// Backend names accepted by Open.
const (
	BackendNone  = "none"
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
)

// Options selects and configures a backend.
type Options struct {
	Backend string
	Dir     string // file
	Prefix  string // redis, mongo

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	MongoURI        string
	MongoDatabase   string
	MongoCollection string

	OpTimeout time.Duration
}

// Open creates the backend named by opts.Backend. An empty backend means
// no caching.
func Open(ctx context.Context, opts Options) (Cache, error) {
	var (
		c   Cache
		err error
	)
	switch opts.Backend {
	case "", BackendNone:
		return NewNullCache(), nil
	case BackendFile:
		if opts.Dir == "" {
			return nil, fmt.Errorf("file cache: directory is required")
		}
		c, err = unlessErr(NewFileCache(opts.Dir))
	case BackendRedis:
		c, err = unlessErr(NewRedisCache(ctx, RedisOptions{
			Addr:      opts.RedisAddr,
			Password:  opts.RedisPassword,
			DB:        opts.RedisDB,
			Prefix:    opts.Prefix,
			OpTimeout: opts.OpTimeout,
		}))
	case BackendMongo:
		c, err = unlessErr(NewMongoCache(ctx, MongoOptions{
			URI:        opts.MongoURI,
			Database:   opts.MongoDatabase,
			Collection: opts.MongoCollection,
			Prefix:     opts.Prefix,
			OpTimeout:  opts.OpTimeout,
		}))
	default:
		return nil, fmt.Errorf("unknown cache backend %q (must be one of: none, file, redis, mongo)", opts.Backend)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s cache: %w", opts.Backend, err)
	}
	return c, nil
}

// unlessErr converts a concrete backend into a Cache, keeping a failed
// constructor's nil pointer out of the interface.
func unlessErr[C Cache](c C, err error) (Cache, error) {
	if err != nil {
		return nil, err
	}
	return c, nil
}
