package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stepwall/pkg/cache"
	"github.com/matzehuels/stepwall/pkg/core/classify"
	"github.com/matzehuels/stepwall/pkg/core/render"
	"github.com/matzehuels/stepwall/pkg/core/render/sink"
	"github.com/matzehuels/stepwall/pkg/observability"
)

// keyTypeImage labels image entries in cache hooks.
const keyTypeImage = "image"

// Runner generates wallpapers with caching. Both CLI and API use it.
//
// A Runner holds no per-request state; multiple goroutines can use the same
// Runner concurrently.
type Runner struct {
	Config Config
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	// TTL is the lifetime of stored images. Zero keeps them forever.
	TTL time.Duration
}

// NewRunner creates a runner.
// If c is nil, a NullCache is used (caching disabled).
// If keyer is nil, a DefaultKeyer is used.
func NewRunner(cfg Config, c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Config: cfg,
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
		TTL:    cache.TTLImage,
	}
}

// Execute validates opts, then returns the cached image or renders a new
// one. Cache failures are logged and otherwise ignored.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(r.Config); err != nil {
		return nil, err
	}
	logger := opts.Logger

	states := classify.Classify(opts.Record, opts.Goal)
	result := &Result{
		Format:      opts.Format,
		ContentType: sink.ContentTypes[opts.Format],
		Stats:       classify.ComputeStats(opts.Record, opts.Goal),
		Counts:      classify.Count(states),
	}

	key := r.Keyer.ImageKey(opts.KeyOpts(r.Config))
	if !opts.Refresh {
		if data, ok := r.cacheGet(ctx, key); ok {
			result.Artifact = data
			result.CacheHit = true
			logger.Debug("served from cache", "format", opts.Format, "bytes", len(data))
			return result, nil
		}
	}

	data, err := r.generate(ctx, opts, states, &result.Timing)
	if err != nil {
		return nil, err
	}
	result.Artifact = data

	logger.Info("rendered wallpaper",
		"format", opts.Format,
		"size", fmt.Sprintf("%dx%d", opts.Width, opts.Height),
		"days", len(opts.Record),
		"bytes", len(data),
		"duration", result.Timing.LayoutTime+result.Timing.RenderTime)

	r.cacheSet(ctx, key, data)
	return result, nil
}

func (r *Runner) generate(ctx context.Context, opts Options, states []classify.State, timing *Timing) ([]byte, error) {
	newSurface, err := sink.ForFormat(opts.Format)
	if err != nil {
		return nil, err
	}
	hooks := observability.Pipeline()

	// Stage 1: Layout
	start := time.Now()
	hooks.OnLayoutStart(ctx, opts.Width, opts.Height)
	frame := Frame(r.Config, Request{
		Width:  opts.Width,
		Height: opts.Height,
		Record: opts.Record,
		Goal:   opts.Goal,
	})
	timing.LayoutTime = time.Since(start)
	hooks.OnLayoutComplete(ctx, len(frame.Layout.Positions), timing.LayoutTime)
	opts.Logger.Debug("computed layout",
		"cells", len(frame.Layout.Positions),
		"radius", frame.Layout.Radius,
		"duration", timing.LayoutTime)

	// Stage 2: Render
	start = time.Now()
	hooks.OnRenderStart(ctx, opts.Format, opts.Width, opts.Height)
	data, err := render.Render(newSurface, opts.Width, opts.Height, frame, r.Config.Style)
	timing.RenderTime = time.Since(start)
	hooks.OnRenderComplete(ctx, opts.Format, len(data), timing.RenderTime, err)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", opts.Format, err)
	}
	return data, nil
}

func (r *Runner) cacheGet(ctx context.Context, key string) ([]byte, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		observability.Cache().OnCacheError(ctx, "get", err)
		r.Logger.Warn("cache lookup failed", "err", err)
		return nil, false
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, keyTypeImage)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, keyTypeImage)
	return data, true
}

func (r *Runner) cacheSet(ctx context.Context, key string, data []byte) {
	if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
		observability.Cache().OnCacheError(ctx, "set", err)
		r.Logger.Warn("cache store failed", "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyTypeImage, len(data))
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
