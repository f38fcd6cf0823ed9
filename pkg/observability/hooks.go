// Package observability lets the application observe wallpaper generation,
// cache traffic and HTTP requests without the libraries knowing who listens.
//
// The pipeline, cache and API packages report events to whatever hooks are
// installed; by default every event goes to [Noop]. The CLI installs
// [LogHooks] when running with --verbose:
//
//	observability.Register(observability.NewLogHooks(logger))
//	defer observability.Reset()
//
// Emitting an event:
//
//	start := time.Now()
//	data, err := render(...)
//	observability.Pipeline().OnRenderComplete(ctx, "png", len(data), time.Since(start), err)
package observability

import (
	"context"
	"sync"
	"time"
)

// PipelineHooks receives events from wallpaper generation.
type PipelineHooks interface {
	OnLayoutStart(ctx context.Context, width, height int)
	OnLayoutComplete(ctx context.Context, cells int, duration time.Duration)
	OnRenderStart(ctx context.Context, format string, width, height int)
	OnRenderComplete(ctx context.Context, format string, size int, duration time.Duration, err error)
}

// CacheHooks receives events from image cache lookups and stores.
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
	// OnCacheError records a backend failure. The request proceeds uncached.
	OnCacheError(ctx context.Context, op string, err error)
}

// HTTPHooks receives events for inbound HTTP requests.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, path string)
	OnResponse(ctx context.Context, method, path string, statusCode, size int, duration time.Duration)
}

// Hooks observes everything.
type Hooks interface {
	PipelineHooks
	CacheHooks
	HTTPHooks
}

// Noop ignores every event. Embed it to implement only some methods.
type Noop struct{}

func (Noop) OnLayoutStart(context.Context, int, int)                             {}
func (Noop) OnLayoutComplete(context.Context, int, time.Duration)                {}
func (Noop) OnRenderStart(context.Context, string, int, int)                     {}
func (Noop) OnRenderComplete(context.Context, string, int, time.Duration, error) {}
func (Noop) OnCacheHit(context.Context, string)                                  {}
func (Noop) OnCacheMiss(context.Context, string)                                 {}
func (Noop) OnCacheSet(context.Context, string, int)                             {}
func (Noop) OnCacheError(context.Context, string, error)                         {}
func (Noop) OnRequest(context.Context, string, string)                           {}
func (Noop) OnResponse(context.Context, string, string, int, int, time.Duration) {}

var _ Hooks = Noop{}

// slot holds the installed hooks of one kind.
type slot[T any] struct {
	mu  sync.RWMutex
	cur T
}

func (s *slot[T]) load() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur
}

// store installs h unless it is nil.
func (s *slot[T]) store(h T) {
	if any(h) == nil {
		return
	}
	s.mu.Lock()
	s.cur = h
	s.mu.Unlock()
}

func (s *slot[T]) reset(def T) {
	s.mu.Lock()
	s.cur = def
	s.mu.Unlock()
}

var (
	pipelineSlot = &slot[PipelineHooks]{cur: Noop{}}
	cacheSlot    = &slot[CacheHooks]{cur: Noop{}}
	httpSlot     = &slot[HTTPHooks]{cur: Noop{}}
)

// SetPipelineHooks installs pipeline hooks. A nil h is ignored.
func SetPipelineHooks(h PipelineHooks) { pipelineSlot.store(h) }

// SetCacheHooks installs cache hooks. A nil h is ignored.
func SetCacheHooks(h CacheHooks) { cacheSlot.store(h) }

// SetHTTPHooks installs HTTP hooks. A nil h is ignored.
func SetHTTPHooks(h HTTPHooks) { httpSlot.store(h) }

// Register installs h for every kind of event.
func Register(h Hooks) {
	if h == nil {
		return
	}
	SetPipelineHooks(h)
	SetCacheHooks(h)
	SetHTTPHooks(h)
}

// Pipeline returns the installed pipeline hooks.
func Pipeline() PipelineHooks { return pipelineSlot.load() }

// Cache returns the installed cache hooks.
func Cache() CacheHooks { return cacheSlot.load() }

// HTTP returns the installed HTTP hooks.
func HTTP() HTTPHooks { return httpSlot.load() }

// Reset restores [Noop] everywhere.
func Reset() {
	pipelineSlot.reset(Noop{})
	cacheSlot.reset(Noop{})
	httpSlot.reset(Noop{})
}
