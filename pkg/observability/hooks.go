// Package observability carries routing, pipeline, cache and API events to
// whatever metrics backend the binary registers.
//
// Every category starts out as a no-op. Register implementations once at
// startup; [PrometheusHooks] implements all four and is what `tilewire serve`
// installs before exposing /metrics:
//
//	hooks := observability.NewPrometheusHooks(prometheus.DefaultRegisterer)
//	observability.SetConnectionHooks(hooks)
//	observability.SetCacheHooks(hooks)
//
// Instrumented code fetches the current hooks at the call site:
//
//	observability.Connection().OnRoute(ctx, "orthogonal", len(points), time.Since(start))
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Connection Hooks
// =============================================================================

// ConnectionHooks receives events from the connection manager.
type ConnectionHooks interface {
	// OnRoute records one route computation.
	OnRoute(ctx context.Context, mode string, points int, duration time.Duration)

	// OnConnectionAdded records a record that became a live connection.
	OnConnectionAdded(ctx context.Context, id, mode string)

	// OnConnectionRemoved records a connection that was torn down.
	OnConnectionRemoved(ctx context.Context, id string)

	// OnConnectionSkipped records a record that could not be bound, e.g.
	// because one of its nodes does not exist yet.
	OnConnectionSkipped(ctx context.Context, id, reason string)
}

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the route-and-render pipeline.
type PipelineHooks interface {
	// Layout events
	OnLayoutStart(ctx context.Context, engine string, nodeCount int)
	OnLayoutComplete(ctx context.Context, engine string, duration time.Duration, err error)

	// Render events
	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from the HTTP API.
type HTTPHooks interface {
	// OnRequest records an incoming request.
	OnRequest(ctx context.Context, method, route string)

	// OnResponse records the response sent for a request.
	OnResponse(ctx context.Context, method, route string, statusCode int, duration time.Duration)

	// OnError records a request that failed with an internal error.
	OnError(ctx context.Context, method, route string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopConnectionHooks is a no-op implementation of ConnectionHooks.
type NoopConnectionHooks struct{}

func (NoopConnectionHooks) OnRoute(context.Context, string, int, time.Duration) {}
func (NoopConnectionHooks) OnConnectionAdded(context.Context, string, string)   {}
func (NoopConnectionHooks) OnConnectionRemoved(context.Context, string)         {}
func (NoopConnectionHooks) OnConnectionSkipped(context.Context, string, string) {}

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnLayoutStart(context.Context, string, int)                       {}
func (NoopPipelineHooks) OnLayoutComplete(context.Context, string, time.Duration, error)   {}
func (NoopPipelineHooks) OnRenderStart(context.Context, []string)                          {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, error)                 {}

// =============================================================================
// Registry
// =============================================================================

// slot holds the registered implementation of one hook category.
type slot[T any] struct {
	mu   sync.RWMutex
	cur  T
	noop T
}

func newSlot[T any](noop T) *slot[T] {
	return &slot[T]{cur: noop, noop: noop}
}

func (s *slot[T]) set(h T) {
	if any(h) == nil {
		return
	}
	s.mu.Lock()
	s.cur = h
	s.mu.Unlock()
}

func (s *slot[T]) get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur
}

func (s *slot[T]) reset() {
	s.mu.Lock()
	s.cur = s.noop
	s.mu.Unlock()
}

var (
	connectionSlot = newSlot[ConnectionHooks](NoopConnectionHooks{})
	pipelineSlot   = newSlot[PipelineHooks](NoopPipelineHooks{})
	cacheSlot      = newSlot[CacheHooks](NoopCacheHooks{})
	httpSlot       = newSlot[HTTPHooks](NoopHTTPHooks{})
)

// SetConnectionHooks registers connection hooks. A nil h is ignored.
func SetConnectionHooks(h ConnectionHooks) { connectionSlot.set(h) }

// SetPipelineHooks registers layout and render hooks. A nil h is ignored.
func SetPipelineHooks(h PipelineHooks) { pipelineSlot.set(h) }

// SetCacheHooks registers cache hooks. A nil h is ignored.
func SetCacheHooks(h CacheHooks) { cacheSlot.set(h) }

// SetHTTPHooks registers API hooks. A nil h is ignored.
func SetHTTPHooks(h HTTPHooks) { httpSlot.set(h) }

// Connection returns the registered connection hooks.
func Connection() ConnectionHooks { return connectionSlot.get() }

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks { return pipelineSlot.get() }

// Cache returns the registered cache hooks.
func Cache() CacheHooks { return cacheSlot.get() }

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks { return httpSlot.get() }

// Reset restores every category to its no-op implementation.
func Reset() {
	connectionSlot.reset()
	pipelineSlot.reset()
	cacheSlot.reset()
	httpSlot.reset()
}
