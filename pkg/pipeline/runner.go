package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tilewire/pkg/cache"
	"github.com/matzehuels/tilewire/pkg/graph"
	"github.com/matzehuels/tilewire/pkg/layout"
	"github.com/matzehuels/tilewire/pkg/observability"
	"github.com/matzehuels/tilewire/pkg/render"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// DiagramTTL and ArtifactTTL bound how long cached entries live.
	DiagramTTL  time.Duration
	ArtifactTTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:       c,
		Keyer:       keyer,
		Logger:      logger,
		DiagramTTL:  cache.DiagramTTL,
		ArtifactTTL: cache.ArtifactTTL,
	}
}

// Execute runs the complete layout → route → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, d graph.Diagram, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Layout
	layoutStart := time.Now()
	laid, layoutHit, err := r.LayoutWithCacheInfo(ctx, d, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Diagram = laid
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.NodeCount = len(laid.Nodes)
	result.Stats.ConnectionCount = len(laid.Connections)
	result.CacheInfo.LayoutHit = layoutHit

	data, err := graph.MarshalDiagram(laid)
	if err != nil {
		return nil, err
	}
	result.DiagramHash = cache.Hash(data)

	// Stage 2: Route
	routeStart := time.Now()
	scene, err := r.Route(ctx, laid, opts)
	if err != nil {
		return nil, fmt.Errorf("route: %w", err)
	}
	result.Scene = scene
	result.Stats.RouteTime = time.Since(routeStart)
	result.Stats.DrawnCount = len(scene.Connections)

	r.Logger.Info("routed connections",
		"nodes", result.Stats.NodeCount,
		"drawn", result.Stats.DrawnCount,
		"skipped", result.Stats.SkippedCount(),
		"duration", result.Stats.RouteTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, scene, result.DiagramHash, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// LayoutWithCacheInfo places unplaced nodes with caching and returns cache
// hit info. Diagrams without unplaced nodes, or with AutoLayout off, are
// returned unchanged and never touch the cache.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, d graph.Diagram, opts Options) (graph.Diagram, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return graph.Diagram{}, false, err
	}
	if !opts.AutoLayout || !d.NeedsLayout() {
		return d, false, nil
	}

	data, err := graph.MarshalDiagram(d)
	if err != nil {
		return graph.Diagram{}, false, err
	}
	cacheKey := r.Keyer.DiagramKey(cache.Hash(data), opts.DiagramKeyOpts())
	hooks := observability.Cache()

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if cached, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			laid, err := graph.UnmarshalDiagram(cached, graph.FormatJSON)
			if err == nil {
				hooks.OnCacheHit(ctx, "diagram")
				return laid, true, nil // Cache hit
			}
			// If deserialization fails, fall through to recompute
			r.Logger.Debug("discarding unreadable cached diagram", "key", cacheKey, "err", err)
		}
		hooks.OnCacheMiss(ctx, "diagram")
	}

	laid, err := layout.Auto(ctx, d, opts.Layout)
	if err != nil {
		return graph.Diagram{}, false, err
	}

	// Cache the result
	if out, err := graph.MarshalDiagram(laid); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, out, r.DiagramTTL); err != nil {
			r.Logger.Warn("cache write failed", "key", cacheKey, "err", err)
		} else {
			hooks.OnCacheSet(ctx, "diagram", len(out))
		}
	}

	return laid, false, nil // Cache miss
}

// Layout is a convenience wrapper that calls LayoutWithCacheInfo and discards the cache hit info.
func (r *Runner) Layout(ctx context.Context, d graph.Diagram, opts Options) (graph.Diagram, error) {
	laid, _, err := r.LayoutWithCacheInfo(ctx, d, opts)
	return laid, err
}

// Route binds the diagram's records to its nodes and returns the routed scene.
func (r *Runner) Route(ctx context.Context, d graph.Diagram, opts Options) (render.Scene, error) {
	r.applyLogger(&opts)
	b, err := NewBoard(ctx, d, opts)
	if err != nil {
		return render.Scene{}, err
	}
	return b.Scene(opts), nil
}

// RenderWithCacheInfo draws the scene in every requested format with caching
// and reports whether all artifacts came from the cache. diagramHash names
// the routed diagram; scenes built from the same diagram and options always
// produce the same bytes.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, s render.Scene, diagramHash string, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	hooks := observability.Cache()

	artifacts := make(map[string][]byte, len(opts.Formats))
	var missing []string
	for _, format := range opts.Formats {
		cacheKey := r.Keyer.ArtifactKey(diagramHash, opts.ArtifactKeyOpts(format))
		if !opts.Refresh && diagramHash != "" {
			if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
				hooks.OnCacheHit(ctx, "artifact")
				artifacts[format] = data
				continue
			}
			hooks.OnCacheMiss(ctx, "artifact")
		}
		missing = append(missing, format)
	}
	if len(missing) == 0 {
		return artifacts, true, nil // All artifacts from cache
	}

	rendered, err := RenderScene(ctx, s, missing, opts)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		artifacts[format] = data
		if diagramHash == "" {
			continue
		}
		cacheKey := r.Keyer.ArtifactKey(diagramHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, cacheKey, data, r.ArtifactTTL); err != nil {
			r.Logger.Warn("cache write failed", "key", cacheKey, "err", err)
			continue
		}
		hooks.OnCacheSet(ctx, "artifact", len(data))
	}

	return artifacts, false, nil // Cache miss
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, s render.Scene, diagramHash string, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, s, diagramHash, opts)
	return artifacts, err
}

// RenderScene draws the scene in the given formats without caching.
func RenderScene(ctx context.Context, s render.Scene, formats []string, opts Options) (map[string][]byte, error) {
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, formats)
	start := time.Now()

	out := make(map[string][]byte, len(formats))
	var err error
	for _, format := range formats {
		var data []byte
		if format == FormatSVG {
			data = render.SVG(s, svgOptions(opts)...)
		} else {
			data, err = render.Render(s, format, opts.Scale)
		}
		if err != nil {
			break
		}
		out[format] = data
	}

	hooks.OnRenderComplete(ctx, formats, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func svgOptions(opts Options) []render.SVGOption {
	var o []render.SVGOption
	if opts.Background != "" {
		o = append(o, render.WithBackground(opts.Background))
	}
	return o
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
