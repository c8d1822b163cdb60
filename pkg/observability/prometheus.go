package observability

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PrometheusHooks implements every hook interface on top of Prometheus
// collectors.
type PrometheusHooks struct {
	RoutesTotal         *prometheus.CounterVec
	RouteDuration       *prometheus.HistogramVec
	RoutePoints         *prometheus.HistogramVec
	ConnectionsAdded    *prometheus.CounterVec
	ConnectionsRemoved  prometheus.Counter
	ConnectionsSkipped  *prometheus.CounterVec
	LayoutDuration      *prometheus.HistogramVec
	RendersTotal        *prometheus.CounterVec
	RenderDuration      prometheus.Histogram
	CacheRequestsTotal  *prometheus.CounterVec
	CacheBytesWritten   *prometheus.CounterVec
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	HTTPErrorsTotal     *prometheus.CounterVec
}

var (
	_ ConnectionHooks = (*PrometheusHooks)(nil)
	_ PipelineHooks   = (*PrometheusHooks)(nil)
	_ CacheHooks      = (*PrometheusHooks)(nil)
	_ HTTPHooks       = (*PrometheusHooks)(nil)
)

// NewPrometheusHooks creates the collectors and registers them with reg.
func NewPrometheusHooks(reg prometheus.Registerer) *PrometheusHooks {
	f := promauto.With(reg)
	return &PrometheusHooks{
		RoutesTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tilewire_routes_total",
				Help: "Total number of routes computed",
			},
			[]string{"mode"},
		),
		RouteDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tilewire_route_duration_seconds",
				Help:    "Time spent routing and assembling one connection",
				Buckets: []float64{.00001, .00005, .0001, .0005, .001, .005, .01},
			},
			[]string{"mode"},
		),
		RoutePoints: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tilewire_route_points",
				Help:    "Number of waypoints per computed route",
				Buckets: []float64{2, 3, 4, 5, 6, 8, 10, 12},
			},
			[]string{"mode"},
		),
		ConnectionsAdded: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tilewire_connections_added_total",
				Help: "Connections bound from records",
			},
			[]string{"mode"},
		),
		ConnectionsRemoved: f.NewCounter(
			prometheus.CounterOpts{
				Name: "tilewire_connections_removed_total",
				Help: "Connections torn down",
			},
		),
		ConnectionsSkipped: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tilewire_connections_skipped_total",
				Help: "Records that could not be bound to live nodes",
			},
			[]string{"reason"},
		),
		LayoutDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tilewire_layout_duration_seconds",
				Help:    "Automatic layout latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"engine", "status"},
		),
		RendersTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tilewire_renders_total",
				Help: "Render runs by outcome",
			},
			[]string{"status"},
		),
		RenderDuration: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "tilewire_render_duration_seconds",
				Help:    "Render latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
		CacheRequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tilewire_cache_requests_total",
				Help: "Cache lookups by key type and result",
			},
			[]string{"key_type", "result"},
		),
		CacheBytesWritten: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tilewire_cache_bytes_written_total",
				Help: "Bytes written to the cache",
			},
			[]string{"key_type"},
		),
		HTTPRequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tilewire_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tilewire_http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		HTTPErrorsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tilewire_http_errors_total",
				Help: "Requests that failed with an internal error",
			},
			[]string{"method", "route"},
		),
	}
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func (h *PrometheusHooks) OnRoute(_ context.Context, mode string, points int, d time.Duration) {
	h.RoutesTotal.WithLabelValues(mode).Inc()
	h.RouteDuration.WithLabelValues(mode).Observe(d.Seconds())
	h.RoutePoints.WithLabelValues(mode).Observe(float64(points))
}

func (h *PrometheusHooks) OnConnectionAdded(_ context.Context, _, mode string) {
	h.ConnectionsAdded.WithLabelValues(mode).Inc()
}

func (h *PrometheusHooks) OnConnectionRemoved(context.Context, string) {
	h.ConnectionsRemoved.Inc()
}

func (h *PrometheusHooks) OnConnectionSkipped(_ context.Context, _, reason string) {
	h.ConnectionsSkipped.WithLabelValues(reason).Inc()
}

func (h *PrometheusHooks) OnLayoutStart(context.Context, string, int) {}

func (h *PrometheusHooks) OnLayoutComplete(_ context.Context, engine string, d time.Duration, err error) {
	h.LayoutDuration.WithLabelValues(engine, status(err)).Observe(d.Seconds())
}

func (h *PrometheusHooks) OnRenderStart(context.Context, []string) {}

func (h *PrometheusHooks) OnRenderComplete(_ context.Context, _ []string, d time.Duration, err error) {
	h.RendersTotal.WithLabelValues(status(err)).Inc()
	h.RenderDuration.Observe(d.Seconds())
}

func (h *PrometheusHooks) OnCacheHit(_ context.Context, keyType string) {
	h.CacheRequestsTotal.WithLabelValues(keyType, "hit").Inc()
}

func (h *PrometheusHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.CacheRequestsTotal.WithLabelValues(keyType, "miss").Inc()
}

func (h *PrometheusHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.CacheBytesWritten.WithLabelValues(keyType).Add(float64(size))
}

func (h *PrometheusHooks) OnRequest(context.Context, string, string) {}

func (h *PrometheusHooks) OnResponse(_ context.Context, method, route string, code int, d time.Duration) {
	h.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	h.HTTPRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func (h *PrometheusHooks) OnError(_ context.Context, method, route string, _ error) {
	h.HTTPErrorsTotal.WithLabelValues(method, route).Inc()
}
