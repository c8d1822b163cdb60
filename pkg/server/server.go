// Package server exposes routing and rendering over HTTP.
//
// Routes:
//
//	POST   /v1/route                       diagram JSON in, routed scene out
//	POST   /v1/render?format=svg           diagram JSON in, artifact out
//	POST   /v1/hit                         {diagram, x, y} in, hit connection out
//	GET    /v1/boards                      stored board ids
//	GET    /v1/boards/{id}                 stored diagram
//	PUT    /v1/boards/{id}                 store a diagram
//	DELETE /v1/boards/{id}                 remove a diagram
//	GET    /v1/boards/{id}/render.{format} render a stored diagram
//	GET    /healthz                        liveness
//	GET    /metrics                        Prometheus metrics
//
// Routing options are read from the query string of every route and render
// request: zoom, margin, scale, width, height, selected, highlighted,
// background, auto_layout and refresh.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/tilewire/pkg/pipeline"
	"github.com/matzehuels/tilewire/pkg/store"
)

const (
	// DefaultAddr is the listen address used when Config.Addr is empty.
	DefaultAddr = ":8080"

	// RequestTimeout bounds the work done for a single request.
	RequestTimeout = 60 * time.Second

	shutdownTimeout = 30 * time.Second
)

// Config configures a Server.
type Config struct {
	Addr   string
	Runner *pipeline.Runner
	// Store backs the /v1/boards routes. Without one they answer 501.
	Store store.Store
	// Defaults are the pipeline options every request starts from.
	Defaults pipeline.Options
	// Gatherer is served at /metrics. Defaults to prometheus.DefaultGatherer.
	Gatherer prometheus.Gatherer
	Logger   *log.Logger
}

// Server is the HTTP API.
type Server struct {
	cfg    Config
	router chi.Router
}

// New builds the router.
func New(cfg Config) *Server {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Runner == nil {
		cfg.Runner = pipeline.NewRunner(nil, nil, cfg.Logger)
	}
	if cfg.Gatherer == nil {
		cfg.Gatherer = prometheus.DefaultGatherer
	}
	s := &Server{cfg: cfg}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.instrument)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("ok\n"))
	})
	r.Handle("/metrics", promhttp.HandlerFor(s.cfg.Gatherer, promhttp.HandlerOpts{}))

	r.Route("/v1", func(r chi.Router) {
		r.Use(middleware.Timeout(RequestTimeout))

		r.Post("/route", s.handleRoute)
		r.Post("/render", s.handleRender)
		r.Post("/hit", s.handleHit)

		r.Route("/boards", func(r chi.Router) {
			r.Get("/", s.handleListBoards)
			r.Get("/{id}", s.handleGetBoard)
			r.Put("/{id}", s.handlePutBoard)
			r.Delete("/{id}", s.handleDeleteBoard)
			r.Get("/{id}/render.{format}", s.handleRenderBoard)
		})
	})
	return r
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:           s.cfg.Addr,
		Handler:        s.router,
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   RequestTimeout + 10*time.Second,
		IdleTimeout:    120 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	errCh := make(chan error, 1)
	go func() {
		s.cfg.Logger.Info("listening", "addr", s.cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.cfg.Logger.Info("shutting down", "timeout", shutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
