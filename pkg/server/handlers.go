package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/tilewire/pkg/cache"
	"github.com/matzehuels/tilewire/pkg/core/connection"
	"github.com/matzehuels/tilewire/pkg/core/geom"
	"github.com/matzehuels/tilewire/pkg/errors"
	"github.com/matzehuels/tilewire/pkg/graph"
	"github.com/matzehuels/tilewire/pkg/httputil"
	"github.com/matzehuels/tilewire/pkg/pipeline"
	"github.com/matzehuels/tilewire/pkg/render"
	"github.com/matzehuels/tilewire/pkg/store"
)

// RouteResponse is the answer to POST /v1/route.
type RouteResponse struct {
	Hash    string       `json:"hash"`
	Drawn   int          `json:"drawn"`
	Skipped int          `json:"skipped"`
	Scene   render.Scene `json:"scene"`
}

// HitRequest is the body of POST /v1/hit.
type HitRequest struct {
	Diagram graph.Diagram `json:"diagram"`
	X       float64       `json:"x"`
	Y       float64       `json:"y"`
}

// HitResponse is the answer to POST /v1/hit.
type HitResponse struct {
	Hit    bool               `json:"hit"`
	Part   string             `json:"part,omitempty"`
	Record *connection.Record `json:"record,omitempty"`
}

// =============================================================================
// Stateless routes
// =============================================================================

func (s *Server) handleRoute(w http.ResponseWriter, r *http.Request) {
	d, err := readDiagram(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	opts, err := s.options(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	laid, err := s.cfg.Runner.Layout(r.Context(), d, opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	scene, err := s.cfg.Runner.Route(r.Context(), laid, opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	data, err := graph.MarshalDiagram(laid)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, RouteResponse{
		Hash:    cache.Hash(data),
		Drawn:   len(scene.Connections),
		Skipped: len(laid.Connections) - len(scene.Connections),
		Scene:   scene,
	})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	d, err := readDiagram(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	format := r.URL.Query().Get("format")
	if format == "" {
		format = render.FormatSVG
	}
	s.renderDiagram(w, r, d, format)
}

func (s *Server) handleHit(w http.ResponseWriter, r *http.Request) {
	var req HitRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := req.Diagram.Validate(); err != nil {
		s.fail(w, r, err)
		return
	}
	opts, err := s.options(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	laid, err := s.cfg.Runner.Layout(r.Context(), req.Diagram, opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	board, err := pipeline.NewBoard(r.Context(), laid, opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	prim, ok := board.Manager.Pick(geom.Pt(req.X, req.Y))
	if !ok {
		httputil.WriteJSON(w, http.StatusOK, HitResponse{})
		return
	}
	rec := prim.Connection.ToRecord()
	httputil.WriteJSON(w, http.StatusOK, HitResponse{Hit: true, Part: prim.Kind.String(), Record: &rec})
}

// =============================================================================
// Boards
// =============================================================================

func (s *Server) boards() (store.Store, error) {
	if s.cfg.Store == nil {
		return nil, errors.New(errors.ErrCodeUnsupported, "no board store configured")
	}
	return s.cfg.Store, nil
}

func (s *Server) handleListBoards(w http.ResponseWriter, r *http.Request) {
	st, err := s.boards()
	if err != nil {
		s.fail(w, r, err)
		return
	}
	ids, err := st.List(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	httputil.WriteJSON(w, http.StatusOK, map[string][]string{"boards": ids})
}

func (s *Server) handleGetBoard(w http.ResponseWriter, r *http.Request) {
	st, err := s.boards()
	if err != nil {
		s.fail(w, r, err)
		return
	}
	d, err := st.Load(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := graph.WriteDiagram(d, w, graph.FormatJSON); err != nil {
		s.cfg.Logger.Warn("write board", "err", err)
	}
}

func (s *Server) handlePutBoard(w http.ResponseWriter, r *http.Request) {
	st, err := s.boards()
	if err != nil {
		s.fail(w, r, err)
		return
	}
	d, err := readDiagram(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if err := st.Save(r.Context(), chi.URLParam(r, "id"), d); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteBoard(w http.ResponseWriter, r *http.Request) {
	st, err := s.boards()
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if err := st.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRenderBoard(w http.ResponseWriter, r *http.Request) {
	st, err := s.boards()
	if err != nil {
		s.fail(w, r, err)
		return
	}
	d, err := st.Load(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.renderDiagram(w, r, d, chi.URLParam(r, "format"))
}

// =============================================================================
// Helpers
// =============================================================================

func (s *Server) renderDiagram(w http.ResponseWriter, r *http.Request, d graph.Diagram, format string) {
	if err := pipeline.ValidateFormat(format); err != nil {
		s.fail(w, r, err)
		return
	}
	opts, err := s.options(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	opts.Formats = []string{format}

	res, err := s.cfg.Runner.Execute(r.Context(), d, opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if res.CacheInfo.RenderHit {
		w.Header().Set("X-Cache", "hit")
	} else {
		w.Header().Set("X-Cache", "miss")
	}
	httputil.WriteArtifact(w, r, render.ContentType(format), res.Artifacts[format])
}

func readDiagram(w http.ResponseWriter, r *http.Request) (graph.Diagram, error) {
	body := http.MaxBytesReader(w, r.Body, httputil.MaxBodyBytes)
	return graph.ReadDiagram(body, graph.FormatJSON)
}

// options starts from the configured defaults and applies query overrides.
func (s *Server) options(r *http.Request) (pipeline.Options, error) {
	opts := s.cfg.Defaults.Clone()
	opts.Logger = s.cfg.Logger
	q := r.URL.Query()

	floats := map[string]*float64{
		"zoom":      &opts.Zoom,
		"margin":    &opts.Margin,
		"scale":     &opts.Scale,
		"width":     &opts.Width,
		"height":    &opts.Height,
		"thickness": &opts.Thickness,
	}
	for name, dst := range floats {
		v := q.Get(name)
		if v == "" {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return pipeline.Options{}, errors.New(errors.ErrCodeInvalidInput, "%s: %q is not a number", name, v)
		}
		*dst = f
	}

	bools := map[string]*bool{
		"auto_layout": &opts.AutoLayout,
		"refresh":     &opts.Refresh,
	}
	for name, dst := range bools {
		v := q.Get(name)
		if v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return pipeline.Options{}, errors.New(errors.ErrCodeInvalidInput, "%s: %q is not a boolean", name, v)
		}
		*dst = b
	}

	if v := q.Get("selected"); v != "" {
		opts.Selected = splitList(v)
	}
	if v := q.Get("highlighted"); v != "" {
		opts.Highlighted = splitList(v)
	}
	if v := q.Get("background"); v != "" {
		opts.Background = v
	}

	if err := opts.ValidateAndSetDefaults(); err != nil {
		return pipeline.Options{}, err
	}
	return opts, nil
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
