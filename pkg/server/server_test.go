package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/tilewire/pkg/errors"
	"github.com/matzehuels/tilewire/pkg/httputil"
	"github.com/matzehuels/tilewire/pkg/observability"
	"github.com/matzehuels/tilewire/pkg/store"
)

const diagramJSON = `{
  "nodes": [
    {"id": "a", "x": 0, "y": 0, "width": 100, "height": 100},
    {"id": "b", "x": 300, "y": 300, "width": 100, "height": 100}
  ],
  "connections": [
    {"id": "ab", "from": "a", "to": "b", "from_side": "right", "to_side": "left", "routing": "routed"},
    {"id": "ax", "from": "a", "to": "x", "from_side": "top", "to_side": "top"}
  ]
}`

func newTestServer(t *testing.T, withStore bool) *httptest.Server {
	t.Helper()
	cfg := Config{
		Logger:   log.NewWithOptions(io.Discard, log.Options{}),
		Gatherer: prometheus.NewRegistry(),
	}
	if withStore {
		st, err := store.NewFileStore(t.TempDir())
		require.NoError(t, err)
		cfg.Store = st
	}
	ts := httptest.NewServer(New(cfg).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func do(t *testing.T, method, url, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeError(t *testing.T, resp *http.Response) httputil.ErrorBody {
	t.Helper()
	var body httputil.ErrorBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t, false)
	resp := do(t, http.MethodGet, ts.URL+"/healthz", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	observability.SetHTTPHooks(observability.NewPrometheusHooks(reg))
	t.Cleanup(observability.Reset)

	ts := httptest.NewServer(New(Config{
		Logger:   log.NewWithOptions(io.Discard, log.Options{}),
		Gatherer: reg,
	}).Handler())
	defer ts.Close()

	do(t, http.MethodGet, ts.URL+"/healthz", "")
	resp := do(t, http.MethodGet, ts.URL+"/metrics", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `tilewire_http_requests_total{method="GET",route="/healthz",status="200"} 1`)
}

func TestRoute(t *testing.T) {
	ts := newTestServer(t, false)
	resp := do(t, http.MethodPost, ts.URL+"/v1/route?selected=ab", diagramJSON)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out RouteResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, 1, out.Drawn)
	assert.Equal(t, 1, out.Skipped)
	assert.Len(t, out.Hash, 64)
	require.Len(t, out.Scene.Connections, 1)
	assert.True(t, out.Scene.Connections[0].Selected)
	assert.NotEmpty(t, out.Scene.Connections[0].Waypoints)
}

func TestRouteErrors(t *testing.T) {
	ts := newTestServer(t, false)
	tests := []struct {
		name   string
		url    string
		body   string
		status int
		code   errors.Code
	}{
		{"malformed", "/v1/route", `{"nodes": [`, 400, errors.ErrCodeInvalidDiagram},
		{"duplicate node", "/v1/route", `{"nodes": [{"id": "a"}, {"id": "a"}]}`, 409, errors.ErrCodeDuplicateNode},
		{"bad zoom", "/v1/route?zoom=big", diagramJSON, 400, errors.ErrCodeInvalidInput},
		{"negative zoom", "/v1/route?zoom=-1", diagramJSON, 400, errors.ErrCodeInvalidInput},
		{"bad bool", "/v1/route?auto_layout=maybe", diagramJSON, 400, errors.ErrCodeInvalidInput},
		{"bad format", "/v1/render?format=gif", diagramJSON, 400, errors.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := do(t, http.MethodPost, ts.URL+tt.url, tt.body)
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Equal(t, tt.code, decodeError(t, resp).Code)
		})
	}
}

func TestRender(t *testing.T) {
	ts := newTestServer(t, false)
	tests := []struct {
		format      string
		contentType string
		prefix      string
	}{
		{"", "image/svg+xml", "<svg"},
		{"svg", "image/svg+xml", "<svg"},
		{"png", "image/png", "\x89PNG"},
		{"pdf", "application/pdf", "%PDF"},
		{"json", "application/json", "{"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			resp := do(t, http.MethodPost, ts.URL+"/v1/render?format="+tt.format, diagramJSON)
			require.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, tt.contentType, resp.Header.Get("Content-Type"))
			assert.NotEmpty(t, resp.Header.Get("ETag"))
			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(string(body), tt.prefix), "body starts with %q", body[:min(len(body), 8)])
		})
	}
}

func TestRenderNotModified(t *testing.T) {
	ts := newTestServer(t, false)
	first := do(t, http.MethodPost, ts.URL+"/v1/render", diagramJSON)
	require.Equal(t, http.StatusOK, first.StatusCode)

	req, err := http.NewRequest(http.MethodPost, ts.URL+"/v1/render", strings.NewReader(diagramJSON))
	require.NoError(t, err)
	req.Header.Set("If-None-Match", first.Header.Get("ETag"))
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotModified, resp.StatusCode)
}

func TestHit(t *testing.T) {
	ts := newTestServer(t, false)
	body := `{"diagram": ` + diagramJSON + `, "x": 200, "y": 200}`
	resp := do(t, http.MethodPost, ts.URL+"/v1/hit", body)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out HitResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.True(t, out.Hit)
	assert.Equal(t, "line", out.Part)
	require.NotNil(t, out.Record)
	assert.Equal(t, "ab", out.Record.ID)

	miss := do(t, http.MethodPost, ts.URL+"/v1/hit", `{"diagram": `+diagramJSON+`, "x": 900, "y": 900}`)
	require.Equal(t, http.StatusOK, miss.StatusCode)
	out = HitResponse{}
	require.NoError(t, json.NewDecoder(miss.Body).Decode(&out))
	assert.False(t, out.Hit)
	assert.Nil(t, out.Record)
}

func TestBoards(t *testing.T) {
	ts := newTestServer(t, true)
	base := ts.URL + "/v1/boards"

	resp := do(t, http.MethodGet, base+"/main", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, errors.ErrCodeBoardNotFound, decodeError(t, resp).Code)

	resp = do(t, http.MethodPut, base+"/main", diagramJSON)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = do(t, http.MethodGet, base+"/", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list map[string][]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	assert.Equal(t, []string{"main"}, list["boards"])

	resp = do(t, http.MethodGet, base+"/main", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"id": "ab"`)

	resp = do(t, http.MethodGet, base+"/main/render.svg?highlighted=ab", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	svg, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(svg), "highlighted")

	resp = do(t, http.MethodGet, base+"/main/render.gif", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, http.MethodDelete, base+"/main", "")
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp = do(t, http.MethodGet, base+"/main/render.svg", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestBoardsWithoutStore(t *testing.T) {
	ts := newTestServer(t, false)
	resp := do(t, http.MethodGet, ts.URL+"/v1/boards/main", "")
	assert.Equal(t, http.StatusNotImplemented, resp.StatusCode)
	assert.Equal(t, errors.ErrCodeUnsupported, decodeError(t, resp).Code)
}

func TestBoardInvalidID(t *testing.T) {
	ts := newTestServer(t, true)
	resp := do(t, http.MethodPut, ts.URL+"/v1/boards/bad%20id", diagramJSON)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
