package httputil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/matzehuels/tilewire/pkg/errors"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   errors.Code
		wantMsg    string
	}{
		{"invalid", errors.New(errors.ErrCodeInvalidDiagram, "bad node"), 400, errors.ErrCodeInvalidDiagram, "bad node"},
		{"not found", errors.New(errors.ErrCodeBoardNotFound, "board %q not found", "x"), 404, errors.ErrCodeBoardNotFound, `board "x" not found`},
		{"wrapped", fmt.Errorf("route: %w", errors.New(errors.ErrCodeDuplicateNode, "dup")), 409, errors.ErrCodeDuplicateNode, "dup"},
		{"plain", fmt.Errorf("disk on fire"), 500, errors.ErrCodeInternal, "internal error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteError(rec, tt.err)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			var body ErrorBody
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if body.Code != tt.wantCode || body.Message != tt.wantMsg {
				t.Errorf("body = %+v, want {%s %s}", body, tt.wantCode, tt.wantMsg)
			}
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"valid", `{"name":"a"}`, false},
		{"empty", ``, true},
		{"malformed", `{"name":`, true},
		{"unknown field", `{"name":"a","x":1}`, true},
		{"trailing", `{"name":"a"} {"name":"b"}`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var p payload
			err := DecodeJSON(req, &p)
			if (err != nil) != tt.wantErr {
				t.Fatalf("DecodeJSON() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidInput)
			}
		})
	}
}

func TestWriteArtifact(t *testing.T) {
	data := []byte("<svg/>")
	etag := ETag(data)

	rec := httptest.NewRecorder()
	WriteArtifact(rec, httptest.NewRequest(http.MethodGet, "/", nil), "image/svg+xml", data)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := rec.Header().Get("ETag"); got != etag {
		t.Errorf("ETag = %s, want %s", got, etag)
	}
	if got := rec.Header().Get("Content-Type"); got != "image/svg+xml" {
		t.Errorf("Content-Type = %s, want image/svg+xml", got)
	}
	if rec.Body.String() != "<svg/>" {
		t.Errorf("body = %q", rec.Body.String())
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("If-None-Match", `"other", `+etag)
	rec = httptest.NewRecorder()
	WriteArtifact(rec, req, "image/svg+xml", data)
	if rec.Code != http.StatusNotModified {
		t.Errorf("status = %d, want 304", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("304 body has %d bytes", rec.Body.Len())
	}
}

func TestETagStable(t *testing.T) {
	a, b := ETag([]byte("x")), ETag([]byte("x"))
	if a != b {
		t.Errorf("ETag not stable: %s != %s", a, b)
	}
	if a == ETag([]byte("y")) {
		t.Error("different data produced the same ETag")
	}
}
