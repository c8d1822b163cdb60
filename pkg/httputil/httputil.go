package httputil

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/matzehuels/tilewire/pkg/cache"
	"github.com/matzehuels/tilewire/pkg/errors"
)

// MaxBodyBytes bounds request bodies read by DecodeJSON.
const MaxBodyBytes = 8 << 20

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

// WriteJSON writes v as JSON with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes err as an ErrorBody. Errors without a code are reported
// as internal errors and their text is not exposed.
func WriteError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	body := ErrorBody{Code: code, Message: errors.UserMessage(err)}
	if code == "" {
		body = ErrorBody{Code: errors.ErrCodeInternal, Message: "internal error"}
	}
	WriteJSON(w, errors.HTTPStatus(err), body)
}

// DecodeJSON reads a JSON body of at most MaxBodyBytes into v. Unknown
// fields are rejected.
func DecodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, MaxBodyBytes+1))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if err == io.EOF {
			return errors.New(errors.ErrCodeInvalidInput, "request body is empty")
		}
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body")
	}
	if dec.More() {
		return errors.New(errors.ErrCodeInvalidInput, "request body has trailing data")
	}
	return nil
}

// ETag returns a strong entity tag for data.
func ETag(data []byte) string {
	return `"` + cache.Hash(data)[:32] + `"`
}

// NotModified reports whether the request's If-None-Match matches etag.
func NotModified(r *http.Request, etag string) bool {
	for _, tag := range strings.Split(r.Header.Get("If-None-Match"), ",") {
		tag = strings.TrimSpace(tag)
		if tag == etag || tag == "*" {
			return true
		}
	}
	return false
}

// WriteArtifact sends rendered bytes. A matching If-None-Match is answered
// with 304 and no body.
func WriteArtifact(w http.ResponseWriter, r *http.Request, contentType string, data []byte) {
	etag := ETag(data)
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "private, max-age=0, must-revalidate")
	if NotModified(r, etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
