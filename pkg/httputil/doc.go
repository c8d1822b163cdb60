// Package httputil provides the response helpers shared by the HTTP API.
//
// # Overview
//
//   - [WriteJSON]: encode a value with a status code
//   - [WriteError]: map a structured error to its status and a JSON body
//   - [DecodeJSON]: read a size-limited JSON request body
//   - [WriteArtifact]: send rendered bytes with an ETag, answering
//     conditional requests with 304
//
// Error bodies have the form:
//
//	{"code": "INVALID_DIAGRAM", "message": "node \"a\" appears more than once"}
//
// The status comes from [errors.HTTPStatus], so handlers never pick status
// codes for domain errors themselves.
package httputil
