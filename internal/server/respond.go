// ABOUTME: JSON response envelope and error classification for the HTTP API
// ABOUTME: Success bodies are {"data": ...}, failures {"error": "..."} with a mapped status

package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/2389/workbench/internal/fault"
)

type dataEnvelope struct {
	Data any `json:"data"`
}

type errorEnvelope struct {
	Error string `json:"error"`
}

// writeData writes a success envelope.
func writeData(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(dataEnvelope{Data: data}); err != nil {
		slog.Default().Error("encoding response failed", "error", err)
	}
}

// writeError classifies err and writes an error envelope. Internal faults
// are logged with their cause and surface only a generic message.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	kind := fault.KindOf(err)
	if kind == fault.KindInternal {
		slog.Default().Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", RequestIDFromContext(r.Context()),
			"error", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusFromKind(kind))
	if encErr := json.NewEncoder(w).Encode(errorEnvelope{Error: fault.MessageOf(err)}); encErr != nil {
		slog.Default().Error("encoding error response failed", "error", encErr)
	}
}

// statusFromKind maps fault kinds to HTTP status codes.
func statusFromKind(kind fault.Kind) int {
	switch kind {
	case fault.KindUnauthenticated:
		return http.StatusUnauthorized
	case fault.KindForbidden:
		return http.StatusForbidden
	case fault.KindNotFound:
		return http.StatusNotFound
	case fault.KindConflict:
		return http.StatusConflict
	case fault.KindInvalidOperation, fault.KindValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// decodeJSON decodes a request body into dst, rejecting unknown fields.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fault.Validation("invalid request body")
	}
	return nil
}
