package api

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/eduforge/eduforge/internal/fault"
)

// envelope is the uniform response wrapper. Success responses set Data and
// failures set Error; a failure that still produced a usable payload sets
// both, so the client keeps the work already done.
type envelope struct {
	Data  any        `json:"data,omitempty"`
	Error *errorBody `json:"error,omitempty"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeJSON writes a JSON response with the given status code.
// Uses buffer-first strategy to ensure headers are only sent after successful
// encoding. This allows returning a proper 500 error if encoding fails.
func writeJSON(w http.ResponseWriter, status int, data any) {
	buf := new(bytes.Buffer)
	if err := json.NewEncoder(buf).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("X-Content-Type-Options", "nosniff") // Prevent MIME type sniffing attacks
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		// Client disconnects are common and expected
		slog.Debug("failed to write response body", "error", err)
	}
}

// writeData wraps a payload in the success envelope.
func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, envelope{Data: data})
}

// writeError wraps a code and message in the error envelope.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, envelope{Error: &errorBody{Code: code, Message: message}})
}

// writeFault maps a classified error onto the wire: the kind becomes the
// error code and picks the status.
func writeFault(w http.ResponseWriter, err error) {
	kind := fault.KindOf(err)
	writeError(w, statusForKind(kind), string(kind), err.Error())
}

// writeFaultData reports a classified error while still delivering a payload
// the client can act on without repeating the work that succeeded.
func writeFaultData(w http.ResponseWriter, err error, data any) {
	kind := fault.KindOf(err)
	writeJSON(w, statusForKind(kind), envelope{
		Data:  data,
		Error: &errorBody{Code: string(kind), Message: err.Error()},
	})
}

// statusForKind maps error classifications to HTTP statuses.
// Upstream failures are gateway errors; request problems are client errors.
func statusForKind(kind fault.Kind) int {
	switch kind {
	case fault.KindUnauthenticated:
		return http.StatusUnauthorized
	case fault.KindArtifactGeneration:
		return http.StatusUnprocessableEntity
	case fault.KindTimeout:
		return http.StatusGatewayTimeout
	case fault.KindTransport, fault.KindSectionGeneration, fault.KindPersistence:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
