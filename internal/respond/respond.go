// Package respond writes JSON bodies and maps application errors to HTTP statuses.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/newsroom/newsroom/internal/service"
)

// ErrorBody is the shape of every 4xx and 5xx response.
type ErrorBody struct {
	Message string `json:"message"`
	Details string `json:"details"`
}

// JSON writes data with the given status code.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(data)
}

// Status returns the HTTP status for an error kind.
func Status(kind service.Kind) int {
	switch kind {
	case service.KindDomain:
		return http.StatusBadRequest
	case service.KindAuth:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// Error writes err as an ErrorBody. Server-side failures are logged with
// their full cause; client errors are logged at debug level only. Auth
// failures never carry their cause in the body.
func Error(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	kind := service.KindOf(err)
	status := Status(kind)

	body := ErrorBody{Message: "Internal error", Details: err.Error()}
	var appErr *service.Error
	if errors.As(err, &appErr) {
		body.Message = appErr.Message
		// Every auth failure reads the same so the body cannot tell a
		// malformed header from a wrong password.
		if appErr.Kind == service.KindAuth || appErr.Err == nil {
			body.Details = appErr.Message
		} else {
			body.Details = appErr.Err.Error()
		}
	}

	if logger != nil {
		attrs := []any{
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", status),
			slog.String("kind", kind.String()),
			slog.String("error", err.Error()),
		}
		if status >= http.StatusInternalServerError {
			logger.ErrorContext(r.Context(), "request failed", attrs...)
		} else {
			logger.DebugContext(r.Context(), "request rejected", attrs...)
		}
	}

	JSON(w, status, body)
}

// Message writes an ErrorBody with a fixed status, for failures raised
// outside the service layer such as routing misses.
func Message(w http.ResponseWriter, status int, message, details string) {
	JSON(w, status, ErrorBody{Message: message, Details: details})
}
