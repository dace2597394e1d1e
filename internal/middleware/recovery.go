package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/newsroom/newsroom/internal/respond"
)

// Recoverer is a middleware that recovers from panics.
// It logs the panic with its stack and answers with a JSON 500.
func Recoverer(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rvr := recover()
				if rvr == nil {
					return
				}
				if rvr == http.ErrAbortHandler {
					panic(rvr)
				}

				logger.Error("panic recovered",
					slog.String("request_id", RequestIDFromContext(r.Context())),
					slog.String("path", r.URL.Path),
					slog.Any("panic", rvr),
					slog.String("stack", string(debug.Stack())),
				)

				respond.Message(w, http.StatusInternalServerError, "Internal error", "unexpected server failure")
			}()

			next.ServeHTTP(w, r)
		})
	}
}
