package respond

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/newsroom/newsroom/internal/service"
)

func TestError_StatusMapping(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cause := errors.New("underlying")

	tests := []struct {
		name    string
		err     error
		status  int
		message string
		details string
	}{
		{"domain", service.DomainError(service.MsgTokenNotFound, nil), http.StatusBadRequest, "Token wasn't found", "Token wasn't found"},
		{"auth", service.AuthError(cause), http.StatusUnauthorized, service.MsgAuthFailed, service.MsgAuthFailed},
		{"repository", &service.Error{Kind: service.KindRepository, Message: service.MsgDatabase, Err: cause}, http.StatusInternalServerError, service.MsgDatabase, "underlying"},
		{"internal logic", service.InternalLogicError(service.MsgNewsletterSend, cause), http.StatusInternalServerError, service.MsgNewsletterSend, "underlying"},
		{"unclassified", cause, http.StatusInternalServerError, "Internal error", "underlying"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/x", nil)
			rec := httptest.NewRecorder()

			Error(rec, req, logger, tt.err)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body ErrorBody
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, tt.message, body.Message)
			assert.Equal(t, tt.details, body.Details)
		})
	}
}

func TestJSON_NilBody(t *testing.T) {
	rec := httptest.NewRecorder()
	JSON(rec, http.StatusOK, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
}
