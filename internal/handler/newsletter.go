package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/newsroom/newsroom/internal/auth"
	"github.com/newsroom/newsroom/internal/handler/dto"
	"github.com/newsroom/newsroom/internal/respond"
	"github.com/newsroom/newsroom/internal/service"
)

// NewsletterHandler serves the publisher endpoint.
type NewsletterHandler struct {
	svc    *service.NewsletterService
	logger *slog.Logger
}

// NewNewsletterHandler creates a new NewsletterHandler.
func NewNewsletterHandler(svc *service.NewsletterService, logger *slog.Logger) *NewsletterHandler {
	return &NewsletterHandler{svc: svc, logger: logger}
}

// Publish handles POST /newsletter. Callers must already be authenticated.
func (h *NewsletterHandler) Publish(w http.ResponseWriter, r *http.Request) {
	var req dto.PublishNewsletterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, r, h.logger, service.DomainError("Invalid request body", err))
		return
	}

	issue, err := req.ToModel()
	if err != nil {
		respond.Error(w, r, h.logger, service.DomainError(err.Error(), err))
		return
	}

	if err := h.svc.Publish(r.Context(), issue); err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}

	if p := auth.PublisherFromContext(r.Context()); p != nil {
		h.logger.InfoContext(r.Context(), "newsletter_published",
			"publisher", p.Username,
			"title", issue.Title,
		)
	}
	w.WriteHeader(http.StatusOK)
}
