package handler

import (
	"log/slog"
	"net/http"

	"github.com/newsroom/newsroom/internal/respond"
	"github.com/newsroom/newsroom/internal/service"
)

// SubscriptionHandler serves the public onboarding endpoints.
type SubscriptionHandler struct {
	svc    *service.SubscriptionService
	logger *slog.Logger
}

// NewSubscriptionHandler creates a new SubscriptionHandler.
func NewSubscriptionHandler(svc *service.SubscriptionService, logger *slog.Logger) *SubscriptionHandler {
	return &SubscriptionHandler{svc: svc, logger: logger}
}

// Subscribe handles POST /subscriptions with a urlencoded form.
func (h *SubscriptionHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respond.Error(w, r, h.logger, service.DomainError("Invalid form body", err))
		return
	}

	for _, field := range []string{"name", "email"} {
		if _, ok := r.PostForm[field]; !ok {
			respond.Error(w, r, h.logger, service.DomainError("missing field `"+field+"`", nil))
			return
		}
	}

	input := service.SubscribeInput{
		Name:  r.PostForm.Get("name"),
		Email: r.PostForm.Get("email"),
	}
	if _, err := h.svc.Subscribe(r.Context(), input); err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// Confirm handles GET /subscriptions/confirm?token=.
func (h *SubscriptionHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	if _, ok := query["token"]; !ok {
		respond.Error(w, r, h.logger, service.DomainError("missing field `token`", nil))
		return
	}

	if _, err := h.svc.Confirm(r.Context(), query.Get("token")); err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}
