package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/budgetwise/budget-service/internal/integrations/advisor"
	"github.com/budgetwise/budget-service/internal/middleware"
	"github.com/budgetwise/budget-service/internal/service"
	"github.com/sirupsen/logrus"
)

// Handler exposes the service over HTTP
type Handler struct {
	svc     *service.Service
	advisor *advisor.Client
	log     *logrus.Logger
}

// NewHandler initializes a new handler
func NewHandler(svc *service.Service, advisorClient *advisor.Client, log *logrus.Logger) *Handler {
	return &Handler{svc: svc, advisor: advisorClient, log: log}
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		json.NewEncoder(w).Encode(v)
	}
}

// respondError maps the service error taxonomy to HTTP status codes.
// Business-rule rejections keep their message; infrastructure failures
// are logged and surfaced as a generic server error.
func (h *Handler) respondError(w http.ResponseWriter, err error) {
	var validationErr *service.ValidationError
	var balanceErr *service.InsufficientBalanceError

	switch {
	case errors.As(err, &validationErr):
		http.Error(w, validationErr.Error(), http.StatusBadRequest)
	case errors.As(err, &balanceErr):
		http.Error(w, balanceErr.Error(), http.StatusBadRequest)
	case errors.Is(err, service.ErrTransactionNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrProfileNotFound),
		errors.Is(err, service.ErrGoalNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, service.ErrInvalidCredentials):
		http.Error(w, err.Error(), http.StatusUnauthorized)
	default:
		h.log.Errorf("Request failed: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// email returns the authenticated principal bound by the auth middleware
func (h *Handler) email(w http.ResponseWriter, r *http.Request) (string, bool) {
	email, ok := middleware.EmailFromContext(r.Context())
	if !ok {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return "", false
	}
	return email, true
}
