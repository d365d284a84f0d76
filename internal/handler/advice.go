package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/budgetwise/budget-service/internal/models"
	"github.com/budgetwise/budget-service/internal/service"
)

type chatRequest struct {
	Prompt string `json:"prompt"`
}

// Chat forwards the user's question plus their current-month financial
// context to the advisory model
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	email, ok := h.email(w, r)
	if !ok {
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Prompt) == "" {
		http.Error(w, "Prompt is required", http.StatusBadRequest)
		return
	}

	now := time.Now()
	view, err := h.svc.MonthlyView(r.Context(), email, now.Year(), int(now.Month()))
	if err != nil {
		h.respondError(w, err)
		return
	}

	// The advisory works without a declared profile.
	var profile *models.Profile
	if p, err := h.svc.GetProfile(r.Context(), email); err == nil {
		profile = p
	} else if !errors.Is(err, service.ErrProfileNotFound) {
		h.respondError(w, err)
		return
	}

	advice, err := h.advisor.GetFinancialAdvice(r.Context(), req.Prompt, view, profile)
	if err != nil {
		h.log.Errorf("Advisory request failed: %v", err)
		http.Error(w, "Advisory service unavailable", http.StatusBadGateway)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]string{"response": advice})
}
