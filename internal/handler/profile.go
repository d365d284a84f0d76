package handler

import (
	"encoding/json"
	"net/http"

	"github.com/budgetwise/budget-service/internal/models"
)

// AddProfile creates or replaces the user's financial profile
func (h *Handler) AddProfile(w http.ResponseWriter, r *http.Request) {
	email, ok := h.email(w, r)
	if !ok {
		return
	}

	var profile models.Profile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	saved, err := h.svc.AddProfile(r.Context(), email, &profile)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, saved)
}

// GetProfile returns the user's financial profile
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	email, ok := h.email(w, r)
	if !ok {
		return
	}

	profile, err := h.svc.GetProfile(r.Context(), email)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, profile)
}

// CheckProfile reports whether the user has declared a profile
func (h *Handler) CheckProfile(w http.ResponseWriter, r *http.Request) {
	email, ok := h.email(w, r)
	if !ok {
		return
	}

	exists, err := h.svc.HasProfile(r.Context(), email)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]bool{"exists": exists})
}
