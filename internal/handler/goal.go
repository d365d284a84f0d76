package handler

import (
	"encoding/json"
	"net/http"

	"github.com/budgetwise/budget-service/internal/models"
)

// ListSavingGoals returns all of the user's saving goals
func (h *Handler) ListSavingGoals(w http.ResponseWriter, r *http.Request) {
	email, ok := h.email(w, r)
	if !ok {
		return
	}

	goals, err := h.svc.ListSavingGoals(r.Context(), email)
	if err != nil {
		h.respondError(w, err)
		return
	}
	if goals == nil {
		goals = []models.SavingGoal{}
	}
	h.respondJSON(w, http.StatusOK, goals)
}

// CreateSavingGoal records a new saving goal
func (h *Handler) CreateSavingGoal(w http.ResponseWriter, r *http.Request) {
	email, ok := h.email(w, r)
	if !ok {
		return
	}

	var goal models.SavingGoal
	if err := json.NewDecoder(r.Body).Decode(&goal); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	saved, err := h.svc.CreateSavingGoal(r.Context(), email, &goal)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, saved)
}

// UpdateSavingGoal replaces a saving goal's fields
func (h *Handler) UpdateSavingGoal(w http.ResponseWriter, r *http.Request) {
	email, ok := h.email(w, r)
	if !ok {
		return
	}
	id, err := parseID(r)
	if err != nil {
		http.Error(w, "Invalid saving goal id", http.StatusBadRequest)
		return
	}

	var goal models.SavingGoal
	if err := json.NewDecoder(r.Body).Decode(&goal); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	saved, err := h.svc.UpdateSavingGoal(r.Context(), email, id, &goal)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, saved)
}

// DeleteSavingGoal removes a saving goal
func (h *Handler) DeleteSavingGoal(w http.ResponseWriter, r *http.Request) {
	email, ok := h.email(w, r)
	if !ok {
		return
	}
	id, err := parseID(r)
	if err != nil {
		http.Error(w, "Invalid saving goal id", http.StatusBadRequest)
		return
	}

	if err := h.svc.DeleteSavingGoal(r.Context(), email, id); err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]string{"message": "Saving goal deleted successfully"})
}
