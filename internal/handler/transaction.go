package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/budgetwise/budget-service/internal/models"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
)

func parseID(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
}

func parseYearMonth(r *http.Request) (int, int, error) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		return 0, 0, err
	}
	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil {
		return 0, 0, err
	}
	return year, month, nil
}

// AddTransaction records a new transaction
func (h *Handler) AddTransaction(w http.ResponseWriter, r *http.Request) {
	email, ok := h.email(w, r)
	if !ok {
		return
	}

	var t models.Transaction
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	saved, err := h.svc.AddTransaction(r.Context(), email, &t)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, saved)
}

// ListTransactions returns all of the user's transactions
func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	email, ok := h.email(w, r)
	if !ok {
		return
	}

	transactions, err := h.svc.ListTransactions(r.Context(), email)
	if err != nil {
		h.respondError(w, err)
		return
	}
	if transactions == nil {
		transactions = []models.Transaction{}
	}
	h.respondJSON(w, http.StatusOK, transactions)
}

// UpdateTransaction replaces a transaction's fields
func (h *Handler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	email, ok := h.email(w, r)
	if !ok {
		return
	}
	id, err := parseID(r)
	if err != nil {
		http.Error(w, "Invalid transaction id", http.StatusBadRequest)
		return
	}

	var t models.Transaction
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	saved, err := h.svc.UpdateTransaction(r.Context(), email, id, &t)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, saved)
}

// DeleteTransaction removes a transaction
func (h *Handler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	email, ok := h.email(w, r)
	if !ok {
		return
	}
	id, err := parseID(r)
	if err != nil {
		http.Error(w, "Invalid transaction id", http.StatusBadRequest)
		return
	}

	if err := h.svc.DeleteTransaction(r.Context(), email, id); err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]string{"message": "Transaction deleted successfully"})
}

// MonthlyView returns the month's summary and transactions
func (h *Handler) MonthlyView(w http.ResponseWriter, r *http.Request) {
	email, ok := h.email(w, r)
	if !ok {
		return
	}
	year, month, err := parseYearMonth(r)
	if err != nil {
		http.Error(w, "Invalid year or month", http.StatusBadRequest)
		return
	}

	view, err := h.svc.MonthlyView(r.Context(), email, year, month)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, view)
}

// SetStartingBalance declares the month's opening balance
func (h *Handler) SetStartingBalance(w http.ResponseWriter, r *http.Request) {
	email, ok := h.email(w, r)
	if !ok {
		return
	}
	year, month, err := parseYearMonth(r)
	if err != nil {
		http.Error(w, "Invalid year or month", http.StatusBadRequest)
		return
	}
	balance, err := decimal.NewFromString(r.URL.Query().Get("balance"))
	if err != nil {
		http.Error(w, "Invalid balance", http.StatusBadRequest)
		return
	}

	summary, err := h.svc.SetStartingBalance(r.Context(), email, year, month, balance)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, summary)
}

// SetBudgets overwrites the month's category budget caps
func (h *Handler) SetBudgets(w http.ResponseWriter, r *http.Request) {
	email, ok := h.email(w, r)
	if !ok {
		return
	}
	year, month, err := parseYearMonth(r)
	if err != nil {
		http.Error(w, "Invalid year or month", http.StatusBadRequest)
		return
	}

	var budgets map[string]decimal.Decimal
	if err := json.NewDecoder(r.Body).Decode(&budgets); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	summary, err := h.svc.SetBudgets(r.Context(), email, year, month, budgets)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, summary)
}

// SpendingTrends returns per-month expense totals for the current year
func (h *Handler) SpendingTrends(w http.ResponseWriter, r *http.Request) {
	email, ok := h.email(w, r)
	if !ok {
		return
	}

	trend, err := h.svc.SpendingTrend(r.Context(), email)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, trend)
}
