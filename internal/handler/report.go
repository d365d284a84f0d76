package handler

import (
	"fmt"
	"net/http"

	"github.com/budgetwise/budget-service/internal/report"
)

// monthlyReport builds the report projection for the requested month
func (h *Handler) monthlyReport(w http.ResponseWriter, r *http.Request) (*report.MonthlyReport, bool) {
	email, ok := h.email(w, r)
	if !ok {
		return nil, false
	}
	year, month, err := parseYearMonth(r)
	if err != nil {
		http.Error(w, "Invalid year or month", http.StatusBadRequest)
		return nil, false
	}

	user, err := h.svc.UserDetails(r.Context(), email)
	if err != nil {
		h.respondError(w, err)
		return nil, false
	}
	view, err := h.svc.MonthlyView(r.Context(), email, year, month)
	if err != nil {
		h.respondError(w, err)
		return nil, false
	}
	return report.Build(user.Username, view), true
}

// ReportPDF streams the monthly report as a PDF document
func (h *Handler) ReportPDF(w http.ResponseWriter, r *http.Request) {
	rep, ok := h.monthlyReport(w, r)
	if !ok {
		return
	}

	pdf, err := report.RenderPDF(rep)
	if err != nil {
		h.respondError(w, err)
		return
	}

	filename := fmt.Sprintf("BudgetWise_Report_%d-%02d.pdf", rep.Year, rep.Month)
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(pdf)))
	w.Write(pdf)
}

// ReportXML streams the monthly report as an XML statement
func (h *Handler) ReportXML(w http.ResponseWriter, r *http.Request) {
	rep, ok := h.monthlyReport(w, r)
	if !ok {
		return
	}

	out, err := report.RenderXML(rep)
	if err != nil {
		h.respondError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/xml")
	w.Write(out)
}
