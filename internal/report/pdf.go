package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
)

// RenderPDF renders the report as a PDF document
func RenderPDF(r *MonthlyReport) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("BudgetWise Report %d-%02d", r.Year, r.Month), false)
	pdf.AddPage()

	monthName := time.Month(r.Month).String()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, fmt.Sprintf("BudgetWise Report - %s %d", monthName, r.Year), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 8, fmt.Sprintf("Prepared for %s", r.Username), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// Summary block
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 8, "Monthly Summary", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	summary := [][2]string{
		{"Starting Balance", r.StartingBalance.StringFixed(2)},
		{"Total Credits", r.TotalCredits.StringFixed(2)},
		{"Total Expenses", r.TotalExpenses.StringFixed(2)},
		{"Remaining Balance", r.RemainingBalance.StringFixed(2)},
	}
	for _, row := range summary {
		pdf.CellFormat(60, 7, row[0], "1", 0, "L", false, 0, "")
		pdf.CellFormat(60, 7, row[1], "1", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	// Budget allocation table
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 8, "Budget Allocation", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(50, 7, "Category", "1", 0, "L", false, 0, "")
	pdf.CellFormat(40, 7, "Budget", "1", 0, "R", false, 0, "")
	pdf.CellFormat(40, 7, "Spent", "1", 0, "R", false, 0, "")
	pdf.CellFormat(40, 7, "Remaining", "1", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	for _, line := range r.Lines {
		pdf.CellFormat(50, 7, line.Category, "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 7, line.Budget.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 7, line.Spent.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 7, line.Remaining.StringFixed(2), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	// Transaction detail
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 8, "Transactions", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(25, 7, "Date", "1", 0, "L", false, 0, "")
	pdf.CellFormat(65, 7, "Description", "1", 0, "L", false, 0, "")
	pdf.CellFormat(35, 7, "Category", "1", 0, "L", false, 0, "")
	pdf.CellFormat(20, 7, "Type", "1", 0, "L", false, 0, "")
	pdf.CellFormat(25, 7, "Amount", "1", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	if len(r.Transactions) == 0 {
		pdf.CellFormat(170, 7, "No transactions recorded this month", "1", 1, "C", false, 0, "")
	}
	for _, t := range r.Transactions {
		pdf.CellFormat(25, 7, t.Date.String(), "1", 0, "L", false, 0, "")
		pdf.CellFormat(65, 7, t.Description, "1", 0, "L", false, 0, "")
		pdf.CellFormat(35, 7, t.Category, "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, 7, string(t.Account), "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 7, t.Amount.StringFixed(2), "1", 1, "R", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return buf.Bytes(), nil
}
