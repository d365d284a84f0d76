package report

import (
	"fmt"
	"strconv"

	"github.com/beevik/etree"
)

// RenderXML renders the report as an XML statement for programmatic
// consumers
func RenderXML(r *MonthlyReport) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	statement := doc.CreateElement("statement")
	statement.CreateAttr("year", strconv.Itoa(r.Year))
	statement.CreateAttr("month", strconv.Itoa(r.Month))
	statement.CreateAttr("user", r.Username)

	summary := statement.CreateElement("summary")
	summary.CreateElement("startingBalance").SetText(r.StartingBalance.StringFixed(2))
	summary.CreateElement("totalCredits").SetText(r.TotalCredits.StringFixed(2))
	summary.CreateElement("totalExpenses").SetText(r.TotalExpenses.StringFixed(2))
	summary.CreateElement("remainingBalance").SetText(r.RemainingBalance.StringFixed(2))

	budgets := statement.CreateElement("budgets")
	for _, line := range r.Lines {
		b := budgets.CreateElement("budget")
		b.CreateAttr("category", line.Category)
		b.CreateElement("cap").SetText(line.Budget.StringFixed(2))
		b.CreateElement("spent").SetText(line.Spent.StringFixed(2))
		b.CreateElement("remaining").SetText(line.Remaining.StringFixed(2))
	}

	transactions := statement.CreateElement("transactions")
	for _, t := range r.Transactions {
		e := transactions.CreateElement("transaction")
		e.CreateAttr("id", strconv.FormatInt(t.ID, 10))
		e.CreateElement("date").SetText(t.Date.String())
		e.CreateElement("description").SetText(t.Description)
		e.CreateElement("category").SetText(t.Category)
		e.CreateElement("account").SetText(string(t.Account))
		e.CreateElement("amount").SetText(t.Amount.StringFixed(2))
	}

	doc.Indent(2)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("failed to render XML: %w", err)
	}
	return out, nil
}
