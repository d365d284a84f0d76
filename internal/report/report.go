package report

import (
	"strings"

	"github.com/budgetwise/budget-service/internal/models"
	"github.com/shopspring/decimal"
)

// BudgetLine pairs one category's budget cap against what was actually
// spent in the month
type BudgetLine struct {
	Category  string          `json:"category"`
	Budget    decimal.Decimal `json:"budget"`
	Spent     decimal.Decimal `json:"spent"`
	Remaining decimal.Decimal `json:"remaining"`
}

// MonthlyReport is the read-side projection of one month: summary totals,
// budget-versus-actual lines and per-transaction detail
type MonthlyReport struct {
	Username         string               `json:"username"`
	Year             int                  `json:"year"`
	Month            int                  `json:"month"`
	StartingBalance  decimal.Decimal      `json:"startingBalance"`
	TotalCredits     decimal.Decimal      `json:"totalCredits"`
	TotalExpenses    decimal.Decimal      `json:"totalExpenses"`
	RemainingBalance decimal.Decimal      `json:"remainingBalance"`
	Lines            []BudgetLine         `json:"lines"`
	Transactions     []models.Transaction `json:"transactions"`
}

type category struct {
	label  string
	budget func(*models.MonthlySummary) decimal.Decimal
}

var categories = []category{
	{"Food & dining", func(s *models.MonthlySummary) decimal.Decimal { return s.BudgetFood }},
	{"Transportation", func(s *models.MonthlySummary) decimal.Decimal { return s.BudgetTransportation }},
	{"Entertainment", func(s *models.MonthlySummary) decimal.Decimal { return s.BudgetEntertainment }},
	{"Shopping", func(s *models.MonthlySummary) decimal.Decimal { return s.BudgetShopping }},
	{"Utilities", func(s *models.MonthlySummary) decimal.Decimal { return s.BudgetUtilities }},
}

// Build derives a report from the monthly view. It is a pure consumer:
// totals come straight from the view so the report always matches what
// the application shows.
func Build(username string, view *models.MonthlyView) *MonthlyReport {
	spent := make(map[string]decimal.Decimal, len(categories))
	for _, t := range view.Transactions {
		if !t.Account.IsExpense() {
			continue
		}
		label := strings.ToLower(strings.TrimSpace(t.Category))
		spent[label] = spent[label].Add(t.Amount)
	}

	lines := make([]BudgetLine, 0, len(categories))
	for _, c := range categories {
		budget := c.budget(&view.MonthlySummary)
		total, ok := spent[strings.ToLower(c.label)]
		if !ok {
			total = decimal.Zero
		}
		lines = append(lines, BudgetLine{
			Category:  c.label,
			Budget:    budget,
			Spent:     total,
			Remaining: budget.Sub(total),
		})
	}

	return &MonthlyReport{
		Username:         username,
		Year:             view.Year,
		Month:            view.Month,
		StartingBalance:  view.StartingBalance,
		TotalCredits:     view.TotalCredits,
		TotalExpenses:    view.TotalExpenses,
		RemainingBalance: view.RemainingBalance,
		Lines:            lines,
		Transactions:     view.Transactions,
	}
}
