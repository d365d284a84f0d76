package models

import "github.com/shopspring/decimal"

// MonthlySummary is the pre-aggregated rollup of one user's ledger for a
// single calendar month. Invariant after every mutation:
// RemainingBalance == StartingBalance + TotalCredits - TotalExpenses.
type MonthlySummary struct {
	ID     int64 `json:"-"`
	UserID int64 `json:"-"`
	Year   int   `json:"year"`
	Month  int   `json:"month"`

	StartingBalance  decimal.Decimal `json:"startingBalance"`
	TotalCredits     decimal.Decimal `json:"totalCredits"`
	TotalExpenses    decimal.Decimal `json:"totalExpenses"`
	RemainingBalance decimal.Decimal `json:"remainingBalance"`

	BudgetFood           decimal.Decimal `json:"budgetFood"`
	BudgetTransportation decimal.Decimal `json:"budgetTransportation"`
	BudgetEntertainment  decimal.Decimal `json:"budgetEntertainment"`
	BudgetShopping       decimal.Decimal `json:"budgetShopping"`
	BudgetUtilities      decimal.Decimal `json:"budgetUtilities"`
}

// NewMonthlySummary returns a zeroed summary for the given key
func NewMonthlySummary(userID int64, year, month int) *MonthlySummary {
	return &MonthlySummary{
		UserID:           userID,
		Year:             year,
		Month:            month,
		StartingBalance:  decimal.Zero,
		TotalCredits:     decimal.Zero,
		TotalExpenses:    decimal.Zero,
		RemainingBalance: decimal.Zero,

		BudgetFood:           decimal.Zero,
		BudgetTransportation: decimal.Zero,
		BudgetEntertainment:  decimal.Zero,
		BudgetShopping:       decimal.Zero,
		BudgetUtilities:      decimal.Zero,
	}
}

// MonthlyView combines a month's summary with its transactions
type MonthlyView struct {
	MonthlySummary
	Transactions []Transaction `json:"transactions"`
}

// MonthlyExpense is one month's aggregated expense total
type MonthlyExpense struct {
	Month int             `json:"month"`
	Total decimal.Decimal `json:"total"`
}
