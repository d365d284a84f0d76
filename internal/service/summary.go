package service

import (
	"context"
	"errors"
	"time"

	"github.com/budgetwise/budget-service/internal/models"
	"github.com/budgetwise/budget-service/internal/repository"
	"github.com/shopspring/decimal"
)

func validateYearMonth(year, month int) error {
	if year < 1 {
		return validationf("Year is required")
	}
	if month < 1 || month > 12 {
		return validationf("Month must be between 1 and 12")
	}
	return nil
}

// SetStartingBalance declares the opening balance for a month and
// recomputes the summary from scratch by replaying the month's ledger.
// A negative balance is allowed; a month can legitimately open overdrawn.
func (s *Service) SetStartingBalance(ctx context.Context, email string, year, month int, balance decimal.Decimal) (*models.MonthlySummary, error) {
	if err := validateYearMonth(year, month); err != nil {
		return nil, err
	}

	var summary *models.MonthlySummary
	err := s.store.Atomic(ctx, func(store repository.Store) error {
		user, err := s.resolveUser(ctx, store, email)
		if err != nil {
			return err
		}
		summary, err = recomputeFromBalance(ctx, store, user.ID, year, month, balance)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.Infof("Starting balance for %d-%02d set to %s for user %s", year, month, balance, email)
	return summary, nil
}

// budgetKeys maps accepted payload labels to summary budget fields. The
// frontend squashes "Food & dining" down to "fooddining"; both spellings
// are accepted. Unrecognized labels are ignored, not errors.
var budgetKeys = map[string]func(*models.MonthlySummary) *decimal.Decimal{
	"food":           func(s *models.MonthlySummary) *decimal.Decimal { return &s.BudgetFood },
	"fooddining":     func(s *models.MonthlySummary) *decimal.Decimal { return &s.BudgetFood },
	"transportation": func(s *models.MonthlySummary) *decimal.Decimal { return &s.BudgetTransportation },
	"entertainment":  func(s *models.MonthlySummary) *decimal.Decimal { return &s.BudgetEntertainment },
	"shopping":       func(s *models.MonthlySummary) *decimal.Decimal { return &s.BudgetShopping },
	"utilities":      func(s *models.MonthlySummary) *decimal.Decimal { return &s.BudgetUtilities },
}

// SetBudgets overwrites the category budget caps named in the input,
// rejecting the whole request if their sum exceeds the month's starting
// balance
func (s *Service) SetBudgets(ctx context.Context, email string, year, month int, budgets map[string]decimal.Decimal) (*models.MonthlySummary, error) {
	if err := validateYearMonth(year, month); err != nil {
		return nil, err
	}
	total := decimal.Zero
	for key, amount := range budgets {
		if _, ok := budgetKeys[key]; !ok {
			continue
		}
		if amount.IsNegative() {
			return nil, validationf("Budget for %s must be zero or positive", key)
		}
		total = total.Add(amount)
	}

	var summary *models.MonthlySummary
	err := s.store.Atomic(ctx, func(store repository.Store) error {
		user, err := s.resolveUser(ctx, store, email)
		if err != nil {
			return err
		}
		summary, err = getOrCreateSummary(ctx, store, user.ID, year, month)
		if err != nil {
			return err
		}
		if total.GreaterThan(summary.StartingBalance) {
			return validationf("Total budget %s cannot exceed the starting balance %s", total, summary.StartingBalance)
		}
		for key, amount := range budgets {
			field, ok := budgetKeys[key]
			if !ok {
				continue
			}
			*field(summary) = amount
		}
		return store.SaveSummary(ctx, summary)
	})
	if err != nil {
		return nil, err
	}

	s.log.Infof("Budgets for %d-%02d set for user %s", year, month, email)
	return summary, nil
}

// MonthlyView returns the month's summary fields plus its transactions.
// A month with no summary row yields all-zero fields rather than an error.
func (s *Service) MonthlyView(ctx context.Context, email string, year, month int) (*models.MonthlyView, error) {
	if err := validateYearMonth(year, month); err != nil {
		return nil, err
	}
	user, err := s.resolveUser(ctx, s.store, email)
	if err != nil {
		return nil, err
	}

	summary, err := s.store.FindSummary(ctx, user.ID, year, month)
	if errors.Is(err, repository.ErrNotFound) {
		summary = models.NewMonthlySummary(user.ID, year, month)
	} else if err != nil {
		return nil, err
	}

	start, end := models.MonthRange(year, month)
	transactions, err := s.store.ListTransactionsByUserAndDateRange(ctx, user.ID, start, end)
	if err != nil {
		return nil, err
	}
	if transactions == nil {
		transactions = []models.Transaction{}
	}

	return &models.MonthlyView{MonthlySummary: *summary, Transactions: transactions}, nil
}

// SpendingTrend returns one aggregated expense total per month of the
// current calendar year, ordered January through December
func (s *Service) SpendingTrend(ctx context.Context, email string) ([]models.MonthlyExpense, error) {
	user, err := s.resolveUser(ctx, s.store, email)
	if err != nil {
		return nil, err
	}

	year := time.Now().Year()
	totals, err := s.store.MonthlyExpenseTotals(ctx, user.ID, year)
	if err != nil {
		return nil, err
	}

	trend := make([]models.MonthlyExpense, 0, 12)
	for month := 1; month <= 12; month++ {
		total, ok := totals[month]
		if !ok {
			total = decimal.Zero
		}
		trend = append(trend, models.MonthlyExpense{Month: month, Total: total})
	}
	return trend, nil
}
