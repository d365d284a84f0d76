package service

import (
	"context"

	"github.com/budgetwise/budget-service/internal/models"
	"github.com/budgetwise/budget-service/internal/repository"
	"github.com/shopspring/decimal"
)

// The aggregation engine keeps monthly summaries consistent with the
// transaction ledger. Every helper here must run inside store.Atomic so
// that a read-check-write sequence on a summary row is serialized against
// concurrent writers of the same (user, year, month) key.

// getOrCreateSummary fetches the summary row for (user, year, month),
// creating a zeroed one first if absent, and locks it for the duration of
// the surrounding transaction. The conditional insert plus locked read is
// the single atomic insert-if-absent-else-read primitive: two concurrent
// calls for the same key can never create two rows.
func getOrCreateSummary(ctx context.Context, store repository.Store, userID int64, year, month int) (*models.MonthlySummary, error) {
	if err := store.InsertSummaryIfAbsent(ctx, models.NewMonthlySummary(userID, year, month)); err != nil {
		return nil, err
	}
	return store.LockSummary(ctx, userID, year, month)
}

// applyDelta adjusts a summary by one transaction's signed contribution.
// Expenses debit the remaining balance; income and borrow credit it.
// Applying with a negated amount reverses a prior application.
func applyDelta(s *models.MonthlySummary, account models.AccountType, amount decimal.Decimal) {
	if account.IsExpense() {
		s.TotalExpenses = s.TotalExpenses.Add(amount)
		s.RemainingBalance = s.RemainingBalance.Sub(amount)
	} else {
		s.TotalCredits = s.TotalCredits.Add(amount)
		s.RemainingBalance = s.RemainingBalance.Add(amount)
	}
}

// canAfford reports whether a line may be applied to the summary. Only
// expenses are constrained; credits always pass.
func canAfford(s *models.MonthlySummary, account models.AccountType, amount decimal.Decimal) bool {
	return !account.IsExpense() || amount.LessThanOrEqual(s.RemainingBalance)
}

// recomputeFromBalance resets the summary to the given starting balance
// and rebuilds its totals by replaying every transaction in that month.
// The result is consistent with the ledger regardless of prior drift.
func recomputeFromBalance(ctx context.Context, store repository.Store, userID int64, year, month int, balance decimal.Decimal) (*models.MonthlySummary, error) {
	summary, err := getOrCreateSummary(ctx, store, userID, year, month)
	if err != nil {
		return nil, err
	}

	summary.StartingBalance = balance
	summary.TotalCredits = decimal.Zero
	summary.TotalExpenses = decimal.Zero
	summary.RemainingBalance = balance

	start, end := models.MonthRange(year, month)
	transactions, err := store.ListTransactionsByUserAndDateRange(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}
	for _, t := range transactions {
		applyDelta(summary, t.Account, t.Amount)
	}

	if err := store.SaveSummary(ctx, summary); err != nil {
		return nil, err
	}
	return summary, nil
}
