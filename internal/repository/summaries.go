package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/budgetwise/budget-service/internal/models"
)

const summaryColumns = `id, user_id, year, month,
	starting_balance, total_credits, total_expenses, remaining_balance,
	budget_food, budget_transportation, budget_entertainment, budget_shopping, budget_utilities`

func scanSummary(row interface{ Scan(...interface{}) error }, s *models.MonthlySummary) error {
	return row.Scan(&s.ID, &s.UserID, &s.Year, &s.Month,
		&s.StartingBalance, &s.TotalCredits, &s.TotalExpenses, &s.RemainingBalance,
		&s.BudgetFood, &s.BudgetTransportation, &s.BudgetEntertainment, &s.BudgetShopping, &s.BudgetUtilities)
}

// FindSummary retrieves the summary for (user, year, month) without locking
func (r *Repository) FindSummary(ctx context.Context, userID int64, year, month int) (*models.MonthlySummary, error) {
	s := &models.MonthlySummary{}
	query := `SELECT ` + summaryColumns + ` FROM monthly_summaries WHERE user_id = $1 AND year = $2 AND month = $3`
	err := scanSummary(r.q.QueryRowContext(ctx, query, userID, year, month), s)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find summary: %w", err)
	}
	return s, nil
}

// InsertSummaryIfAbsent inserts the summary row only if no row exists for
// its (user, year, month) key. The unique constraint makes this safe under
// concurrent writers; a losing insert is simply a no-op.
func (r *Repository) InsertSummaryIfAbsent(ctx context.Context, s *models.MonthlySummary) error {
	query := `
		INSERT INTO monthly_summaries (user_id, year, month,
			starting_balance, total_credits, total_expenses, remaining_balance,
			budget_food, budget_transportation, budget_entertainment, budget_shopping, budget_utilities)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (user_id, year, month) DO NOTHING`
	_, err := r.q.ExecContext(ctx, query, s.UserID, s.Year, s.Month,
		s.StartingBalance, s.TotalCredits, s.TotalExpenses, s.RemainingBalance,
		s.BudgetFood, s.BudgetTransportation, s.BudgetEntertainment, s.BudgetShopping, s.BudgetUtilities)
	if err != nil {
		return fmt.Errorf("failed to insert summary: %w", err)
	}
	return nil
}

// LockSummary retrieves the summary row and locks it for the duration of
// the surrounding transaction
func (r *Repository) LockSummary(ctx context.Context, userID int64, year, month int) (*models.MonthlySummary, error) {
	s := &models.MonthlySummary{}
	query := `SELECT ` + summaryColumns + ` FROM monthly_summaries WHERE user_id = $1 AND year = $2 AND month = $3 FOR UPDATE`
	err := scanSummary(r.q.QueryRowContext(ctx, query, userID, year, month), s)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock summary: %w", err)
	}
	return s, nil
}

// SaveSummary persists the mutable fields of an existing summary row
func (r *Repository) SaveSummary(ctx context.Context, s *models.MonthlySummary) error {
	query := `
		UPDATE monthly_summaries
		SET starting_balance = $1, total_credits = $2, total_expenses = $3, remaining_balance = $4,
		    budget_food = $5, budget_transportation = $6, budget_entertainment = $7,
		    budget_shopping = $8, budget_utilities = $9,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $10`
	res, err := r.q.ExecContext(ctx, query,
		s.StartingBalance, s.TotalCredits, s.TotalExpenses, s.RemainingBalance,
		s.BudgetFood, s.BudgetTransportation, s.BudgetEntertainment, s.BudgetShopping, s.BudgetUtilities,
		s.ID)
	if err != nil {
		return fmt.Errorf("failed to save summary: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to save summary: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
