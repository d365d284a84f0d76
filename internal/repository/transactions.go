package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/budgetwise/budget-service/internal/models"
	"github.com/shopspring/decimal"
)

const transactionColumns = `id, user_id, description, amount, account, category, date, created_at, updated_at`

func scanTransaction(row interface{ Scan(...interface{}) error }, t *models.Transaction) error {
	return row.Scan(&t.ID, &t.UserID, &t.Description, &t.Amount, &t.Account, &t.Category, &t.Date, &t.CreatedAt, &t.UpdatedAt)
}

// CreateTransaction creates a new transaction in the database
func (r *Repository) CreateTransaction(ctx context.Context, t *models.Transaction) error {
	query := `
		INSERT INTO transactions (user_id, description, amount, account, category, date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at`
	err := r.q.QueryRowContext(ctx, query, t.UserID, t.Description, t.Amount, t.Account, t.Category, t.Date).
		Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// FindTransactionByID retrieves a transaction by its id
func (r *Repository) FindTransactionByID(ctx context.Context, id int64) (*models.Transaction, error) {
	t := &models.Transaction{}
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`
	err := scanTransaction(r.q.QueryRowContext(ctx, query, id), t)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find transaction: %w", err)
	}
	return t, nil
}

// UpdateTransaction persists the mutable fields of a transaction
func (r *Repository) UpdateTransaction(ctx context.Context, t *models.Transaction) error {
	query := `
		UPDATE transactions
		SET description = $1, amount = $2, account = $3, category = $4, date = $5, updated_at = CURRENT_TIMESTAMP
		WHERE id = $6
		RETURNING updated_at`
	err := r.q.QueryRowContext(ctx, query, t.Description, t.Amount, t.Account, t.Category, t.Date, t.ID).
		Scan(&t.UpdatedAt)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}
	return nil
}

// DeleteTransaction removes a transaction by its id
func (r *Repository) DeleteTransaction(ctx context.Context, id int64) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListTransactionsByUser retrieves all transactions owned by a user
func (r *Repository) ListTransactionsByUser(ctx context.Context, userID int64) ([]models.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE user_id = $1 ORDER BY date DESC, id DESC`
	return r.listTransactions(ctx, query, userID)
}

// ListTransactionsByUserAndDateRange retrieves a user's transactions with
// dates in [start, end], inclusive
func (r *Repository) ListTransactionsByUserAndDateRange(ctx context.Context, userID int64, start, end models.Date) ([]models.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE user_id = $1 AND date BETWEEN $2 AND $3 ORDER BY date, id`
	return r.listTransactions(ctx, query, userID, start, end)
}

func (r *Repository) listTransactions(ctx context.Context, query string, args ...interface{}) ([]models.Transaction, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var out []models.Transaction
	for rows.Next() {
		var t models.Transaction
		if err := scanTransaction(rows, &t); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// MonthlyExpenseTotals returns the aggregated expense total per month for
// the given calendar year, keyed by month number
func (r *Repository) MonthlyExpenseTotals(ctx context.Context, userID int64, year int) (map[int]decimal.Decimal, error) {
	query := `
		SELECT EXTRACT(MONTH FROM date)::int AS month, COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE user_id = $1 AND account = 'expense' AND EXTRACT(YEAR FROM date)::int = $2
		GROUP BY month`
	rows, err := r.q.QueryContext(ctx, query, userID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate expenses: %w", err)
	}
	defer rows.Close()

	totals := make(map[int]decimal.Decimal)
	for rows.Next() {
		var month int
		var total decimal.Decimal
		if err := rows.Scan(&month, &total); err != nil {
			return nil, fmt.Errorf("failed to scan expense total: %w", err)
		}
		totals[month] = total
	}
	return totals, rows.Err()
}
