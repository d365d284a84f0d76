package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/budgetwise/budget-service/internal/models"
)

// CreateSavingGoal creates a new saving goal in the database
func (r *Repository) CreateSavingGoal(ctx context.Context, g *models.SavingGoal) error {
	query := `
		INSERT INTO saving_goals (user_id, name, target_amount, current_amount)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	err := r.q.QueryRowContext(ctx, query, g.UserID, g.Name, g.TargetAmount, g.CurrentAmount).
		Scan(&g.ID)
	if err != nil {
		return fmt.Errorf("failed to create saving goal: %w", err)
	}
	return nil
}

// FindSavingGoalByID retrieves a saving goal by its id
func (r *Repository) FindSavingGoalByID(ctx context.Context, id int64) (*models.SavingGoal, error) {
	g := &models.SavingGoal{}
	query := `SELECT id, user_id, name, target_amount, current_amount FROM saving_goals WHERE id = $1`
	err := r.q.QueryRowContext(ctx, query, id).
		Scan(&g.ID, &g.UserID, &g.Name, &g.TargetAmount, &g.CurrentAmount)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find saving goal: %w", err)
	}
	return g, nil
}

// UpdateSavingGoal persists the mutable fields of a saving goal
func (r *Repository) UpdateSavingGoal(ctx context.Context, g *models.SavingGoal) error {
	query := `
		UPDATE saving_goals
		SET name = $1, target_amount = $2, current_amount = $3
		WHERE id = $4`
	res, err := r.q.ExecContext(ctx, query, g.Name, g.TargetAmount, g.CurrentAmount, g.ID)
	if err != nil {
		return fmt.Errorf("failed to update saving goal: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update saving goal: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteSavingGoal removes a saving goal by its id
func (r *Repository) DeleteSavingGoal(ctx context.Context, id int64) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM saving_goals WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete saving goal: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete saving goal: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListSavingGoalsByUser retrieves all saving goals owned by a user
func (r *Repository) ListSavingGoalsByUser(ctx context.Context, userID int64) ([]models.SavingGoal, error) {
	query := `SELECT id, user_id, name, target_amount, current_amount FROM saving_goals WHERE user_id = $1 ORDER BY id`
	rows, err := r.q.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list saving goals: %w", err)
	}
	defer rows.Close()

	var out []models.SavingGoal
	for rows.Next() {
		var g models.SavingGoal
		if err := rows.Scan(&g.ID, &g.UserID, &g.Name, &g.TargetAmount, &g.CurrentAmount); err != nil {
			return nil, fmt.Errorf("failed to scan saving goal: %w", err)
		}
		out = append(out, g)
	}
	return out, rows.Err()
}
