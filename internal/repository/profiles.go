package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/budgetwise/budget-service/internal/models"
)

// UpsertProfile creates or replaces the profile for a user
func (r *Repository) UpsertProfile(ctx context.Context, profile *models.Profile) error {
	query := `
		INSERT INTO profiles (user_id, income, savings_goal, target_expense)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE
		SET income = EXCLUDED.income,
		    savings_goal = EXCLUDED.savings_goal,
		    target_expense = EXCLUDED.target_expense
		RETURNING id`
	err := r.q.QueryRowContext(ctx, query, profile.UserID, profile.Income, profile.SavingsGoal, profile.TargetExpense).
		Scan(&profile.ID)
	if err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}
	return nil
}

// FindProfileByUserID retrieves a user's profile
func (r *Repository) FindProfileByUserID(ctx context.Context, userID int64) (*models.Profile, error) {
	profile := &models.Profile{}
	query := `
		SELECT id, user_id, income, savings_goal, target_expense
		FROM profiles
		WHERE user_id = $1`
	err := r.q.QueryRowContext(ctx, query, userID).
		Scan(&profile.ID, &profile.UserID, &profile.Income, &profile.SavingsGoal, &profile.TargetExpense)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find profile: %w", err)
	}
	return profile, nil
}
