package service

import (
	"context"
	"errors"
	"strings"

	"github.com/budgetwise/budget-service/internal/models"
	"github.com/budgetwise/budget-service/internal/repository"
)

func validateSavingGoal(g *models.SavingGoal) error {
	if strings.TrimSpace(g.Name) == "" {
		return validationf("Goal name is required")
	}
	if !g.TargetAmount.IsPositive() {
		return validationf("Target amount must be greater than zero")
	}
	if g.CurrentAmount.IsNegative() {
		return validationf("Current amount must be zero or positive")
	}
	return nil
}

// ListSavingGoals returns all saving goals owned by the user
func (s *Service) ListSavingGoals(ctx context.Context, email string) ([]models.SavingGoal, error) {
	user, err := s.resolveUser(ctx, s.store, email)
	if err != nil {
		return nil, err
	}
	return s.store.ListSavingGoalsByUser(ctx, user.ID)
}

// CreateSavingGoal records a new saving goal for the user
func (s *Service) CreateSavingGoal(ctx context.Context, email string, goal *models.SavingGoal) (*models.SavingGoal, error) {
	if err := validateSavingGoal(goal); err != nil {
		return nil, err
	}
	user, err := s.resolveUser(ctx, s.store, email)
	if err != nil {
		return nil, err
	}
	goal.UserID = user.ID
	if err := s.store.CreateSavingGoal(ctx, goal); err != nil {
		return nil, err
	}

	s.log.Infof("Saving goal %d created for user %s: %s", goal.ID, email, goal.Name)
	return goal, nil
}

// resolveOwnedGoal fetches a goal and verifies the user owns it. Foreign
// goals are reported as absent, never as forbidden.
func (s *Service) resolveOwnedGoal(ctx context.Context, email string, id int64) (*models.SavingGoal, error) {
	user, err := s.resolveUser(ctx, s.store, email)
	if err != nil {
		return nil, err
	}
	goal, err := s.store.FindSavingGoalByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrGoalNotFound
	}
	if err != nil {
		return nil, err
	}
	if goal.UserID != user.ID {
		return nil, ErrGoalNotFound
	}
	return goal, nil
}

// UpdateSavingGoal replaces a saving goal's fields
func (s *Service) UpdateSavingGoal(ctx context.Context, email string, id int64, updated *models.SavingGoal) (*models.SavingGoal, error) {
	if err := validateSavingGoal(updated); err != nil {
		return nil, err
	}
	goal, err := s.resolveOwnedGoal(ctx, email, id)
	if err != nil {
		return nil, err
	}

	goal.Name = updated.Name
	goal.TargetAmount = updated.TargetAmount
	goal.CurrentAmount = updated.CurrentAmount
	if err := s.store.UpdateSavingGoal(ctx, goal); err != nil {
		return nil, err
	}

	s.log.Infof("Saving goal %d updated for user %s", id, email)
	return goal, nil
}

// DeleteSavingGoal removes a saving goal
func (s *Service) DeleteSavingGoal(ctx context.Context, email string, id int64) error {
	goal, err := s.resolveOwnedGoal(ctx, email, id)
	if err != nil {
		return err
	}
	if err := s.store.DeleteSavingGoal(ctx, goal.ID); err != nil {
		return err
	}

	s.log.Infof("Saving goal %d deleted for user %s", id, email)
	return nil
}
