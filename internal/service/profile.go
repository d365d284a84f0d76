package service

import (
	"context"
	"errors"

	"github.com/budgetwise/budget-service/internal/models"
	"github.com/budgetwise/budget-service/internal/repository"
)

// AddProfile creates or replaces the user's financial profile
func (s *Service) AddProfile(ctx context.Context, email string, profile *models.Profile) (*models.Profile, error) {
	if profile.Income.IsNegative() {
		return nil, validationf("Income must be zero or positive")
	}
	if profile.SavingsGoal.IsNegative() {
		return nil, validationf("Savings goal must be zero or positive")
	}
	if profile.TargetExpense.IsNegative() {
		return nil, validationf("Target expense must be zero or positive")
	}

	user, err := s.resolveUser(ctx, s.store, email)
	if err != nil {
		return nil, err
	}
	profile.UserID = user.ID
	if err := s.store.UpsertProfile(ctx, profile); err != nil {
		return nil, err
	}

	s.log.Infof("Profile saved for user %s", email)
	return profile, nil
}

// GetProfile returns the user's profile
func (s *Service) GetProfile(ctx context.Context, email string) (*models.Profile, error) {
	user, err := s.resolveUser(ctx, s.store, email)
	if err != nil {
		return nil, err
	}
	profile, err := s.store.FindProfileByUserID(ctx, user.ID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrProfileNotFound
	}
	return profile, err
}

// HasProfile reports whether the user has declared a profile
func (s *Service) HasProfile(ctx context.Context, email string) (bool, error) {
	_, err := s.GetProfile(ctx, email)
	if errors.Is(err, ErrProfileNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
