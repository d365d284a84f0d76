package service

import (
	"context"
	"errors"
	"time"

	"github.com/budgetwise/budget-service/internal/config"
	"github.com/budgetwise/budget-service/internal/models"
	"github.com/budgetwise/budget-service/internal/repository"
	"github.com/sirupsen/logrus"
)

// TokenBlacklist revokes issued tokens until they expire on their own
type TokenBlacklist interface {
	Add(ctx context.Context, token string, ttl time.Duration) error
}

// Service handles business logic
type Service struct {
	store     repository.Store
	blacklist TokenBlacklist
	log       *logrus.Logger
	config    *config.Config
}

// NewService initializes a new service
func NewService(store repository.Store, blacklist TokenBlacklist, log *logrus.Logger, cfg *config.Config) *Service {
	return &Service{store: store, blacklist: blacklist, log: log, config: cfg}
}

// resolveUser maps an authenticated principal's email to the owning user
func (s *Service) resolveUser(ctx context.Context, store repository.Store, email string) (*models.User, error) {
	user, err := store.FindUserByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// UsersWithProfile lists all users that have declared a profile
func (s *Service) UsersWithProfile(ctx context.Context) ([]models.User, error) {
	return s.store.ListUsersWithProfile(ctx)
}
