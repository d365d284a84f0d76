package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/budgetwise/budget-service/internal/models"
	"github.com/budgetwise/budget-service/internal/repository"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 24 * time.Hour

// Register creates a new user with a hashed password
func (s *Service) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	if strings.TrimSpace(username) == "" {
		return nil, validationf("Username is required")
	}
	if strings.TrimSpace(email) == "" || !strings.Contains(email, "@") {
		return nil, validationf("A valid email is required")
	}
	if len(password) < 8 {
		return nil, validationf("Password must be at least 8 characters")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		Email:        strings.ToLower(email),
		PasswordHash: string(hashedPassword),
		Role:         "user",
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, validationf("Email is already registered")
		}
		return nil, err
	}

	s.log.Infof("User registered: %s", user.Email)
	return user, nil
}

// Login authenticates a user and returns a JWT token
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.store.FindUserByEmail(ctx, strings.ToLower(email))
	if errors.Is(err, repository.ErrNotFound) {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   user.Email,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	})
	tokenString, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.log.Infof("User logged in: %s", user.Email)
	return tokenString, nil
}

// SignOut blacklists the presented token until its natural expiry
func (s *Service) SignOut(ctx context.Context, tokenString string) error {
	token, _, err := jwt.NewParser().ParseUnverified(tokenString, &jwt.RegisteredClaims{})
	if err != nil {
		return validationf("Invalid token")
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.ExpiresAt == nil {
		return validationf("Invalid token")
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		// Already expired; nothing to revoke.
		return nil
	}
	if err := s.blacklist.Add(ctx, tokenString, ttl); err != nil {
		return fmt.Errorf("failed to blacklist token: %w", err)
	}

	s.log.Infof("User signed out: %s", claims.Subject)
	return nil
}

// UserDetails returns the user record for the authenticated principal
func (s *Service) UserDetails(ctx context.Context, email string) (*models.User, error) {
	return s.resolveUser(ctx, s.store, email)
}
