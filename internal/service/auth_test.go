package service

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/budgetwise/budget-service/internal/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type recordingBlacklist struct {
	tokens map[string]time.Duration
}

func (r *recordingBlacklist) Add(ctx context.Context, token string, ttl time.Duration) error {
	if r.tokens == nil {
		r.tokens = make(map[string]time.Duration)
	}
	r.tokens[token] = ttl
	return nil
}

func newAuthService(t *testing.T) (*Service, *memStore, *recordingBlacklist) {
	t.Helper()
	store := newMemStore()
	blacklist := &recordingBlacklist{}
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	svc := NewService(store, blacklist, logger, &config.Config{JWTSecret: "test-secret"})
	return svc, store, blacklist
}

func TestRegister(t *testing.T) {
	svc, _, _ := newAuthService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "alice", "Alice@Example.com", "correct-horse")
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "alice@example.com", user.Email, "emails are stored lower case")
	assert.NotEqual(t, "correct-horse", user.PasswordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("correct-horse")))
}

func TestRegisterValidation(t *testing.T) {
	svc, _, _ := newAuthService(t)
	ctx := context.Background()
	var validationErr *ValidationError

	_, err := svc.Register(ctx, "", "a@b.com", "longenough")
	require.ErrorAs(t, err, &validationErr)
	_, err = svc.Register(ctx, "alice", "not-an-email", "longenough")
	require.ErrorAs(t, err, &validationErr)
	_, err = svc.Register(ctx, "alice", "a@b.com", "short")
	require.ErrorAs(t, err, &validationErr)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "a@b.com", "correct-horse")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "bob", "A@B.com", "battery-staple")
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestLoginIssuesToken(t *testing.T) {
	svc, _, _ := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "a@b.com", "correct-horse")
	require.NoError(t, err)

	tokenString, err := svc.Login(ctx, "A@B.com", "correct-horse")
	require.NoError(t, err)

	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)
	claims := token.Claims.(*jwt.RegisteredClaims)
	assert.Equal(t, "a@b.com", claims.Subject)
	assert.True(t, claims.ExpiresAt.After(time.Now()))
}

func TestLoginInvalidCredentials(t *testing.T) {
	svc, _, _ := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "a@b.com", "correct-horse")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "a@b.com", "wrong-password")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(ctx, "nobody@b.com", "correct-horse")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSignOutBlacklistsToken(t *testing.T) {
	svc, _, blacklist := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "a@b.com", "correct-horse")
	require.NoError(t, err)
	tokenString, err := svc.Login(ctx, "a@b.com", "correct-horse")
	require.NoError(t, err)

	require.NoError(t, svc.SignOut(ctx, tokenString))
	ttl, ok := blacklist.tokens[tokenString]
	require.True(t, ok, "token must be revoked until expiry")
	assert.Greater(t, ttl, 23*time.Hour)
}

func TestSignOutExpiredTokenIsNoop(t *testing.T) {
	svc, _, blacklist := newAuthService(t)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "a@b.com",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	})
	tokenString, err := expired.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	require.NoError(t, svc.SignOut(context.Background(), tokenString))
	assert.Empty(t, blacklist.tokens)
}

func TestSignOutRejectsGarbage(t *testing.T) {
	svc, _, _ := newAuthService(t)
	err := svc.SignOut(context.Background(), "not-a-jwt")
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
}
