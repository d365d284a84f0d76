package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/budgetwise/budget-service/internal/models"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

var (
	// ErrNotFound indicates the requested row does not exist
	ErrNotFound = errors.New("not found")
	// ErrDuplicate indicates a unique constraint was violated
	ErrDuplicate = errors.New("already exists")
	// ErrConflict indicates a concurrent modification that could not be
	// resolved within the retry budget
	ErrConflict = errors.New("store conflict")
)

// Store is the querying surface exposed to the service layer. Inside
// Atomic all calls run against the same database transaction.
type Store interface {
	Atomic(ctx context.Context, fn func(Store) error) error

	CreateUser(ctx context.Context, user *models.User) error
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	ListUsersWithProfile(ctx context.Context) ([]models.User, error)

	UpsertProfile(ctx context.Context, profile *models.Profile) error
	FindProfileByUserID(ctx context.Context, userID int64) (*models.Profile, error)

	CreateTransaction(ctx context.Context, tx *models.Transaction) error
	FindTransactionByID(ctx context.Context, id int64) (*models.Transaction, error)
	UpdateTransaction(ctx context.Context, tx *models.Transaction) error
	DeleteTransaction(ctx context.Context, id int64) error
	ListTransactionsByUser(ctx context.Context, userID int64) ([]models.Transaction, error)
	ListTransactionsByUserAndDateRange(ctx context.Context, userID int64, start, end models.Date) ([]models.Transaction, error)
	MonthlyExpenseTotals(ctx context.Context, userID int64, year int) (map[int]decimal.Decimal, error)

	CreateSavingGoal(ctx context.Context, goal *models.SavingGoal) error
	FindSavingGoalByID(ctx context.Context, id int64) (*models.SavingGoal, error)
	UpdateSavingGoal(ctx context.Context, goal *models.SavingGoal) error
	DeleteSavingGoal(ctx context.Context, id int64) error
	ListSavingGoalsByUser(ctx context.Context, userID int64) ([]models.SavingGoal, error)

	FindSummary(ctx context.Context, userID int64, year, month int) (*models.MonthlySummary, error)
	InsertSummaryIfAbsent(ctx context.Context, summary *models.MonthlySummary) error
	LockSummary(ctx context.Context, userID int64, year, month int) (*models.MonthlySummary, error)
	SaveSummary(ctx context.Context, summary *models.MonthlySummary) error
}

type queryer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// Repository provides database operations backed by PostgreSQL
type Repository struct {
	db *sql.DB
	q  queryer
	tx *sql.Tx
}

// NewRepository initializes a new repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db, q: db}
}

// maxConflictRetries bounds how often a serialization failure is retried
// before it surfaces as ErrConflict.
const maxConflictRetries = 3

// Atomic runs fn inside a single database transaction. Serialization
// failures and deadlocks reported by the store are retried up to
// maxConflictRetries times; any other error aborts and rolls back.
func (r *Repository) Atomic(ctx context.Context, fn func(Store) error) error {
	if r.tx != nil {
		// Already transactional; nested calls share the outer transaction.
		return fn(r)
	}

	var lastErr error
	for attempt := 0; attempt <= maxConflictRetries; attempt++ {
		tx, err := r.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin transaction: %w", err)
		}

		err = fn(&Repository{db: r.db, q: tx, tx: tx})
		if err != nil {
			tx.Rollback()
			if !isSerializationFailure(err) {
				return err
			}
			lastErr = err
			continue
		}

		if err := tx.Commit(); err != nil {
			if isSerializationFailure(err) {
				lastErr = err
				continue
			}
			return fmt.Errorf("failed to commit transaction: %w", err)
		}
		return nil
	}
	return fmt.Errorf("%w: %v", ErrConflict, lastErr)
}

// isSerializationFailure reports whether the error is a transient
// concurrency conflict (serialization_failure or deadlock_detected).
func isSerializationFailure(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "40001" || pqErr.Code == "40P01"
	}
	return false
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
