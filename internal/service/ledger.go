package service

import (
	"context"
	"errors"
	"strings"

	"github.com/budgetwise/budget-service/internal/models"
	"github.com/budgetwise/budget-service/internal/repository"
)

// validateTransaction rejects malformed input before any store access and
// canonicalizes the account type so every downstream comparison sees the
// closed lower-case enum regardless of how the caller spelled it
func validateTransaction(t *models.Transaction) error {
	if strings.TrimSpace(t.Description) == "" {
		return validationf("Description is required")
	}
	if len(t.Description) > 100 {
		return validationf("Description cannot exceed 100 characters")
	}
	if !t.Amount.IsPositive() {
		return validationf("Amount must be greater than zero")
	}
	account, err := models.ParseAccountType(string(t.Account))
	if err != nil {
		return validationf("Account must be one of income, expense, borrow")
	}
	t.Account = account
	if strings.TrimSpace(t.Category) == "" {
		return validationf("Category is required")
	}
	if t.Date.IsZero() {
		return validationf("Date is required")
	}
	return nil
}

// AddTransaction records a new transaction for the user identified by
// email and applies its delta to the month's summary. An expense that
// would exceed the month's remaining balance is rejected without writing
// anything.
func (s *Service) AddTransaction(ctx context.Context, email string, t *models.Transaction) (*models.Transaction, error) {
	if err := validateTransaction(t); err != nil {
		return nil, err
	}

	year, month := t.Date.YearMonth()
	err := s.store.Atomic(ctx, func(store repository.Store) error {
		user, err := s.resolveUser(ctx, store, email)
		if err != nil {
			return err
		}
		summary, err := getOrCreateSummary(ctx, store, user.ID, year, month)
		if err != nil {
			return err
		}
		if !canAfford(summary, t.Account, t.Amount) {
			return &InsufficientBalanceError{Action: "add", Remaining: summary.RemainingBalance}
		}

		t.UserID = user.ID
		if err := store.CreateTransaction(ctx, t); err != nil {
			return err
		}
		applyDelta(summary, t.Account, t.Amount)
		return store.SaveSummary(ctx, summary)
	})
	if err != nil {
		return nil, err
	}

	s.log.Infof("Transaction %d added for user %s: %s %s", t.ID, email, t.Account, t.Amount)
	return t, nil
}

// ListTransactions returns all transactions owned by the user
func (s *Service) ListTransactions(ctx context.Context, email string) ([]models.Transaction, error) {
	user, err := s.resolveUser(ctx, s.store, email)
	if err != nil {
		return nil, err
	}
	return s.store.ListTransactionsByUser(ctx, user.ID)
}

// DeleteTransaction removes a transaction and reverses its effect on the
// month's summary. Deletion always succeeds regardless of the resulting
// balance sign.
func (s *Service) DeleteTransaction(ctx context.Context, email string, id int64) error {
	err := s.store.Atomic(ctx, func(store repository.Store) error {
		user, err := s.resolveUser(ctx, store, email)
		if err != nil {
			return err
		}
		t, err := store.FindTransactionByID(ctx, id)
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTransactionNotFound
		}
		if err != nil {
			return err
		}
		if t.UserID != user.ID {
			// No cross-user visibility.
			return ErrTransactionNotFound
		}

		if err := store.DeleteTransaction(ctx, id); err != nil {
			return err
		}

		year, month := t.Date.YearMonth()
		summary, err := getOrCreateSummary(ctx, store, user.ID, year, month)
		if err != nil {
			return err
		}
		applyDelta(summary, t.Account, t.Amount.Neg())
		return store.SaveSummary(ctx, summary)
	})
	if err != nil {
		return err
	}

	s.log.Infof("Transaction %d deleted for user %s", id, email)
	return nil
}

// UpdateTransaction replaces a transaction's fields and rebalances the
// affected summaries. The old line is reversed fully, then the new line
// is affordability-checked and applied; because everything runs in one
// store transaction, a rejection leaves the ledger and all summaries
// untouched.
func (s *Service) UpdateTransaction(ctx context.Context, email string, id int64, updated *models.Transaction) (*models.Transaction, error) {
	if err := validateTransaction(updated); err != nil {
		return nil, err
	}

	var result *models.Transaction
	err := s.store.Atomic(ctx, func(store repository.Store) error {
		user, err := s.resolveUser(ctx, store, email)
		if err != nil {
			return err
		}
		t, err := store.FindTransactionByID(ctx, id)
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTransactionNotFound
		}
		if err != nil {
			return err
		}
		if t.UserID != user.ID {
			return ErrTransactionNotFound
		}

		oldYear, oldMonth := t.Date.YearMonth()
		newYear, newMonth := updated.Date.YearMonth()

		if oldYear == newYear && oldMonth == newMonth {
			// Same month: reverse and apply against one locked row so the
			// two deltas cannot race a concurrent writer between loads.
			summary, err := getOrCreateSummary(ctx, store, user.ID, oldYear, oldMonth)
			if err != nil {
				return err
			}
			applyDelta(summary, t.Account, t.Amount.Neg())
			if !canAfford(summary, updated.Account, updated.Amount) {
				return &InsufficientBalanceError{Action: "update", Remaining: summary.RemainingBalance}
			}
			applyDelta(summary, updated.Account, updated.Amount)
			if err := store.SaveSummary(ctx, summary); err != nil {
				return err
			}
		} else {
			// Lock the two summary rows in chronological order so
			// concurrent moves in opposite directions cannot deadlock.
			firstYear, firstMonth, secondYear, secondMonth := oldYear, oldMonth, newYear, newMonth
			if newYear < oldYear || (newYear == oldYear && newMonth < oldMonth) {
				firstYear, firstMonth, secondYear, secondMonth = newYear, newMonth, oldYear, oldMonth
			}
			first, err := getOrCreateSummary(ctx, store, user.ID, firstYear, firstMonth)
			if err != nil {
				return err
			}
			second, err := getOrCreateSummary(ctx, store, user.ID, secondYear, secondMonth)
			if err != nil {
				return err
			}
			oldSummary, newSummary := first, second
			if firstYear != oldYear || firstMonth != oldMonth {
				oldSummary, newSummary = second, first
			}

			applyDelta(oldSummary, t.Account, t.Amount.Neg())
			if !canAfford(newSummary, updated.Account, updated.Amount) {
				return &InsufficientBalanceError{Action: "update", Remaining: newSummary.RemainingBalance}
			}
			applyDelta(newSummary, updated.Account, updated.Amount)

			if err := store.SaveSummary(ctx, oldSummary); err != nil {
				return err
			}
			if err := store.SaveSummary(ctx, newSummary); err != nil {
				return err
			}
		}

		t.Description = updated.Description
		t.Amount = updated.Amount
		t.Account = updated.Account
		t.Category = updated.Category
		t.Date = updated.Date
		if err := store.UpdateTransaction(ctx, t); err != nil {
			return err
		}
		result = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Infof("Transaction %d updated for user %s", id, email)
	return result, nil
}
