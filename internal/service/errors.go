package service

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	// ErrTransactionNotFound indicates the referenced transaction id does not exist
	ErrTransactionNotFound = errors.New("transaction not found")
	// ErrUserNotFound indicates the acting principal has no user record
	ErrUserNotFound = errors.New("user not found")
	// ErrProfileNotFound indicates the user has not declared a profile yet
	ErrProfileNotFound = errors.New("profile not found")
	// ErrGoalNotFound indicates the referenced saving goal does not exist
	ErrGoalNotFound = errors.New("saving goal not found")
	// ErrInvalidCredentials indicates a failed login attempt
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// InsufficientBalanceError rejects an expense that would exceed the
// month's remaining balance. The write is fully rejected; no partial
// state change occurs.
type InsufficientBalanceError struct {
	Action    string
	Remaining decimal.Decimal
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("Insufficient balance to %s this expense. Remaining: %s", e.Action, e.Remaining)
}

// ValidationError rejects malformed input before any store access
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validationf(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}
