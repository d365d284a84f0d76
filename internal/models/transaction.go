package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// AccountType classifies a transaction's polarity
type AccountType string

const (
	AccountIncome  AccountType = "income"
	AccountExpense AccountType = "expense"
	AccountBorrow  AccountType = "borrow"
)

// ParseAccountType parses an account type label, case-insensitively
func ParseAccountType(s string) (AccountType, error) {
	switch t := AccountType(strings.ToLower(strings.TrimSpace(s))); t {
	case AccountIncome, AccountExpense, AccountBorrow:
		return t, nil
	default:
		return "", fmt.Errorf("unknown account type %q", s)
	}
}

// IsExpense reports whether the type debits the remaining balance.
// Income and borrow both credit it.
func (t AccountType) IsExpense() bool {
	return t == AccountExpense
}

// Valid reports whether the type is one of the known labels
func (t AccountType) Valid() bool {
	_, err := ParseAccountType(string(t))
	return err == nil
}

// UnmarshalJSON normalizes the label to lower case; validation of the
// value itself happens in the service layer so callers get a uniform
// rejection message.
func (t *AccountType) UnmarshalJSON(data []byte) error {
	*t = AccountType(strings.ToLower(strings.Trim(string(data), `"`)))
	return nil
}

// Transaction represents a single ledger entry owned by a user
type Transaction struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"-"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Account     AccountType     `json:"account"`
	Category    string          `json:"category"`
	Date        Date            `json:"date"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
