package models

import "github.com/shopspring/decimal"

// SavingGoal tracks a user's progress toward a named savings target
type SavingGoal struct {
	ID            int64           `json:"id"`
	UserID        int64           `json:"-"`
	Name          string          `json:"name"`
	TargetAmount  decimal.Decimal `json:"targetAmount"`
	CurrentAmount decimal.Decimal `json:"currentAmount"`
}
