package models

import "github.com/shopspring/decimal"

// Profile holds a user's declared financial profile
type Profile struct {
	ID            int64           `json:"id"`
	UserID        int64           `json:"-"`
	Income        decimal.Decimal `json:"income"`
	SavingsGoal   decimal.Decimal `json:"savingsGoal"`
	TargetExpense decimal.Decimal `json:"targetExpense"`
}
