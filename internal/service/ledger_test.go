package service

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/budgetwise/budget-service/internal/config"
	"github.com/budgetwise/budget-service/internal/models"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testEmail = "user@example.com"

func newTestService(t *testing.T) (*Service, *memStore, models.User) {
	t.Helper()
	store := newMemStore()
	user := store.seedUser(testEmail)
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	svc := NewService(store, stubBlacklist{}, logger, &config.Config{JWTSecret: "test-secret"})
	return svc, store, user
}

type stubBlacklist struct{}

func (stubBlacklist) Add(ctx context.Context, token string, ttl time.Duration) error { return nil }

func expense(amount string, date models.Date) *models.Transaction {
	return &models.Transaction{
		Description: "test expense",
		Amount:      dec(amount),
		Account:     models.AccountExpense,
		Category:    "Shopping",
		Date:        date,
	}
}

func income(amount string, date models.Date) *models.Transaction {
	return &models.Transaction{
		Description: "test income",
		Amount:      dec(amount),
		Account:     models.AccountIncome,
		Category:    "Salary",
		Date:        date,
	}
}

func mustSummary(t *testing.T, store *memStore, userID int64, year, month int) *models.MonthlySummary {
	t.Helper()
	s, err := store.FindSummary(context.Background(), userID, year, month)
	require.NoError(t, err)
	return s
}

func TestAddTransactionRejectsOverdraft(t *testing.T) {
	svc, store, user := newTestService(t)
	store.seedSummary(user.ID, 2025, 3, dec("1000"))

	_, err := svc.AddTransaction(context.Background(), testEmail, expense("1200", models.NewDate(2025, 3, 10)))

	var balanceErr *InsufficientBalanceError
	require.ErrorAs(t, err, &balanceErr)
	assert.True(t, balanceErr.Remaining.Equal(dec("1000")), "rejection names the remaining balance")

	s := mustSummary(t, store, user.ID, 2025, 3)
	assert.True(t, s.RemainingBalance.Equal(dec("1000")), "summary unchanged after rejection")
	assert.True(t, s.TotalExpenses.Equal(decimal.Zero))
	assert.Empty(t, store.txs, "rejected transaction must not be written")
}

func TestAddThenDeleteRestoresSummary(t *testing.T) {
	svc, store, user := newTestService(t)
	store.seedSummary(user.ID, 2025, 3, dec("1000"))

	saved, err := svc.AddTransaction(context.Background(), testEmail, expense("300", models.NewDate(2025, 3, 10)))
	require.NoError(t, err)
	require.NotZero(t, saved.ID)

	s := mustSummary(t, store, user.ID, 2025, 3)
	assert.True(t, s.TotalExpenses.Equal(dec("300")))
	assert.True(t, s.RemainingBalance.Equal(dec("700")))
	requireInvariant(t, s)

	require.NoError(t, svc.DeleteTransaction(context.Background(), testEmail, saved.ID))

	s = mustSummary(t, store, user.ID, 2025, 3)
	assert.True(t, s.TotalExpenses.Equal(decimal.Zero))
	assert.True(t, s.RemainingBalance.Equal(dec("1000")))
	requireInvariant(t, s)
}

func TestAddTransactionNormalizesAccountCase(t *testing.T) {
	svc, store, user := newTestService(t)
	ctx := context.Background()
	store.seedSummary(user.ID, 2025, 3, dec("1000"))

	saved, err := svc.AddTransaction(ctx, testEmail, &models.Transaction{
		Description: "groceries",
		Amount:      dec("300"),
		Account:     "EXPENSE",
		Category:    "Food & dining",
		Date:        models.NewDate(2025, 3, 10),
	})
	require.NoError(t, err)
	assert.Equal(t, models.AccountExpense, saved.Account, "stored type is canonical")

	// An upper-case expense must debit, not credit.
	s := mustSummary(t, store, user.ID, 2025, 3)
	assert.True(t, s.TotalExpenses.Equal(dec("300")))
	assert.True(t, s.TotalCredits.Equal(decimal.Zero))
	assert.True(t, s.RemainingBalance.Equal(dec("700")))
	requireInvariant(t, s)

	_, err = svc.AddTransaction(ctx, testEmail, &models.Transaction{
		Description: "splurge",
		Amount:      dec("800"),
		Account:     "Expense",
		Category:    "Shopping",
		Date:        models.NewDate(2025, 3, 11),
	})
	var balanceErr *InsufficientBalanceError
	require.ErrorAs(t, err, &balanceErr, "case must not bypass the affordability check")
}

func TestAddTransactionValidation(t *testing.T) {
	svc, store, _ := newTestService(t)
	date := models.NewDate(2025, 3, 10)

	tests := []struct {
		name string
		tx   *models.Transaction
	}{
		{"missing description", &models.Transaction{Amount: dec("10"), Account: models.AccountIncome, Category: "x", Date: date}},
		{"description too long", &models.Transaction{Description: string(make([]byte, 101)), Amount: dec("10"), Account: models.AccountIncome, Category: "x", Date: date}},
		{"zero amount", &models.Transaction{Description: "d", Amount: decimal.Zero, Account: models.AccountIncome, Category: "x", Date: date}},
		{"negative amount", &models.Transaction{Description: "d", Amount: dec("-5"), Account: models.AccountIncome, Category: "x", Date: date}},
		{"unknown account type", &models.Transaction{Description: "d", Amount: dec("10"), Account: "loan", Category: "x", Date: date}},
		{"missing category", &models.Transaction{Description: "d", Amount: dec("10"), Account: models.AccountIncome, Date: date}},
		{"missing date", &models.Transaction{Description: "d", Amount: dec("10"), Account: models.AccountIncome, Category: "x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AddTransaction(context.Background(), testEmail, tt.tx)
			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
		})
	}
	assert.Empty(t, store.txs)
	assert.Empty(t, store.summaries, "validation failures must not touch the store")
}

func TestDeleteTransactionNotFound(t *testing.T) {
	svc, _, _ := newTestService(t)
	err := svc.DeleteTransaction(context.Background(), testEmail, 404)
	require.ErrorIs(t, err, ErrTransactionNotFound)
}

func TestDeleteHidesOtherUsersTransactions(t *testing.T) {
	svc, store, _ := newTestService(t)
	other := store.seedUser("other@example.com")
	store.seedSummary(other.ID, 2025, 3, dec("1000"))
	tx := expense("50", models.NewDate(2025, 3, 5))
	tx.UserID = other.ID
	require.NoError(t, store.CreateTransaction(context.Background(), tx))

	err := svc.DeleteTransaction(context.Background(), testEmail, tx.ID)
	require.ErrorIs(t, err, ErrTransactionNotFound)
}

func TestDeleteAllowsNegativeRemaining(t *testing.T) {
	svc, store, user := newTestService(t)
	ctx := context.Background()

	in, err := svc.AddTransaction(ctx, testEmail, income("500", models.NewDate(2025, 3, 1)))
	require.NoError(t, err)
	_, err = svc.AddTransaction(ctx, testEmail, expense("300", models.NewDate(2025, 3, 2)))
	require.NoError(t, err)

	// Removing the credit leaves the month overdrawn; deletes never check.
	require.NoError(t, svc.DeleteTransaction(ctx, testEmail, in.ID))

	s := mustSummary(t, store, user.ID, 2025, 3)
	assert.True(t, s.RemainingBalance.Equal(dec("-300")))
	requireInvariant(t, s)
}

func TestUpdateSameMonthUsesEffectiveBalance(t *testing.T) {
	svc, store, user := newTestService(t)
	ctx := context.Background()
	store.seedSummary(user.ID, 2025, 3, dec("1000"))

	saved, err := svc.AddTransaction(ctx, testEmail, expense("800", models.NewDate(2025, 3, 5)))
	require.NoError(t, err)

	// Remaining is 200, but the old 800 no longer counts against the edit.
	updated, err := svc.UpdateTransaction(ctx, testEmail, saved.ID, expense("900", models.NewDate(2025, 3, 6)))
	require.NoError(t, err)
	assert.True(t, updated.Amount.Equal(dec("900")))

	s := mustSummary(t, store, user.ID, 2025, 3)
	assert.True(t, s.TotalExpenses.Equal(dec("900")))
	assert.True(t, s.RemainingBalance.Equal(dec("100")))
	requireInvariant(t, s)
}

func TestUpdateSameMonthRejectsUnaffordable(t *testing.T) {
	svc, store, user := newTestService(t)
	ctx := context.Background()
	store.seedSummary(user.ID, 2025, 3, dec("1000"))

	saved, err := svc.AddTransaction(ctx, testEmail, expense("800", models.NewDate(2025, 3, 5)))
	require.NoError(t, err)

	_, err = svc.UpdateTransaction(ctx, testEmail, saved.ID, expense("1100", models.NewDate(2025, 3, 6)))
	var balanceErr *InsufficientBalanceError
	require.ErrorAs(t, err, &balanceErr)
	assert.True(t, balanceErr.Remaining.Equal(dec("1000")), "effective balance adds the old expense back")

	s := mustSummary(t, store, user.ID, 2025, 3)
	assert.True(t, s.TotalExpenses.Equal(dec("800")), "rejection leaves the summary untouched")
	assert.True(t, s.RemainingBalance.Equal(dec("200")))
	got, err := store.FindTransactionByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.True(t, got.Amount.Equal(dec("800")), "rejection leaves the transaction untouched")
}

func TestUpdateMovesTransactionAcrossMonths(t *testing.T) {
	svc, store, user := newTestService(t)
	ctx := context.Background()
	store.seedSummary(user.ID, 2025, 3, dec("700"))
	store.seedSummary(user.ID, 2025, 4, dec("1000"))

	saved, err := svc.AddTransaction(ctx, testEmail, expense("200", models.NewDate(2025, 3, 15)))
	require.NoError(t, err)

	march := mustSummary(t, store, user.ID, 2025, 3)
	require.True(t, march.RemainingBalance.Equal(dec("500")))

	_, err = svc.UpdateTransaction(ctx, testEmail, saved.ID, expense("200", models.NewDate(2025, 4, 15)))
	require.NoError(t, err)

	march = mustSummary(t, store, user.ID, 2025, 3)
	assert.True(t, march.RemainingBalance.Equal(dec("700")), "old month restored by reversal")
	assert.True(t, march.TotalExpenses.Equal(decimal.Zero))
	requireInvariant(t, march)

	april := mustSummary(t, store, user.ID, 2025, 4)
	assert.True(t, april.TotalExpenses.Equal(dec("200")))
	assert.True(t, april.RemainingBalance.Equal(dec("800")))
	requireInvariant(t, april)

	got, err := store.FindTransactionByID(ctx, saved.ID)
	require.NoError(t, err)
	y, m := got.Date.YearMonth()
	assert.Equal(t, 2025, y)
	assert.Equal(t, 4, m)
}

func TestUpdateCrossMonthRejectionRollsBackReversal(t *testing.T) {
	svc, store, user := newTestService(t)
	ctx := context.Background()
	store.seedSummary(user.ID, 2025, 3, dec("700"))

	saved, err := svc.AddTransaction(ctx, testEmail, expense("200", models.NewDate(2025, 3, 15)))
	require.NoError(t, err)

	// April has no funds, so moving the expense there must fail and leave
	// March exactly as it was.
	_, err = svc.UpdateTransaction(ctx, testEmail, saved.ID, expense("200", models.NewDate(2025, 4, 15)))
	var balanceErr *InsufficientBalanceError
	require.ErrorAs(t, err, &balanceErr)

	march := mustSummary(t, store, user.ID, 2025, 3)
	assert.True(t, march.TotalExpenses.Equal(dec("200")))
	assert.True(t, march.RemainingBalance.Equal(dec("500")))

	_, err = store.FindSummary(ctx, user.ID, 2025, 4)
	assert.Error(t, err, "the provisional April summary must not survive the rollback")
}

func TestUpdateChangesAccountType(t *testing.T) {
	svc, store, user := newTestService(t)
	ctx := context.Background()
	store.seedSummary(user.ID, 2025, 3, dec("1000"))

	saved, err := svc.AddTransaction(ctx, testEmail, expense("300", models.NewDate(2025, 3, 5)))
	require.NoError(t, err)

	_, err = svc.UpdateTransaction(ctx, testEmail, saved.ID, income("300", models.NewDate(2025, 3, 5)))
	require.NoError(t, err)

	s := mustSummary(t, store, user.ID, 2025, 3)
	assert.True(t, s.TotalExpenses.Equal(decimal.Zero))
	assert.True(t, s.TotalCredits.Equal(dec("300")))
	assert.True(t, s.RemainingBalance.Equal(dec("1300")))
	requireInvariant(t, s)
}

func TestUpdateTransactionNotFound(t *testing.T) {
	svc, _, _ := newTestService(t)
	_, err := svc.UpdateTransaction(context.Background(), testEmail, 404, expense("10", models.NewDate(2025, 3, 1)))
	require.ErrorIs(t, err, ErrTransactionNotFound)
}
