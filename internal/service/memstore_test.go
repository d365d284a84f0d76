package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/budgetwise/budget-service/internal/models"
	"github.com/budgetwise/budget-service/internal/repository"
	"github.com/shopspring/decimal"
)

// memStore is an in-memory repository.Store for exercising the service
// without a database. Atomic snapshots the state and restores it when fn
// fails, mirroring a rolled-back transaction.
type memStore struct {
	users     map[int64]models.User
	profiles  map[int64]models.Profile
	txs       map[int64]models.Transaction
	goals     map[int64]models.SavingGoal
	summaries map[string]models.MonthlySummary
	nextID    int64
}

func newMemStore() *memStore {
	return &memStore{
		users:     make(map[int64]models.User),
		profiles:  make(map[int64]models.Profile),
		txs:       make(map[int64]models.Transaction),
		goals:     make(map[int64]models.SavingGoal),
		summaries: make(map[string]models.MonthlySummary),
	}
}

func summaryKey(userID int64, year, month int) string {
	return fmt.Sprintf("%d/%d/%d", userID, year, month)
}

func (m *memStore) id() int64 {
	m.nextID++
	return m.nextID
}

func (m *memStore) seedUser(email string) models.User {
	u := models.User{ID: m.id(), Username: "tester", Email: email, Role: "user"}
	m.users[u.ID] = u
	return u
}

func copyMap[K comparable, V any](src map[K]V) map[K]V {
	dst := make(map[K]V, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func (m *memStore) Atomic(ctx context.Context, fn func(repository.Store) error) error {
	users, profiles, txs, goals, summaries := copyMap(m.users), copyMap(m.profiles), copyMap(m.txs), copyMap(m.goals), copyMap(m.summaries)
	nextID := m.nextID
	if err := fn(m); err != nil {
		m.users, m.profiles, m.txs, m.goals, m.summaries = users, profiles, txs, goals, summaries
		m.nextID = nextID
		return err
	}
	return nil
}

func (m *memStore) CreateUser(ctx context.Context, user *models.User) error {
	for _, u := range m.users {
		if u.Email == user.Email {
			return fmt.Errorf("user with email %s %w", user.Email, repository.ErrDuplicate)
		}
	}
	user.ID = m.id()
	user.CreatedAt = time.Now()
	m.users[user.ID] = *user
	return nil
}

func (m *memStore) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memStore) ListUsersWithProfile(ctx context.Context) ([]models.User, error) {
	var out []models.User
	for _, u := range m.users {
		if _, ok := m.profiles[u.ID]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *memStore) UpsertProfile(ctx context.Context, profile *models.Profile) error {
	if existing, ok := m.profiles[profile.UserID]; ok {
		profile.ID = existing.ID
	} else {
		profile.ID = m.id()
	}
	m.profiles[profile.UserID] = *profile
	return nil
}

func (m *memStore) FindProfileByUserID(ctx context.Context, userID int64) (*models.Profile, error) {
	p, ok := m.profiles[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	profile := p
	return &profile, nil
}

func (m *memStore) CreateTransaction(ctx context.Context, t *models.Transaction) error {
	t.ID = m.id()
	t.CreatedAt = time.Now()
	t.UpdatedAt = t.CreatedAt
	m.txs[t.ID] = *t
	return nil
}

func (m *memStore) FindTransactionByID(ctx context.Context, id int64) (*models.Transaction, error) {
	t, ok := m.txs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	tx := t
	return &tx, nil
}

func (m *memStore) UpdateTransaction(ctx context.Context, t *models.Transaction) error {
	if _, ok := m.txs[t.ID]; !ok {
		return repository.ErrNotFound
	}
	t.UpdatedAt = time.Now()
	m.txs[t.ID] = *t
	return nil
}

func (m *memStore) DeleteTransaction(ctx context.Context, id int64) error {
	if _, ok := m.txs[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.txs, id)
	return nil
}

func (m *memStore) ListTransactionsByUser(ctx context.Context, userID int64) ([]models.Transaction, error) {
	var out []models.Transaction
	for _, t := range m.txs {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memStore) ListTransactionsByUserAndDateRange(ctx context.Context, userID int64, start, end models.Date) ([]models.Transaction, error) {
	var out []models.Transaction
	for _, t := range m.txs {
		if t.UserID != userID {
			continue
		}
		if t.Date.Before(start.Time) || t.Date.After(end.Time) {
			continue
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date.Time) {
			return out[i].Date.Before(out[j].Date.Time)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *memStore) CreateSavingGoal(ctx context.Context, g *models.SavingGoal) error {
	g.ID = m.id()
	m.goals[g.ID] = *g
	return nil
}

func (m *memStore) FindSavingGoalByID(ctx context.Context, id int64) (*models.SavingGoal, error) {
	g, ok := m.goals[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	goal := g
	return &goal, nil
}

func (m *memStore) UpdateSavingGoal(ctx context.Context, g *models.SavingGoal) error {
	if _, ok := m.goals[g.ID]; !ok {
		return repository.ErrNotFound
	}
	m.goals[g.ID] = *g
	return nil
}

func (m *memStore) DeleteSavingGoal(ctx context.Context, id int64) error {
	if _, ok := m.goals[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.goals, id)
	return nil
}

func (m *memStore) ListSavingGoalsByUser(ctx context.Context, userID int64) ([]models.SavingGoal, error) {
	var out []models.SavingGoal
	for _, g := range m.goals {
		if g.UserID == userID {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memStore) MonthlyExpenseTotals(ctx context.Context, userID int64, year int) (map[int]decimal.Decimal, error) {
	totals := make(map[int]decimal.Decimal)
	for _, t := range m.txs {
		if t.UserID != userID || !t.Account.IsExpense() {
			continue
		}
		y, mo := t.Date.YearMonth()
		if y != year {
			continue
		}
		totals[mo] = totals[mo].Add(t.Amount)
	}
	return totals, nil
}

func (m *memStore) FindSummary(ctx context.Context, userID int64, year, month int) (*models.MonthlySummary, error) {
	s, ok := m.summaries[summaryKey(userID, year, month)]
	if !ok {
		return nil, repository.ErrNotFound
	}
	summary := s
	return &summary, nil
}

func (m *memStore) InsertSummaryIfAbsent(ctx context.Context, s *models.MonthlySummary) error {
	key := summaryKey(s.UserID, s.Year, s.Month)
	if _, ok := m.summaries[key]; ok {
		return nil
	}
	s.ID = m.id()
	m.summaries[key] = *s
	return nil
}

func (m *memStore) LockSummary(ctx context.Context, userID int64, year, month int) (*models.MonthlySummary, error) {
	return m.FindSummary(ctx, userID, year, month)
}

func (m *memStore) SaveSummary(ctx context.Context, s *models.MonthlySummary) error {
	for key, existing := range m.summaries {
		if existing.ID == s.ID {
			m.summaries[key] = *s
			return nil
		}
	}
	return repository.ErrNotFound
}

// seedSummary installs a summary row directly, bypassing the service
func (m *memStore) seedSummary(userID int64, year, month int, starting decimal.Decimal) {
	s := models.NewMonthlySummary(userID, year, month)
	s.ID = m.id()
	s.StartingBalance = starting
	s.RemainingBalance = starting
	m.summaries[summaryKey(userID, year, month)] = *s
}
