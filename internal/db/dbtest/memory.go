// Package dbtest provides an in-memory store with the same method set as
// db.DB, for service and handler tests.
package dbtest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/xtrntr/tradelog/internal/db"
	"github.com/xtrntr/tradelog/internal/models"
)

// Memory is a goroutine-safe in-memory store
type Memory struct {
	mu     sync.Mutex
	users  []models.User
	trades []models.Trade
	now    func() time.Time

	// Err, when set, is returned by every method
	Err error
}

// NewMemory returns an empty store
func NewMemory() *Memory {
	return &Memory{now: time.Now}
}

// SetClock overrides the time assigned to inserted trades
func (m *Memory) SetClock(now func() time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = now
}

func (m *Memory) FindUserByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	for _, u := range m.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (m *Memory) InsertUser(_ context.Context, email, passwordHash string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return 0, m.Err
	}
	for _, u := range m.users {
		if u.Email == email {
			return 0, db.ErrDuplicate
		}
	}
	id := int64(len(m.users) + 1)
	m.users = append(m.users, models.User{ID: id, Email: email, PasswordHash: passwordHash})
	return id, nil
}

// UserCount reports how many users are stored
func (m *Memory) UserCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.users)
}

func (m *Memory) InsertTrade(_ context.Context, trade models.NewTrade) (models.Trade, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return models.Trade{}, m.Err
	}
	t := models.Trade{
		ID:        int64(len(m.trades) + 1),
		Type:      trade.Type,
		UserID:    trade.UserID,
		Symbol:    trade.Symbol,
		Shares:    trade.Shares,
		Price:     trade.Price,
		Timestamp: m.now(),
	}
	m.trades = append(m.trades, t)
	return t, nil
}

func (m *Memory) QueryTrades(_ context.Context, filter models.TradeFilter) ([]models.Trade, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	out := []models.Trade{}
	for _, t := range m.trades {
		if filter.Type != nil && t.Type != *filter.Type {
			continue
		}
		if filter.UserID != nil && t.UserID != *filter.UserID {
			continue
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) GetTradeByID(_ context.Context, id int64) (models.Trade, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return models.Trade{}, m.Err
	}
	for _, t := range m.trades {
		if t.ID == id {
			return t, nil
		}
	}
	return models.Trade{}, db.ErrNotFound
}
