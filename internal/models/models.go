package models

import "time"

// Trade types accepted by the API and stored in trades.type
const (
	TradeTypeBuy  = "buy"
	TradeTypeSell = "sell"
)

// User represents a registered user
type User struct {
	ID           int64
	Email        string
	PasswordHash string
}

// NewTrade holds the fields a client submits for a trade
type NewTrade struct {
	Type   string
	UserID int64
	Symbol string
	Shares int
	Price  float64
}

// Trade represents a stored trade row
type Trade struct {
	ID        int64
	Type      string // "buy" or "sell"
	UserID    int64  // not checked against users
	Symbol    string
	Shares    int // 1..100
	Price     float64
	Timestamp time.Time // assigned by the store
}

// TradeRecord is a trade as returned to clients, with Unix-second timestamp
type TradeRecord struct {
	ID        int64   `json:"id"`
	Type      string  `json:"type"`
	UserID    int64   `json:"user_id"`
	Symbol    string  `json:"symbol"`
	Shares    int     `json:"shares"`
	Price     float64 `json:"price"`
	Timestamp int64   `json:"timestamp"`
}

// Record converts a stored trade to its client shape.
// time.Time.Unix floors to whole seconds.
func (t Trade) Record() TradeRecord {
	return TradeRecord{
		ID:        t.ID,
		Type:      t.Type,
		UserID:    t.UserID,
		Symbol:    t.Symbol,
		Shares:    t.Shares,
		Price:     t.Price,
		Timestamp: t.Timestamp.Unix(),
	}
}

// TradeFilter narrows a trade listing; nil fields impose no constraint
type TradeFilter struct {
	Type   *string
	UserID *int64
}
