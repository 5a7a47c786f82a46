package db

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/xtrntr/tradelog/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	// ErrNotFound is returned when a lookup by id matches no row
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when an insert violates a unique constraint
	ErrDuplicate = errors.New("duplicate key")
)

// Pool is the subset of *pgxpool.Pool the store uses
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Close()
}

// DB wraps a PostgreSQL connection pool
type DB struct {
	Pool Pool
}

// NewDB initializes a new database connection pool
func NewDB(ctx context.Context, connString string) (*DB, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to reach database: %w", err)
	}

	return &DB{Pool: pool}, nil
}

// Close closes the database connection pool
func (db *DB) Close() {
	db.Pool.Close()
}

// Migrate applies a schema script. Scripts use IF NOT EXISTS so reruns are no-ops.
func (db *DB) Migrate(ctx context.Context, script string) error {
	if _, err := db.Pool.Exec(ctx, script); err != nil {
		return fmt.Errorf("failed to apply migration: %w", err)
	}
	return nil
}

// FindUserByEmail returns the user with the given email, or nil if none exists
func (db *DB) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user := &models.User{}
	err := db.Pool.QueryRow(ctx,
		"SELECT id, email, password FROM users WHERE email = $1",
		email).Scan(&user.ID, &user.Email, &user.PasswordHash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// InsertUser inserts a new user and returns its id
func (db *DB) InsertUser(ctx context.Context, email, passwordHash string) (int64, error) {
	var id int64
	err := db.Pool.QueryRow(ctx,
		"INSERT INTO users (email, password) VALUES ($1, $2) RETURNING id",
		email, passwordHash).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicate
		}
		return 0, fmt.Errorf("failed to create user: %w", err)
	}
	return id, nil
}

// InsertTrade inserts a new trade and returns the stored row
func (db *DB) InsertTrade(ctx context.Context, trade models.NewTrade) (models.Trade, error) {
	var t models.Trade
	err := db.Pool.QueryRow(ctx,
		"INSERT INTO trades (type, user_id, symbol, shares, price) VALUES ($1, $2, $3, $4, $5) "+
			"RETURNING id, type, user_id, symbol, shares, price, timestamp",
		trade.Type, trade.UserID, trade.Symbol, trade.Shares, trade.Price).Scan(
		&t.ID, &t.Type, &t.UserID, &t.Symbol, &t.Shares, &t.Price, &t.Timestamp)
	if err != nil {
		return models.Trade{}, fmt.Errorf("failed to create trade: %w", err)
	}
	return t, nil
}

// QueryTrades lists trades ordered by id, narrowed by the filter's set fields
func (db *DB) QueryTrades(ctx context.Context, filter models.TradeFilter) ([]models.Trade, error) {
	query, args := buildTradesQuery(filter)
	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query trades: %w", err)
	}
	defer rows.Close()

	trades := []models.Trade{}
	for rows.Next() {
		var t models.Trade
		if err := rows.Scan(&t.ID, &t.Type, &t.UserID, &t.Symbol, &t.Shares, &t.Price, &t.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan trade: %w", err)
		}
		trades = append(trades, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read trades: %w", err)
	}
	return trades, nil
}

// GetTradeByID retrieves a single trade
func (db *DB) GetTradeByID(ctx context.Context, id int64) (models.Trade, error) {
	var t models.Trade
	err := db.Pool.QueryRow(ctx,
		"SELECT "+tradeColumns+" FROM trades WHERE id = $1",
		id).Scan(&t.ID, &t.Type, &t.UserID, &t.Symbol, &t.Shares, &t.Price, &t.Timestamp)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Trade{}, ErrNotFound
		}
		return models.Trade{}, fmt.Errorf("failed to get trade: %w", err)
	}
	return t, nil
}

const tradeColumns = "id, type, user_id, symbol, shares, price, timestamp"

func buildTradesQuery(filter models.TradeFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	if filter.Type != nil {
		args = append(args, *filter.Type)
		conds = append(conds, "type = $"+strconv.Itoa(len(args)))
	}
	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		conds = append(conds, "user_id = $"+strconv.Itoa(len(args)))
	}

	var b strings.Builder
	b.WriteString("SELECT " + tradeColumns + " FROM trades")
	if len(conds) > 0 {
		b.WriteString(" WHERE " + strings.Join(conds, " AND "))
	}
	b.WriteString(" ORDER BY id ASC")
	return b.String(), args
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
