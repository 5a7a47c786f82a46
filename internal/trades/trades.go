package trades

import (
	"context"
	"errors"

	"github.com/xtrntr/tradelog/internal/apperrors"
	"github.com/xtrntr/tradelog/internal/db"
	"github.com/xtrntr/tradelog/internal/models"

	"go.uber.org/zap"
)

// TradeStore is the storage TradeService needs
type TradeStore interface {
	InsertTrade(ctx context.Context, trade models.NewTrade) (models.Trade, error)
	QueryTrades(ctx context.Context, filter models.TradeFilter) ([]models.Trade, error)
	GetTradeByID(ctx context.Context, id int64) (models.Trade, error)
}

// Publisher receives every trade after it is stored
type Publisher interface {
	Publish(trade models.TradeRecord)
}

// TradeService records and looks up trades
type TradeService struct {
	store     TradeStore
	publisher Publisher
	logger    *zap.Logger
}

// NewTradeService creates a trade service; publisher may be nil
func NewTradeService(store TradeStore, publisher Publisher, logger *zap.Logger) *TradeService {
	return &TradeService{store: store, publisher: publisher, logger: logger}
}

// Create stores a validated trade and returns its id
func (s *TradeService) Create(ctx context.Context, trade models.NewTrade) (int64, error) {
	stored, err := s.store.InsertTrade(ctx, trade)
	if err != nil {
		s.logger.Error("trade insert failed", zap.Error(err))
		return 0, apperrors.Internal("Failed to create trade", err)
	}

	if s.publisher != nil {
		s.publisher.Publish(stored.Record())
	}
	return stored.ID, nil
}

// List returns trades ordered by ascending id
func (s *TradeService) List(ctx context.Context, filter models.TradeFilter) ([]models.TradeRecord, error) {
	rows, err := s.store.QueryTrades(ctx, filter)
	if err != nil {
		s.logger.Error("trade query failed", zap.Error(err))
		return nil, apperrors.Internal("Failed to fetch trades", err)
	}

	records := make([]models.TradeRecord, 0, len(rows))
	for _, t := range rows {
		records = append(records, t.Record())
	}
	return records, nil
}

// Get returns a single trade
func (s *TradeService) Get(ctx context.Context, id int64) (models.TradeRecord, error) {
	t, err := s.store.GetTradeByID(ctx, id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return models.TradeRecord{}, apperrors.NotFound("Trade not found")
		}
		s.logger.Error("trade lookup failed", zap.Int64("id", id), zap.Error(err))
		return models.TradeRecord{}, apperrors.Internal("Failed to fetch trade", err)
	}
	return t.Record(), nil
}
