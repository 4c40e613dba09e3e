package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"tradejournal/internal/models"
)

// TradeRepository is the persistence surface for journal trades. Reads are
// always scoped to a user id; a Get on a missing or foreign row yields
// (nil, nil).
type TradeRepository interface {
	InsertTrade(ctx context.Context, item *models.Trade) error
	GetTradeByID(ctx context.Context, userID string, id uint64) (*models.Trade, error)
	UpdateTrade(ctx context.Context, item *models.Trade) error
	DeleteTrade(ctx context.Context, userID string, id uint64) (int64, error)
	ListTrades(ctx context.Context, params ListTradesParams) ([]models.Trade, error)
	CountTrades(ctx context.Context, params ListTradesParams) (int64, error)

	// Backfill support: rows whose cached profit was never computed.
	ListTradesMissingDerived(ctx context.Context, limit int) ([]models.Trade, error)
	UpdateTradeDerived(ctx context.Context, id uint64, profit, profitPercentage decimal.Decimal) error
}

type ListTradesParams struct {
	UserID    string
	Limit     int
	Offset    int
	Symbol    *string
	Direction *string
	Strategy  *string
	Since     *time.Time
	Until     *time.Time
	MinProfit *decimal.Decimal
	MaxProfit *decimal.Decimal
	Tags      []string
	OrderBy   string
	Asc       *bool
}
