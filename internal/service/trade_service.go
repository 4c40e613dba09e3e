package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"tradejournal/internal/analytics"
	"tradejournal/internal/models"
	"tradejournal/internal/repository"
)

// TradeService owns trade writes: it normalizes input and keeps the cached
// derived fields (profit, profit percentage) consistent with the price
// facts on every create and update.
type TradeService struct {
	Repo   repository.TradeRepository
	Logger *zap.Logger
}

func (s *TradeService) Create(ctx context.Context, userID string, item *models.Trade) error {
	if s == nil || s.Repo == nil || item == nil {
		return nil
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return fmt.Errorf("user id is required")
	}
	if err := normalizeTrade(item); err != nil {
		return err
	}
	item.ID = 0
	item.UserID = userID
	now := time.Now().UTC()
	item.CreatedAt = now
	item.UpdatedAt = now
	applyDerived(item)
	return s.Repo.InsertTrade(ctx, item)
}

// Update replaces the stored trade with the submitted one, keeping owner
// and creation time. Returns (nil, nil) when the row does not exist or
// belongs to someone else.
func (s *TradeService) Update(ctx context.Context, userID string, id uint64, item *models.Trade) (*models.Trade, error) {
	if s == nil || s.Repo == nil || item == nil {
		return nil, nil
	}
	existing, err := s.Repo.GetTradeByID(ctx, userID, id)
	if err != nil || existing == nil {
		return nil, err
	}
	if err := normalizeTrade(item); err != nil {
		return nil, err
	}
	item.ID = existing.ID
	item.UserID = existing.UserID
	item.CreatedAt = existing.CreatedAt
	applyDerived(item)
	if err := s.Repo.UpdateTrade(ctx, item); err != nil {
		return nil, err
	}
	return s.Repo.GetTradeByID(ctx, userID, id)
}

func (s *TradeService) Get(ctx context.Context, userID string, id uint64) (*models.Trade, error) {
	if s == nil || s.Repo == nil {
		return nil, nil
	}
	return s.Repo.GetTradeByID(ctx, userID, id)
}

func (s *TradeService) Delete(ctx context.Context, userID string, id uint64) (bool, error) {
	if s == nil || s.Repo == nil {
		return false, nil
	}
	affected, err := s.Repo.DeleteTrade(ctx, userID, id)
	return affected > 0, err
}

func (s *TradeService) List(ctx context.Context, params repository.ListTradesParams) ([]models.Trade, int64, error) {
	if s == nil || s.Repo == nil {
		return nil, 0, nil
	}
	items, err := s.Repo.ListTrades(ctx, params)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.Repo.CountTrades(ctx, params)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func normalizeTrade(item *models.Trade) error {
	item.Symbol = strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(item.Symbol), "/", ""))
	if item.Symbol == "" {
		return fmt.Errorf("symbol is required")
	}
	item.Direction = strings.ToLower(strings.TrimSpace(item.Direction))
	if item.Direction != models.DirectionLong && item.Direction != models.DirectionShort {
		return fmt.Errorf("direction must be %q or %q", models.DirectionLong, models.DirectionShort)
	}
	if item.Date.IsZero() {
		return fmt.Errorf("date is required")
	}
	if item.Rating < 0 || item.Rating > 5 {
		return fmt.Errorf("rating must be between 0 and 5")
	}
	return nil
}

func applyDerived(item *models.Trade) {
	res := analytics.ComputeProfit(analytics.ProfitInputFromTrade(item))
	item.Profit = decimal.NewFromFloat(res.Profit)
	item.ProfitPercentage = decimal.NewFromFloat(res.ProfitPercentage)
}
