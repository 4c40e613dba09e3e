package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"tradejournal/internal/analytics"
	"tradejournal/internal/repository"
)

// BackfillService recomputes cached derived fields for trades that were
// imported or written before the server-side calculator existed.
type BackfillService struct {
	Repo      repository.TradeRepository
	Logger    *zap.Logger
	BatchSize int
}

func (s *BackfillService) Run(ctx context.Context, interval time.Duration) error {
	if s == nil || s.Repo == nil {
		return nil
	}
	if interval <= 0 {
		interval = time.Hour
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		if _, err := s.RunOnce(ctx); err != nil && s.Logger != nil {
			s.Logger.Warn("derived backfill run failed", zap.Error(err))
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
		}
	}
}

// RunOnce processes one batch and returns how many rows were updated.
func (s *BackfillService) RunOnce(ctx context.Context) (int, error) {
	if s == nil || s.Repo == nil {
		return 0, nil
	}
	batch := s.BatchSize
	if batch <= 0 {
		batch = 200
	}
	items, err := s.Repo.ListTradesMissingDerived(ctx, batch)
	if err != nil {
		return 0, err
	}
	updated := 0
	for i := range items {
		res := analytics.ComputeProfit(analytics.ProfitInputFromTrade(&items[i]))
		if res.Profit == 0 {
			continue
		}
		err := s.Repo.UpdateTradeDerived(ctx, items[i].ID,
			decimal.NewFromFloat(res.Profit),
			decimal.NewFromFloat(res.ProfitPercentage))
		if err != nil {
			return updated, err
		}
		updated++
	}
	if updated > 0 && s.Logger != nil {
		s.Logger.Info("derived backfill updated trades", zap.Int("count", updated))
	}
	return updated, nil
}
