package service

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"tradejournal/internal/analytics"
	"tradejournal/internal/models"
	"tradejournal/internal/repository"
)

// ReportService renders a user's journal as a downloadable report.
type ReportService struct {
	Repo repository.TradeRepository
}

// Report bundles the trades with every derived view, ready to serialize.
type Report struct {
	GeneratedAt time.Time                `json:"generated_at"`
	TotalTrades int                      `json:"total_trades"`
	Stats       analytics.DashboardStats `json:"stats"`
	Streaks     analytics.StreakInfo     `json:"streaks"`
	RRR         analytics.RRRStats       `json:"rrr"`
	Violations  analytics.ViolationStats `json:"violations"`
	Trades      []models.Trade           `json:"trades"`
}

func (s *ReportService) Build(ctx context.Context, userID string) (*Report, error) {
	if s == nil || s.Repo == nil {
		return nil, nil
	}
	trades, err := s.Repo.ListTrades(ctx, repository.ListTradesParams{
		UserID:  userID,
		Limit:   500,
		OrderBy: "date",
		Asc:     boolPtr(true),
	})
	if err != nil {
		return nil, err
	}
	return &Report{
		GeneratedAt: time.Now().UTC(),
		TotalTrades: len(trades),
		Stats:       analytics.ComputeDashboardStats(trades),
		Streaks:     analytics.ComputeStreaks(trades),
		RRR:         analytics.ComputeRRRStats(trades),
		Violations:  analytics.ComputeViolationStats(trades),
		Trades:      trades,
	}, nil
}

func (r *Report) JSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// Text renders the plain-text report: an overview block followed by one
// line per trade, oldest first.
func (r *Report) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "TRADING JOURNAL REPORT\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", r.GeneratedAt.Format("2006-01-02 15:04 UTC"))

	fmt.Fprintf(&b, "OVERVIEW\n")
	fmt.Fprintf(&b, "  Total trades:   %d\n", r.Stats.TotalTrades)
	fmt.Fprintf(&b, "  Win rate:       %.1f%%\n", r.Stats.WinRate)
	fmt.Fprintf(&b, "  Total profit:   %.2f\n", r.Stats.TotalProfit)
	fmt.Fprintf(&b, "  Average win:    %.2f\n", r.Stats.AverageWin)
	fmt.Fprintf(&b, "  Average loss:   %.2f\n", r.Stats.AverageLoss)
	fmt.Fprintf(&b, "  Largest win:    %.2f\n", r.Stats.LargestWin)
	fmt.Fprintf(&b, "  Largest loss:   %.2f\n", r.Stats.LargestLoss)
	if r.Stats.ProfitFactor.IsInf() {
		fmt.Fprintf(&b, "  Profit factor:  inf\n")
	} else {
		fmt.Fprintf(&b, "  Profit factor:  %.2f\n", float64(r.Stats.ProfitFactor))
	}

	fmt.Fprintf(&b, "\nSTREAKS\n")
	fmt.Fprintf(&b, "  Current streak: %d\n", r.Streaks.CurrentStreak)
	fmt.Fprintf(&b, "  Longest win:    %d\n", r.Streaks.LongestWinStreak)
	fmt.Fprintf(&b, "  Longest loss:   %d\n", r.Streaks.LongestLossStreak)
	if r.Streaks.IsOnTilt {
		fmt.Fprintf(&b, "  WARNING: tilt detected, consider a break\n")
	}

	fmt.Fprintf(&b, "\nRISK/REWARD\n")
	fmt.Fprintf(&b, "  Avg planned RRR:  %s\n", ratioText(r.RRR.AveragePlannedRRR))
	fmt.Fprintf(&b, "  Avg achieved RRR: %s\n", ratioText(r.RRR.AverageAchievedRRR))
	fmt.Fprintf(&b, "  Trades w/o stop:  %d\n", r.RRR.TradesWithoutStopLoss)

	fmt.Fprintf(&b, "\nRULE VIOLATIONS\n")
	fmt.Fprintf(&b, "  Total violations: %d\n", r.Violations.TotalViolations)
	if r.Violations.MostBrokenRule.Count > 0 {
		fmt.Fprintf(&b, "  Most broken:      %s (%d)\n",
			r.Violations.MostBrokenRule.Rule, r.Violations.MostBrokenRule.Count)
	}
	fmt.Fprintf(&b, "  Win rate with violations:    %.1f%%\n", r.Violations.WinRateWithViolations)
	fmt.Fprintf(&b, "  Win rate without violations: %.1f%%\n", r.Violations.WinRateWithoutViolations)

	fmt.Fprintf(&b, "\nTRADES\n")
	for i := range r.Trades {
		t := &r.Trades[i]
		fmt.Fprintf(&b, "  %s  %-10s %-5s  entry %s  exit %s  profit %s\n",
			t.Date.Format("2006-01-02"),
			t.Symbol,
			t.Direction,
			t.EntryPrice.String(),
			t.ExitPrice.String(),
			t.Profit.StringFixed(2))
	}
	return b.String()
}

var csvHeader = []string{
	"date", "symbol", "direction", "entry_price", "exit_price",
	"stop_loss", "take_profit", "lot_size", "fees",
	"profit", "profit_percentage", "strategy", "rating", "tags", "notes",
}

// CSV renders one row per trade with a fixed header, suitable for
// spreadsheet import.
func (r *Report) CSV() ([]byte, error) {
	var b strings.Builder
	w := csv.NewWriter(&b)
	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for i := range r.Trades {
		t := &r.Trades[i]
		row := []string{
			t.Date.Format(time.RFC3339),
			t.Symbol,
			t.Direction,
			t.EntryPrice.String(),
			t.ExitPrice.String(),
			decText(t.StopLoss),
			decText(t.TakeProfit),
			t.LotSize.String(),
			t.Fees.String(),
			t.Profit.String(),
			t.ProfitPercentage.String(),
			t.Strategy,
			strconv.Itoa(t.Rating),
			strings.Join(t.TagList(), "|"),
			t.Notes,
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return []byte(b.String()), nil
}

func ratioText(r analytics.Ratio) string {
	if !r.Valid {
		return "n/a"
	}
	return strconv.FormatFloat(r.Value, 'f', 2, 64)
}

func decText(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.String()
}

func boolPtr(v bool) *bool { return &v }
