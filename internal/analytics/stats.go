package analytics

import (
	"encoding/json"
	"math"

	"tradejournal/internal/models"
)

// ProfitFactor is gross winning profit over gross losing amount. It is the
// one metric allowed to be +Inf (profitable history with zero losses), so
// it carries its own JSON encoding: "inf" as a string, numbers otherwise.
type ProfitFactor float64

func (p ProfitFactor) MarshalJSON() ([]byte, error) {
	if math.IsInf(float64(p), 1) {
		return []byte(`"inf"`), nil
	}
	return json.Marshal(float64(p))
}

func (p ProfitFactor) IsInf() bool {
	return math.IsInf(float64(p), 1)
}

type DashboardStats struct {
	TotalTrades   int          `json:"total_trades"`
	WinRate       float64      `json:"win_rate"`
	TotalProfit   float64      `json:"total_profit"`
	AverageProfit float64      `json:"average_profit"`
	AverageWin    float64      `json:"average_win"`
	AverageLoss   float64      `json:"average_loss"`
	LargestWin    float64      `json:"largest_win"`
	LargestLoss   float64      `json:"largest_loss"`
	ProfitFactor  ProfitFactor `json:"profit_factor"`
}

// ComputeDashboardStats folds a trade collection into aggregate performance
// numbers. A trade is a win iff profit > 0; break-even counts as a loss,
// the same tie-break used by the streak and violation calculators.
//
// Every division guards its zero denominator: empty input yields the zero
// value, and no NaN can escape. ProfitFactor is +Inf exactly when there are
// winnings and no losses, 0 when there are neither.
func ComputeDashboardStats(trades []models.Trade) DashboardStats {
	if len(trades) == 0 {
		return DashboardStats{}
	}

	var (
		totalProfit   float64
		totalWinnings float64
		totalLosses   float64
		wins          int
		losses        int
		largestWin    float64
		largestLoss   float64
	)

	for i := range trades {
		p := profitOf(&trades[i])
		totalProfit += p
		if p > 0 {
			wins++
			totalWinnings += p
			if p > largestWin {
				largestWin = p
			}
		} else {
			losses++
			totalLosses += -p
			if p < largestLoss {
				largestLoss = p
			}
		}
	}

	total := len(trades)
	stats := DashboardStats{
		TotalTrades:   total,
		WinRate:       float64(wins) / float64(total) * 100,
		TotalProfit:   totalProfit,
		AverageProfit: totalProfit / float64(total),
		LargestWin:    largestWin,
		LargestLoss:   largestLoss,
	}
	if wins > 0 {
		stats.AverageWin = totalWinnings / float64(wins)
	}
	if losses > 0 {
		stats.AverageLoss = totalLosses / float64(losses)
	}
	switch {
	case totalLosses > 0:
		stats.ProfitFactor = ProfitFactor(totalWinnings / totalLosses)
	case totalWinnings > 0:
		stats.ProfitFactor = ProfitFactor(math.Inf(1))
	}
	return stats
}
