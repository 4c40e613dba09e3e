package analytics

import (
	"encoding/json"
	"math"

	"tradejournal/internal/models"
)

// Ratio is a reward-to-risk value that may be undefined (no stop loss, no
// take profit, or a zero risk basis). The explicit Valid flag removes the
// ambiguity between "ratio of zero" and "no data"; undefined ratios marshal
// to JSON null.
type Ratio struct {
	Value float64
	Valid bool
}

func DefinedRatio(v float64) Ratio {
	return Ratio{Value: v, Valid: true}
}

func (r Ratio) MarshalJSON() ([]byte, error) {
	if !r.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(r.Value)
}

func (r *Ratio) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*r = Ratio{}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*r = DefinedRatio(v)
	return nil
}

// TradeRRR holds a single trade's reward-to-risk ratios.
type TradeRRR struct {
	Planned  Ratio `json:"planned_rrr"`
	Achieved Ratio `json:"achieved_rrr"`
}

type RRRStats struct {
	AveragePlannedRRR     Ratio `json:"average_planned_rrr"`
	AverageAchievedRRR    Ratio `json:"average_achieved_rrr"`
	TradesWithoutStopLoss int   `json:"trades_without_stop_loss"`
}

// ComputeRRR derives a trade's planned and achieved reward-to-risk ratios.
// Both are undefined without a stop loss. The risk basis is always the
// actual stop distance, for the planned ratio too: risk is fixed by the
// stop regardless of outcome.
//
// Stop/target placement is not validated against direction; a stop on the
// wrong side of entry yields a defined but possibly meaningless ratio.
func ComputeRRR(t *models.Trade) TradeRRR {
	if t == nil {
		return TradeRRR{}
	}
	stop := decPtrFloat(t.StopLoss)
	if stop == 0 {
		return TradeRRR{}
	}

	entry := t.EntryPrice.InexactFloat64()
	exit := t.ExitPrice.InexactFloat64()
	isLong := t.Direction == models.DirectionLong

	risk := entry - stop
	reward := exit - entry
	if !isLong {
		risk = stop - entry
		reward = entry - exit
	}
	if risk == 0 {
		return TradeRRR{}
	}

	out := TradeRRR{Achieved: DefinedRatio(math.Abs(reward / risk))}
	if target := decPtrFloat(t.TakeProfit); target != 0 {
		planned := target - entry
		if !isLong {
			planned = entry - target
		}
		out.Planned = DefinedRatio(math.Abs(planned / risk))
	}
	return out
}

// ComputeRRRStats aggregates per-trade ratios. Trades without a stop loss
// increment TradesWithoutStopLoss and are excluded from both averages;
// each average covers only trades whose ratio is defined.
func ComputeRRRStats(trades []models.Trade) RRRStats {
	var stats RRRStats
	var (
		plannedSum   float64
		plannedCount int
		achievedSum  float64
		achievedCnt  int
	)
	for i := range trades {
		if decPtrFloat(trades[i].StopLoss) == 0 {
			stats.TradesWithoutStopLoss++
			continue
		}
		rrr := ComputeRRR(&trades[i])
		if rrr.Planned.Valid {
			plannedSum += rrr.Planned.Value
			plannedCount++
		}
		if rrr.Achieved.Valid {
			achievedSum += rrr.Achieved.Value
			achievedCnt++
		}
	}
	if plannedCount > 0 {
		stats.AveragePlannedRRR = DefinedRatio(plannedSum / float64(plannedCount))
	}
	if achievedCnt > 0 {
		stats.AverageAchievedRRR = DefinedRatio(achievedSum / float64(achievedCnt))
	}
	return stats
}
