package analytics

import (
	"github.com/shopspring/decimal"

	"tradejournal/internal/models"
)

// ProfitInput carries the price facts needed to realize a trade's P/L.
type ProfitInput struct {
	Symbol     string
	Direction  string
	EntryPrice float64
	ExitPrice  float64
	LotSize    float64
	Fees       float64
}

type ProfitResult struct {
	// PipDifference is the absolute pip distance, for display. The signed
	// value drives Profit.
	PipDifference    float64 `json:"pip_difference"`
	PipValue         float64 `json:"pip_value"`
	Profit           float64 `json:"profit"`
	ProfitPercentage float64 `json:"profit_percentage"`
}

// marginMultiplier approximates the notional controlled per lot-unit of
// entry price (a 1:100 leverage stand-in, not a precise margin model).
const marginMultiplier = 1000

// ComputeProfit is the canonical P/L formula: signed pip difference times
// the full-position pip value, minus fees. This is the only profit path in
// the system; the legacy fixed-multiplier aggregate variant was retired.
//
// Malformed input never panics: a zero pip size or margin basis saturates
// the affected output to 0.
func ComputeProfit(in ProfitInput) ProfitResult {
	spec := PipInfo(in.Symbol)

	priceDiff := in.ExitPrice - in.EntryPrice
	if in.Direction == models.DirectionShort {
		priceDiff = in.EntryPrice - in.ExitPrice
	}

	var signedPips float64
	if spec.PipSize > 0 {
		signedPips = priceDiff / spec.PipSize
	}

	pipValue := spec.PipValue(in.EntryPrice, in.LotSize)
	profit := signedPips*pipValue - in.Fees

	var pct float64
	if basis := in.EntryPrice * in.LotSize * marginMultiplier; basis != 0 {
		pct = profit / basis * 100
	}

	abs := signedPips
	if abs < 0 {
		abs = -abs
	}
	return ProfitResult{
		PipDifference:    abs,
		PipValue:         pipValue,
		Profit:           profit,
		ProfitPercentage: pct,
	}
}

// ProfitInputFromTrade lifts a stored trade's price facts into ProfitInput.
func ProfitInputFromTrade(t *models.Trade) ProfitInput {
	if t == nil {
		return ProfitInput{}
	}
	return ProfitInput{
		Symbol:     t.Symbol,
		Direction:  t.Direction,
		EntryPrice: t.EntryPrice.InexactFloat64(),
		ExitPrice:  t.ExitPrice.InexactFloat64(),
		LotSize:    t.LotSize.InexactFloat64(),
		Fees:       t.Fees.InexactFloat64(),
	}
}

// profitOf returns the trade's realized profit, trusting the cached column
// when it is set and recomputing from price facts for records that never
// had the derived fields written.
func profitOf(t *models.Trade) float64 {
	if t == nil {
		return 0
	}
	if !t.Profit.IsZero() {
		return t.Profit.InexactFloat64()
	}
	return ComputeProfit(ProfitInputFromTrade(t)).Profit
}

func decPtrFloat(d *decimal.Decimal) float64 {
	if d == nil {
		return 0
	}
	return d.InexactFloat64()
}
