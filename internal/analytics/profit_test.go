package analytics

import (
	"testing"

	"tradejournal/internal/models"
)

func TestComputeProfitLongForex(t *testing.T) {
	// 50 pips on 1 lot at $10/pip, minus $7 fees.
	res := ComputeProfit(ProfitInput{
		Symbol:     "EURUSD",
		Direction:  models.DirectionLong,
		EntryPrice: 1.1000,
		ExitPrice:  1.1050,
		LotSize:    1,
		Fees:       7,
	})
	if !almostEqual(res.PipDifference, 50) {
		t.Fatalf("pip difference = %v, want 50", res.PipDifference)
	}
	if !almostEqual(res.Profit, 50*10-7) {
		t.Fatalf("profit = %v, want %v", res.Profit, 50*10-7.0)
	}
	wantPct := (50*10 - 7.0) / (1.1 * 1 * 1000) * 100
	if !almostEqual(res.ProfitPercentage, wantPct) {
		t.Fatalf("profit pct = %v, want %v", res.ProfitPercentage, wantPct)
	}
}

func TestComputeProfitShortLoss(t *testing.T) {
	// Short that moved against the position: price rose 30 pips.
	res := ComputeProfit(ProfitInput{
		Symbol:     "GBPUSD",
		Direction:  models.DirectionShort,
		EntryPrice: 1.2500,
		ExitPrice:  1.2530,
		LotSize:    0.5,
	})
	if !almostEqual(res.PipDifference, 30) {
		t.Fatalf("pip difference = %v, want 30", res.PipDifference)
	}
	if !almostEqual(res.Profit, -30*10*0.5) {
		t.Fatalf("profit = %v, want %v", res.Profit, -30*10*0.5)
	}
}

func TestComputeProfitJPYDynamicPipValue(t *testing.T) {
	res := ComputeProfit(ProfitInput{
		Symbol:     "USDJPY",
		Direction:  models.DirectionLong,
		EntryPrice: 145.00,
		ExitPrice:  145.50,
		LotSize:    1,
	})
	pipValue := 0.01 / 145.0 * 100000
	if !almostEqual(res.PipValue, pipValue) {
		t.Fatalf("pip value = %v, want %v", res.PipValue, pipValue)
	}
	if !almostEqual(res.Profit, 50*pipValue) {
		t.Fatalf("profit = %v, want %v", res.Profit, 50*pipValue)
	}
}

func TestComputeProfitGold(t *testing.T) {
	res := ComputeProfit(ProfitInput{
		Symbol:     "XAUUSD",
		Direction:  models.DirectionLong,
		EntryPrice: 2000.0,
		ExitPrice:  2005.0,
		LotSize:    1,
	})
	// 5.0 move at 0.1 pip size is 50 pips at $10/pip.
	if !almostEqual(res.PipDifference, 50) {
		t.Fatalf("pip difference = %v, want 50", res.PipDifference)
	}
	if !almostEqual(res.Profit, 500) {
		t.Fatalf("profit = %v, want 500", res.Profit)
	}
}

func TestComputeProfitZeroEntrySaturates(t *testing.T) {
	// Malformed input must not produce NaN or Inf, per the never-crash
	// dashboard policy: the percentage saturates to 0.
	res := ComputeProfit(ProfitInput{
		Symbol:    "EURUSD",
		Direction: models.DirectionLong,
		ExitPrice: 1.2,
		LotSize:   1,
	})
	if res.ProfitPercentage != 0 {
		t.Fatalf("profit pct = %v, want 0", res.ProfitPercentage)
	}
}

func TestProfitOfRecomputesMissingDerived(t *testing.T) {
	// A record whose cached profit was never written is recomputed from
	// its price facts.
	trade := models.Trade{
		Symbol:     "EURUSD",
		Direction:  models.DirectionLong,
		EntryPrice: dec(1.1000),
		ExitPrice:  dec(1.1050),
		LotSize:    dec(1),
	}
	if got := profitOf(&trade); !almostEqual(got, 500) {
		t.Fatalf("profitOf = %v, want 500", got)
	}
}
