package analytics

import (
	"testing"

	"tradejournal/internal/models"
)

func TestViolationStatsEmpty(t *testing.T) {
	stats := ComputeViolationStats(nil)
	if stats.TotalViolations != 0 || len(stats.ViolationFrequency) != 0 {
		t.Fatalf("empty input should yield zero stats, got %+v", stats)
	}
}

func TestViolationStatsWinRateSplit(t *testing.T) {
	winner := profitTrade(day(1), 50)
	winner.Violations = violationsJSON(t, []models.TradeViolation{
		{ID: "no-stop-loss", Label: "No stop loss"},
	})
	loser := profitTrade(day(2), -20)

	stats := ComputeViolationStats([]models.Trade{winner, loser})
	if stats.TotalViolations != 1 {
		t.Fatalf("total violations = %d, want 1", stats.TotalViolations)
	}
	if !almostEqual(stats.WinRateWithViolations, 100) {
		t.Fatalf("win rate with violations = %v, want 100", stats.WinRateWithViolations)
	}
	if !almostEqual(stats.WinRateWithoutViolations, 0) {
		t.Fatalf("win rate without violations = %v, want 0", stats.WinRateWithoutViolations)
	}
	if stats.MostBrokenRule.Rule != "No stop loss" || stats.MostBrokenRule.Count != 1 {
		t.Fatalf("most broken = %+v", stats.MostBrokenRule)
	}
}

func TestViolationStatsDeduplicatesWithinTrade(t *testing.T) {
	trade := profitTrade(day(1), 10)
	trade.Violations = violationsJSON(t, []models.TradeViolation{
		{ID: "overtraded", Label: "Overtraded"},
		{ID: "overtraded", Label: "Overtraded"},
	})
	stats := ComputeViolationStats([]models.Trade{trade})
	if stats.TotalViolations != 1 {
		t.Fatalf("duplicate id within one trade counted twice: %d", stats.TotalViolations)
	}
	if len(stats.ViolationFrequency) != 1 || stats.ViolationFrequency[0].Count != 1 {
		t.Fatalf("frequency = %+v", stats.ViolationFrequency)
	}
}

func TestViolationStatsFrequencyOrdering(t *testing.T) {
	mk := func(n int, ids ...string) models.Trade {
		trade := profitTrade(day(n), 1)
		vs := make([]models.TradeViolation, len(ids))
		for i, id := range ids {
			vs[i] = models.TradeViolation{ID: id, Label: id}
		}
		trade.Violations = violationsJSON(t, vs)
		return trade
	}
	trades := []models.Trade{
		mk(1, "chased-price", "entered-early"),
		mk(2, "chased-price"),
		mk(3, "entered-early"),
		mk(4, "no-stop-loss"),
	}
	stats := ComputeViolationStats(trades)
	got := make([]string, len(stats.ViolationFrequency))
	for i, rc := range stats.ViolationFrequency {
		got[i] = rc.RuleID
	}
	// chased-price and entered-early tie at 2; rule id breaks the tie.
	want := []string{"chased-price", "entered-early", "no-stop-loss"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("frequency order = %v, want %v", got, want)
		}
	}
	if stats.MostBrokenRule.Rule != "chased-price" || stats.MostBrokenRule.Count != 2 {
		t.Fatalf("most broken = %+v", stats.MostBrokenRule)
	}
}

func TestViolationStatsBreakEvenIsLoss(t *testing.T) {
	trade := profitTrade(day(1), 0)
	trade.Violations = violationsJSON(t, []models.TradeViolation{
		{ID: "traded-during-news", Label: "Traded during news"},
	})
	stats := ComputeViolationStats([]models.Trade{trade})
	if stats.WinRateWithViolations != 0 {
		t.Fatalf("break-even trade counted as win: %v", stats.WinRateWithViolations)
	}
}
