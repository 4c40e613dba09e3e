package analytics

import (
	"testing"
	"time"

	"tradejournal/internal/models"
)

func TestMonthlyPerformanceChronological(t *testing.T) {
	trades := []models.Trade{
		profitTrade(time.Date(2025, time.March, 5, 0, 0, 0, 0, time.UTC), 10),
		profitTrade(time.Date(2025, time.January, 2, 0, 0, 0, 0, time.UTC), 40),
		profitTrade(time.Date(2025, time.March, 20, 0, 0, 0, 0, time.UTC), -4),
		profitTrade(time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC), 7),
	}
	points := MonthlyPerformance(trades)
	if len(points) != 3 {
		t.Fatalf("got %d buckets, want 3", len(points))
	}
	if points[0].Label != "12/2024" || !almostEqual(points[0].Profit, 7) {
		t.Fatalf("first bucket = %+v", points[0])
	}
	if points[1].Label != "1/2025" || !almostEqual(points[1].Profit, 40) {
		t.Fatalf("second bucket = %+v", points[1])
	}
	if points[2].Label != "3/2025" || !almostEqual(points[2].Profit, 6) {
		t.Fatalf("third bucket = %+v", points[2])
	}
}

func TestMonthlyPerformanceEmpty(t *testing.T) {
	if points := MonthlyPerformance(nil); len(points) != 0 {
		t.Fatalf("empty input produced %d buckets", len(points))
	}
}

func TestSymbolPerformanceOrdering(t *testing.T) {
	mk := func(symbol string, profit float64) models.Trade {
		trade := profitTrade(day(1), profit)
		trade.Symbol = symbol
		return trade
	}
	trades := []models.Trade{
		mk("EURUSD", 30),
		mk("GBPUSD", 50),
		mk("EURUSD", 20),
		mk("USDJPY", 50),
		mk("XAUUSD", -10),
	}
	points := SymbolPerformance(trades)
	if len(points) != 4 {
		t.Fatalf("got %d symbols, want 4", len(points))
	}
	// EURUSD sums to 50, tying GBPUSD and USDJPY; alphabetical tie-break.
	want := []string{"EURUSD", "GBPUSD", "USDJPY", "XAUUSD"}
	for i, label := range want {
		if points[i].Label != label {
			t.Fatalf("order = %v, want %v at %d", points[i].Label, label, i)
		}
	}
	if !almostEqual(points[0].Profit, 50) || !almostEqual(points[3].Profit, -10) {
		t.Fatalf("sums = %+v", points)
	}
}

func TestCalendarMonthFullGrid(t *testing.T) {
	trades := []models.Trade{
		profitTrade(time.Date(2025, time.February, 3, 9, 30, 0, 0, time.UTC), 15),
		profitTrade(time.Date(2025, time.February, 3, 14, 0, 0, 0, time.UTC), -5),
		profitTrade(time.Date(2025, time.February, 28, 0, 0, 0, 0, time.UTC), 8),
		// Outside the requested month; ignored.
		profitTrade(time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC), 99),
	}
	days := CalendarMonth(trades, 2025, time.February)
	if len(days) != 28 {
		t.Fatalf("February 2025 has %d cells, want 28", len(days))
	}
	if days[2].Day != 3 || days[2].Trades != 2 || !almostEqual(days[2].Profit, 10) {
		t.Fatalf("day 3 = %+v", days[2])
	}
	if days[27].Trades != 1 || !almostEqual(days[27].Profit, 8) {
		t.Fatalf("day 28 = %+v", days[27])
	}
	for _, cell := range days[3:27] {
		if cell.Trades != 0 || cell.Profit != 0 {
			t.Fatalf("empty day carries data: %+v", cell)
		}
	}
}

func TestCalendarMonthLeapYear(t *testing.T) {
	if days := CalendarMonth(nil, 2024, time.February); len(days) != 29 {
		t.Fatalf("February 2024 has %d cells, want 29", len(days))
	}
}

func TestCalendarMonthBucketsInUTC(t *testing.T) {
	// 23:30 on Feb 3 in UTC+5 is Feb 3 18:30 UTC; it stays on day 3.
	loc := time.FixedZone("UTC+5", 5*3600)
	trade := profitTrade(time.Date(2025, time.February, 3, 23, 30, 0, 0, loc), 12)
	days := CalendarMonth([]models.Trade{trade}, 2025, time.February)
	if days[2].Trades != 1 {
		t.Fatalf("expected the trade on day 3, got %+v", days[2])
	}

	// 02:00 on Mar 1 in UTC+5 is Feb 28 21:00 UTC; it lands on Feb 28.
	edge := profitTrade(time.Date(2025, time.March, 1, 2, 0, 0, 0, loc), 4)
	days = CalendarMonth([]models.Trade{edge}, 2025, time.February)
	if days[27].Trades != 1 {
		t.Fatalf("expected the trade on day 28, got %+v", days[27])
	}
}
