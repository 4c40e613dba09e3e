package analytics

import (
	"fmt"
	"sort"
	"time"

	"tradejournal/internal/models"
)

// SeriesPoint is one labelled bucket of a performance breakdown.
type SeriesPoint struct {
	Label  string  `json:"label"`
	Profit float64 `json:"profit"`
}

// MonthlyPerformance buckets profit by calendar month, labelled "M/YYYY",
// oldest first.
func MonthlyPerformance(trades []models.Trade) []SeriesPoint {
	type bucket struct {
		year  int
		month time.Month
		sum   float64
	}
	byKey := map[string]*bucket{}
	for i := range trades {
		d := trades[i].Date
		key := fmt.Sprintf("%d/%d", d.Month(), d.Year())
		b, ok := byKey[key]
		if !ok {
			b = &bucket{year: d.Year(), month: d.Month()}
			byKey[key] = b
		}
		b.sum += profitOf(&trades[i])
	}

	buckets := make([]*bucket, 0, len(byKey))
	for _, b := range byKey {
		buckets = append(buckets, b)
	}
	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].year != buckets[j].year {
			return buckets[i].year < buckets[j].year
		}
		return buckets[i].month < buckets[j].month
	})

	out := make([]SeriesPoint, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, SeriesPoint{
			Label:  fmt.Sprintf("%d/%d", b.month, b.year),
			Profit: b.sum,
		})
	}
	return out
}

// SymbolPerformance buckets profit by symbol, most profitable first; ties
// break alphabetically.
func SymbolPerformance(trades []models.Trade) []SeriesPoint {
	sums := map[string]float64{}
	for i := range trades {
		sums[trades[i].Symbol] += profitOf(&trades[i])
	}
	out := make([]SeriesPoint, 0, len(sums))
	for symbol, sum := range sums {
		out = append(out, SeriesPoint{Label: symbol, Profit: sum})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Profit != out[j].Profit {
			return out[i].Profit > out[j].Profit
		}
		return out[i].Label < out[j].Label
	})
	return out
}

// CalendarDay is one cell of the trading calendar.
type CalendarDay struct {
	Day    int     `json:"day"`
	Trades int     `json:"trades"`
	Profit float64 `json:"profit"`
}

// CalendarMonth aggregates trade count and profit for every day of the
// given month, including days with no trades. Dates are bucketed in UTC.
func CalendarMonth(trades []models.Trade, year int, month time.Month) []CalendarDay {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	days := make([]CalendarDay, daysInMonth)
	for i := range days {
		days[i].Day = i + 1
	}
	for i := range trades {
		d := trades[i].Date.UTC()
		if d.Year() != year || d.Month() != month {
			continue
		}
		cell := &days[d.Day()-1]
		cell.Trades++
		cell.Profit += profitOf(&trades[i])
	}
	return days
}
