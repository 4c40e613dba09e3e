package analytics

import (
	"strings"
	"time"

	"tradejournal/internal/models"
)

type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// FilterOptions narrows a trade snapshot for a dashboard or report view.
// Zero-valued fields match everything; nil profit bounds are unbounded.
// Filters never persist and never mutate the underlying collection.
type FilterOptions struct {
	DateRange  *DateRange `json:"date_range"`
	Symbols    []string   `json:"symbols"`
	Direction  string     `json:"direction"`
	Strategies []string   `json:"strategies"`
	Tags       []string   `json:"tags"`
	MinProfit  *float64   `json:"min_profit"`
	MaxProfit  *float64   `json:"max_profit"`
}

func (o FilterOptions) IsZero() bool {
	return o.DateRange == nil && len(o.Symbols) == 0 && o.Direction == "" &&
		len(o.Strategies) == 0 && len(o.Tags) == 0 &&
		o.MinProfit == nil && o.MaxProfit == nil
}

// ApplyFilter returns the trades matching every set criterion. The result
// is a fresh slice; the input is read-only.
func ApplyFilter(trades []models.Trade, opts FilterOptions) []models.Trade {
	out := make([]models.Trade, 0, len(trades))
	for i := range trades {
		if matches(&trades[i], opts) {
			out = append(out, trades[i])
		}
	}
	return out
}

func matches(t *models.Trade, opts FilterOptions) bool {
	if opts.DateRange != nil {
		if t.Date.Before(opts.DateRange.Start) || t.Date.After(opts.DateRange.End) {
			return false
		}
	}
	if len(opts.Symbols) > 0 && !containsFold(opts.Symbols, t.Symbol) {
		return false
	}
	if opts.Direction != "" && t.Direction != opts.Direction {
		return false
	}
	if len(opts.Strategies) > 0 && !containsFold(opts.Strategies, t.Strategy) {
		return false
	}
	if len(opts.Tags) > 0 && !anyTagMatch(t.TagList(), opts.Tags) {
		return false
	}
	if opts.MinProfit != nil || opts.MaxProfit != nil {
		p := profitOf(t)
		if opts.MinProfit != nil && p < *opts.MinProfit {
			return false
		}
		if opts.MaxProfit != nil && p > *opts.MaxProfit {
			return false
		}
	}
	return true
}

func containsFold(set []string, val string) bool {
	for _, s := range set {
		if strings.EqualFold(s, val) {
			return true
		}
	}
	return false
}

func anyTagMatch(tags, wanted []string) bool {
	for _, tag := range tags {
		if containsFold(wanted, tag) {
			return true
		}
	}
	return false
}
