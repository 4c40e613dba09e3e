package handler

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"tradejournal/internal/analytics"
	"tradejournal/internal/repository"
)

func intQuery(c *gin.Context, key string, def int) int {
	if val := c.Query(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return def
}

func stringQueryPtr(c *gin.Context, key string) *string {
	if val := strings.TrimSpace(c.Query(key)); val != "" {
		return &val
	}
	return nil
}

func floatQueryPtr(c *gin.Context, key string) *float64 {
	if val := strings.TrimSpace(c.Query(key)); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return &f
		}
	}
	return nil
}

func decimalQueryPtr(c *gin.Context, key string) *decimal.Decimal {
	if val := strings.TrimSpace(c.Query(key)); val != "" {
		if d, err := decimal.NewFromString(val); err == nil {
			return &d
		}
	}
	return nil
}

func timeQueryPtr(c *gin.Context, key string) *time.Time {
	if val := strings.TrimSpace(c.Query(key)); val != "" {
		if ts, err := time.Parse(time.RFC3339, val); err == nil {
			t := ts.UTC()
			return &t
		}
		if ts, err := time.Parse("2006-01-02", val); err == nil {
			t := ts.UTC()
			return &t
		}
	}
	return nil
}

func csvQuery(c *gin.Context, key string) []string {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil
	}
	var out []string
	for _, v := range strings.Split(raw, ",") {
		if item := strings.TrimSpace(v); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func uint64Param(c *gin.Context, key string) uint64 {
	val := strings.TrimSpace(c.Param(key))
	if val == "" {
		return 0
	}
	var out uint64
	for i := 0; i < len(val); i++ {
		ch := val[i]
		if ch < '0' || ch > '9' {
			return 0
		}
		out = out*10 + uint64(ch-'0')
	}
	return out
}

func paginationMeta(limit, offset int, total int64) map[string]any {
	if limit <= 0 {
		limit = 0
	}
	if offset < 0 {
		offset = 0
	}
	hasNext := int64(offset+limit) < total
	return map[string]any{
		"limit":    limit,
		"offset":   offset,
		"total":    total,
		"has_next": hasNext,
	}
}

// listParamsFromQuery maps the shared trade query parameters onto the
// repository filter.
func listParamsFromQuery(c *gin.Context, userID string) repository.ListTradesParams {
	asc := false
	if v := strings.TrimSpace(c.Query("order")); strings.EqualFold(v, "asc") {
		asc = true
	}
	return repository.ListTradesParams{
		UserID:    userID,
		Limit:     intQuery(c, "limit", 50),
		Offset:    intQuery(c, "offset", 0),
		Symbol:    stringQueryPtr(c, "symbol"),
		Direction: stringQueryPtr(c, "direction"),
		Strategy:  stringQueryPtr(c, "strategy"),
		Since:     timeQueryPtr(c, "since"),
		Until:     timeQueryPtr(c, "until"),
		MinProfit: decimalQueryPtr(c, "min_profit"),
		MaxProfit: decimalQueryPtr(c, "max_profit"),
		Tags:      csvQuery(c, "tags"),
		OrderBy:   strings.TrimSpace(c.Query("order_by")),
		Asc:       &asc,
	}
}

// filterFromQuery maps the analytics query parameters onto the in-memory
// filter applied after loading the user's trades.
func filterFromQuery(c *gin.Context) analytics.FilterOptions {
	opts := analytics.FilterOptions{
		Symbols:    csvQuery(c, "symbols"),
		Strategies: csvQuery(c, "strategies"),
		Tags:       csvQuery(c, "tags"),
		MinProfit:  floatQueryPtr(c, "min_profit"),
		MaxProfit:  floatQueryPtr(c, "max_profit"),
	}
	if v := strings.TrimSpace(c.Query("direction")); v != "" {
		opts.Direction = strings.ToLower(v)
	}
	since := timeQueryPtr(c, "since")
	until := timeQueryPtr(c, "until")
	if since != nil || until != nil {
		dr := &analytics.DateRange{}
		if since != nil {
			dr.Start = *since
		}
		if until != nil {
			dr.End = *until
		} else {
			dr.End = time.Now().UTC().Add(24 * time.Hour)
		}
		opts.DateRange = dr
	}
	return opts
}

func boolPtr(v bool) *bool { return &v }
