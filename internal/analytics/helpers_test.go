package analytics

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"tradejournal/internal/models"
)

func dec(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}

func decPtr(v float64) *decimal.Decimal {
	d := decimal.NewFromFloat(v)
	return &d
}

func day(n int) time.Time {
	return time.Date(2025, time.March, n, 0, 0, 0, 0, time.UTC)
}

func profitTrade(date time.Time, profit float64) models.Trade {
	return models.Trade{Date: date, Symbol: "EURUSD", Direction: models.DirectionLong, Profit: dec(profit)}
}

func violationsJSON(t *testing.T, violations []models.TradeViolation) datatypes.JSON {
	t.Helper()
	raw, err := json.Marshal(violations)
	if err != nil {
		t.Fatalf("marshal violations: %v", err)
	}
	return datatypes.JSON(raw)
}

func tagsJSON(t *testing.T, tags []string) datatypes.JSON {
	t.Helper()
	raw, err := json.Marshal(tags)
	if err != nil {
		t.Fatalf("marshal tags: %v", err)
	}
	return datatypes.JSON(raw)
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
