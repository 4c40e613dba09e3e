package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Trade is a single journaled trade. Profit and ProfitPercentage are
// computed once on create/update and cached for display; the analytics
// calculators recompute independently and never trust the cache.
type Trade struct {
	ID     uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID string `gorm:"type:varchar(100);not null;index" json:"user_id"`

	Date      time.Time `gorm:"type:timestamptz;not null;index" json:"date"`
	Symbol    string    `gorm:"type:varchar(20);not null;index" json:"symbol"`
	Direction string    `gorm:"type:varchar(10);not null" json:"direction"`

	EntryPrice decimal.Decimal  `gorm:"type:numeric(20,10);not null;default:0" json:"entry_price"`
	ExitPrice  decimal.Decimal  `gorm:"type:numeric(20,10);not null;default:0" json:"exit_price"`
	StopLoss   *decimal.Decimal `gorm:"type:numeric(20,10)" json:"stop_loss"`
	TakeProfit *decimal.Decimal `gorm:"type:numeric(20,10)" json:"take_profit"`

	LotSize  decimal.Decimal `gorm:"type:numeric(20,10);not null;default:0" json:"lot_size"`
	Quantity int64           `gorm:"not null;default:0" json:"quantity"`
	Fees     decimal.Decimal `gorm:"type:numeric(20,10);not null;default:0" json:"fees"`

	Profit           decimal.Decimal `gorm:"type:numeric(30,10);not null;default:0" json:"profit"`
	ProfitPercentage decimal.Decimal `gorm:"type:numeric(20,10);not null;default:0" json:"profit_percentage"`

	Strategy         string `gorm:"type:varchar(100);index" json:"strategy"`
	Setup            string `gorm:"type:varchar(100)" json:"setup"`
	SetupDescription string `gorm:"type:text" json:"setup_description"`
	Notes            string `gorm:"type:text" json:"notes"`
	Emotions         string `gorm:"type:text" json:"emotions"`
	Rating           int    `gorm:"not null;default:0" json:"rating"`
	TimeFrame        string `gorm:"type:varchar(20)" json:"time_frame"`

	Tags        datatypes.JSON `gorm:"type:jsonb" json:"tags"`
	Screenshots datatypes.JSON `gorm:"type:jsonb" json:"screenshots"`
	Violations  datatypes.JSON `gorm:"type:jsonb" json:"violations"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamptz;autoUpdateTime" json:"updated_at"`
}

func (Trade) TableName() string {
	return "trades"
}

const (
	DirectionLong  = "long"
	DirectionShort = "short"
)

// TradeViolation is a violation-rule reference stored inside a trade's
// Violations JSON column. The label travels with the trade so custom rules
// stay readable after the session that created them ends.
type TradeViolation struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	IsCustom bool   `json:"is_custom,omitempty"`
}

// ViolationList parses the Violations column. Malformed JSON yields nil.
func (t *Trade) ViolationList() []TradeViolation {
	if t == nil || len(t.Violations) == 0 {
		return nil
	}
	var out []TradeViolation
	if err := json.Unmarshal(t.Violations, &out); err != nil {
		return nil
	}
	return out
}

// TagList parses the Tags column. Malformed JSON yields nil.
func (t *Trade) TagList() []string {
	if t == nil || len(t.Tags) == 0 {
		return nil
	}
	var out []string
	if err := json.Unmarshal(t.Tags, &out); err != nil {
		return nil
	}
	return out
}
