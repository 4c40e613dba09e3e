package rules

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Rule is one entry of the trading-rule catalog. Built-in rules ship with
// the service; custom rules are added at runtime and live for the lifetime
// of the process.
type Rule struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	IsCustom bool   `json:"is_custom"`
}

var builtins = []Rule{
	{ID: "entered-early", Label: "Entered too early"},
	{ID: "no-stop-loss", Label: "Traded without a stop loss"},
	{ID: "overtraded", Label: "Overtraded"},
	{ID: "exited-emotionally", Label: "Exited emotionally"},
	{ID: "chased-price", Label: "Chased price"},
	{ID: "traded-during-news", Label: "Traded during news"},
}

// Catalog holds the built-in rules plus any custom rules added during this
// process lifetime. Safe for concurrent use.
type Catalog struct {
	mu     sync.Mutex
	custom []Rule
	nowFn  func() time.Time
}

func NewCatalog() *Catalog {
	return &Catalog{nowFn: time.Now}
}

// List returns every rule, built-ins first, custom rules in insertion
// order. The result is a fresh slice.
func (c *Catalog) List() []Rule {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Rule, 0, len(builtins)+len(c.custom))
	out = append(out, builtins...)
	out = append(out, c.custom...)
	return out
}

// Get looks a rule up by id.
func (c *Catalog) Get(id string) (Rule, bool) {
	for _, r := range builtins {
		if r.ID == id {
			return r, true
		}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, r := range c.custom {
		if r.ID == id {
			return r, true
		}
	}
	return Rule{}, false
}

// AddCustom registers a user-defined rule and returns it. The id is
// derived from the creation time so concurrent additions stay unique.
func (c *Catalog) AddCustom(label string) (Rule, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return Rule{}, fmt.Errorf("rule label is required")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	ms := c.nowFn().UnixMilli()
	id := fmt.Sprintf("custom-%d", ms)
	for c.taken(id) {
		ms++
		id = fmt.Sprintf("custom-%d", ms)
	}
	rule := Rule{ID: id, Label: label, IsCustom: true}
	c.custom = append(c.custom, rule)
	return rule, nil
}

// taken is called with the mutex held.
func (c *Catalog) taken(id string) bool {
	for _, r := range c.custom {
		if r.ID == id {
			return true
		}
	}
	return false
}
