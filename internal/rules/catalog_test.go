package rules

import (
	"strings"
	"testing"
	"time"
)

func TestCatalogListsBuiltins(t *testing.T) {
	c := NewCatalog()
	list := c.List()
	if len(list) != 6 {
		t.Fatalf("built-in count = %d, want 6", len(list))
	}
	for _, r := range list {
		if r.IsCustom {
			t.Fatalf("built-in rule %q flagged custom", r.ID)
		}
	}
	if _, ok := c.Get("no-stop-loss"); !ok {
		t.Fatalf("no-stop-loss missing from catalog")
	}
}

func TestAddCustomRule(t *testing.T) {
	c := NewCatalog()
	rule, err := c.AddCustom("  Traded after midnight  ")
	if err != nil {
		t.Fatalf("add custom: %v", err)
	}
	if !strings.HasPrefix(rule.ID, "custom-") {
		t.Fatalf("custom id = %q, want custom- prefix", rule.ID)
	}
	if rule.Label != "Traded after midnight" {
		t.Fatalf("label = %q, want trimmed label", rule.Label)
	}
	if !rule.IsCustom {
		t.Fatalf("custom rule not flagged custom")
	}

	list := c.List()
	if list[len(list)-1].ID != rule.ID {
		t.Fatalf("custom rule not appended to the list")
	}
	got, ok := c.Get(rule.ID)
	if !ok || got != rule {
		t.Fatalf("Get(%q) = %+v, %v", rule.ID, got, ok)
	}
}

func TestAddCustomRejectsEmptyLabel(t *testing.T) {
	c := NewCatalog()
	if _, err := c.AddCustom("   "); err == nil {
		t.Fatalf("blank label accepted")
	}
}

func TestAddCustomUniqueIDsSameMillisecond(t *testing.T) {
	c := NewCatalog()
	frozen := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)
	c.nowFn = func() time.Time { return frozen }

	a, err := c.AddCustom("first")
	if err != nil {
		t.Fatalf("add first: %v", err)
	}
	b, err := c.AddCustom("second")
	if err != nil {
		t.Fatalf("add second: %v", err)
	}
	if a.ID == b.ID {
		t.Fatalf("same-millisecond rules share id %q", a.ID)
	}
}

func TestListReturnsCopy(t *testing.T) {
	c := NewCatalog()
	list := c.List()
	list[0].Label = "mutated"
	if c.List()[0].Label == "mutated" {
		t.Fatalf("List result aliases the catalog")
	}
}
