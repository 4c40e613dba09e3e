package analytics

import (
	"sort"

	"tradejournal/internal/models"
)

type RuleCount struct {
	RuleID string `json:"rule_id"`
	Label  string `json:"label"`
	Count  int    `json:"count"`
}

type MostBrokenRule struct {
	Rule  string `json:"rule"`
	Count int    `json:"count"`
}

type ViolationStats struct {
	TotalViolations          int            `json:"total_violations"`
	MostBrokenRule           MostBrokenRule `json:"most_broken_rule"`
	WinRateWithViolations    float64        `json:"win_rate_with_violations"`
	WinRateWithoutViolations float64        `json:"win_rate_without_violations"`
	ViolationFrequency       []RuleCount    `json:"violation_frequency"`
}

// ComputeViolationStats tallies broken rules across the collection and
// splits win rate by violation presence. A trade "has violations" iff its
// violations list is non-empty; wins use the same profit > 0 predicate as
// the other calculators.
//
// Repeated ids within one trade count once (the UI prevents duplicates, the
// server defends anyway). Frequency sorts by count descending with rule id
// as the tie-break so output is deterministic; the most-broken rule follows
// the same ordering.
func ComputeViolationStats(trades []models.Trade) ViolationStats {
	var stats ViolationStats
	if len(trades) == 0 {
		return stats
	}

	counts := map[string]*RuleCount{}
	var (
		winsWith     int
		tradesWith   int
		winsWithout  int
		tradesWithout int
	)

	for i := range trades {
		violations := trades[i].ViolationList()
		isWin := profitOf(&trades[i]) > 0

		if len(violations) == 0 {
			tradesWithout++
			if isWin {
				winsWithout++
			}
			continue
		}

		tradesWith++
		if isWin {
			winsWith++
		}
		seen := map[string]struct{}{}
		for _, v := range violations {
			if _, dup := seen[v.ID]; dup {
				continue
			}
			seen[v.ID] = struct{}{}
			rc, ok := counts[v.ID]
			if !ok {
				rc = &RuleCount{RuleID: v.ID, Label: v.Label}
				counts[v.ID] = rc
			}
			rc.Count++
			stats.TotalViolations++
		}
	}

	freq := make([]RuleCount, 0, len(counts))
	for _, rc := range counts {
		freq = append(freq, *rc)
	}
	sort.Slice(freq, func(i, j int) bool {
		if freq[i].Count != freq[j].Count {
			return freq[i].Count > freq[j].Count
		}
		return freq[i].RuleID < freq[j].RuleID
	})
	stats.ViolationFrequency = freq
	if len(freq) > 0 {
		stats.MostBrokenRule = MostBrokenRule{Rule: freq[0].Label, Count: freq[0].Count}
	}

	if tradesWith > 0 {
		stats.WinRateWithViolations = float64(winsWith) / float64(tradesWith) * 100
	}
	if tradesWithout > 0 {
		stats.WinRateWithoutViolations = float64(winsWithout) / float64(tradesWithout) * 100
	}
	return stats
}
