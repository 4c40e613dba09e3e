package analytics

import (
	"sort"

	"tradejournal/internal/models"
)

// TiltThreshold is the consecutive-loss count that flags impaired
// decision-making.
const TiltThreshold = 3

type StreakInfo struct {
	// CurrentStreak is the run anchored at the most recent trade: positive
	// for consecutive wins, negative for consecutive losses.
	CurrentStreak     int  `json:"current_streak"`
	LongestWinStreak  int  `json:"longest_win_streak"`
	LongestLossStreak int  `json:"longest_loss_streak"`
	IsOnTilt          bool `json:"is_on_tilt"`
	TiltThreshold     int  `json:"tilt_threshold"`
}

// ComputeStreaks scans trades ordered by date (most recent first) for
// consecutive win/loss runs. The sort is stable so equal dates keep their
// relative order and results stay reproducible. The input slice is never
// mutated.
func ComputeStreaks(trades []models.Trade) StreakInfo {
	info := StreakInfo{TiltThreshold: TiltThreshold}
	if len(trades) == 0 {
		return info
	}

	sorted := make([]models.Trade, len(trades))
	copy(sorted, trades)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})

	var (
		run          int
		runIsWin     bool
		currentLen   int
		currentIsWin bool
	)
	for i := range sorted {
		isWin := profitOf(&sorted[i]) > 0
		switch {
		case i == 0:
			run = 1
			runIsWin = isWin
		case isWin == runIsWin:
			run++
		default:
			if currentLen == 0 {
				// The run anchored at the newest trade just ended.
				currentLen = run
				currentIsWin = runIsWin
			}
			info.foldRun(run, runIsWin)
			run = 1
			runIsWin = isWin
		}
	}
	// The final, still-open run counts toward the maxima too.
	info.foldRun(run, runIsWin)
	if currentLen == 0 {
		currentLen = run
		currentIsWin = runIsWin
	}

	info.CurrentStreak = currentLen
	if !currentIsWin {
		info.CurrentStreak = -currentLen
	}
	info.IsOnTilt = !currentIsWin && currentLen >= TiltThreshold
	return info
}

func (s *StreakInfo) foldRun(length int, isWin bool) {
	if isWin {
		if length > s.LongestWinStreak {
			s.LongestWinStreak = length
		}
		return
	}
	if length > s.LongestLossStreak {
		s.LongestLossStreak = length
	}
}
