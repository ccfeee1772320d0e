package stats

import (
	"sort"

	"yaumiyah/internal/core"
)

// Badge tiers for one recap day, derived from the weighted achievement.
type Badge string

const (
	BadgePerfect  Badge = "perfect"  // every weighted target met
	BadgeGood     Badge = "good"     // at least half the weight achieved
	BadgePoor     Badge = "poor"     // below half
	BadgeUnfilled Badge = "unfilled" // nothing reported
)

// PracticeDetail is one practice's outcome on one recap day.
type PracticeDetail struct {
	Practice core.Practice
	Value    core.CheckValue
	Target   int
	Achieved bool
}

// DayRecap summarizes one day of the journal: weighted achievement over the
// whole catalog plus the per-practice breakdown.
type DayRecap struct {
	Date    core.DateKey
	Filled  bool
	Pct     int
	Badge   Badge
	Details []PracticeDetail
}

// Recap builds the journal view: today plus every filled day in the given
// records, most recent first. Each day's percentage weighs practices by
// their catalog weight (defaulting to 1); unfilled days score zero and carry
// the unfilled badge. The records are only read.
func Recap(items []core.Practice, records []core.DailyRecord, today core.DateKey) []DayRecap {
	byDate := map[core.DateKey]core.Checks{}
	dates := []core.DateKey{today}
	seen := map[core.DateKey]bool{today: true}

	for _, r := range records {
		if r.Filled() {
			byDate[r.Date] = r.Checks
			if !seen[r.Date] {
				seen[r.Date] = true
				dates = append(dates, r.Date)
			}
		}
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i] > dates[j] })

	out := make([]DayRecap, 0, len(dates))
	for _, date := range dates {
		out = append(out, recapDay(items, byDate[date], date))
	}
	return out
}

func recapDay(items []core.Practice, checks core.Checks, date core.DateKey) DayRecap {
	record := core.DailyRecord{Date: date, Checks: checks}
	filled := record.Filled()

	totalWeight, achievedWeight := 0, 0
	details := make([]PracticeDetail, 0, len(items))
	for _, p := range items {
		value := record.Value(p.Code)
		achieved := value.Meets(p.Target())

		totalWeight += p.EffectiveWeight()
		if achieved {
			achievedWeight += p.EffectiveWeight()
		}
		details = append(details, PracticeDetail{
			Practice: p,
			Value:    value,
			Target:   p.Target(),
			Achieved: achieved,
		})
	}

	pct := 0
	if filled {
		pct = core.Percent(achievedWeight, totalWeight)
	}

	return DayRecap{
		Date:    date,
		Filled:  filled,
		Pct:     pct,
		Badge:   badgeFor(filled, pct),
		Details: details,
	}
}

func badgeFor(filled bool, pct int) Badge {
	switch {
	case !filled:
		return BadgeUnfilled
	case pct >= 100:
		return BadgePerfect
	case pct >= 50:
		return BadgeGood
	default:
		return BadgePoor
	}
}
