// Package stats implements the cadence-aware aggregation over a month of
// daily records: per-practice success rates against cadence-dependent
// denominators, consistency ranking and the month average.
//
// Success counting uses the Strategy pattern: each cadence (daily, weekly,
// friday) has its own counter encapsulating which records it examines and
// what its denominator is.
package stats

import (
	"math"
	"sort"

	"yaumiyah/internal/catalog"
	"yaumiyah/internal/core"
)

// window is one month of filled records pre-bucketed for the counters. It is
// read-only for the duration of one computation.
type window struct {
	filled  []core.DailyRecord
	weeks   []string // distinct ISO week keys, in record order
	fridays []core.DateKey
	byDate  map[core.DateKey]core.Checks
}

func newWindow(records []core.DailyRecord) *window {
	w := &window{byDate: map[core.DateKey]core.Checks{}}
	seenWeeks := map[string]bool{}
	for _, r := range records {
		if !r.Filled() {
			continue
		}
		w.filled = append(w.filled, r)
		w.byDate[r.Date] = r.Checks
		if wk := r.Date.ISOWeekKey(); !seenWeeks[wk] {
			seenWeeks[wk] = true
			w.weeks = append(w.weeks, wk)
		}
		if r.Date.IsFriday() {
			w.fridays = append(w.fridays, r.Date)
		}
	}
	return w
}

// successCounter is the strategy interface for cadence-dependent success
// counting. Count returns the number of successes and the denominator the
// percentage is taken against.
type successCounter interface {
	Count(p core.Practice, w *window) (success, denom int)
}

// dailyCounter scores every filled day against the practice target.
type dailyCounter struct{}

func (dailyCounter) Count(p core.Practice, w *window) (int, int) {
	success := 0
	for _, r := range w.filled {
		if r.Value(p.Code).Meets(p.Target()) {
			success++
		}
	}
	return success, len(w.filled)
}

// weeklyCounter scores each distinct ISO week; a single qualifying day in
// the week is sufficient.
type weeklyCounter struct{}

func (weeklyCounter) Count(p core.Practice, w *window) (int, int) {
	qualified := map[string]bool{}
	for _, r := range w.filled {
		if r.Value(p.Code).Meets(p.Target()) {
			qualified[r.Date.ISOWeekKey()] = true
		}
	}
	return len(qualified), len(w.weeks)
}

// fridayCounter examines only the filled Fridays.
type fridayCounter struct{}

func (fridayCounter) Count(p core.Practice, w *window) (int, int) {
	success := 0
	for _, date := range w.fridays {
		if w.byDate[date][p.Code].Meets(p.Target()) {
			success++
		}
	}
	return success, len(w.fridays)
}

// counters maps each cadence to its strategy. Unrecognized explicit tags on
// a stored row fall back to daily rather than failing the whole report.
var counters = map[core.Cadence]successCounter{
	core.CadenceDaily:  dailyCounter{},
	core.CadenceWeekly: weeklyCounter{},
	core.CadenceFriday: fridayCounter{},
}

func counterFor(c core.Cadence) successCounter {
	if counter, ok := counters[c]; ok {
		return counter
	}
	return dailyCounter{}
}

// PracticeScore is one ranked practice with its computed consistency.
type PracticeScore struct {
	core.Practice
	Cadence    core.Cadence
	Percentage int
}

// Result is one month's aggregation. Empty distinguishes "no data" from
// "data but 0% everywhere"; when it is set, no ranking was computed.
type Result struct {
	Empty      bool
	FilledDays int
	Average    int
	Ranking    []PracticeScore
}

// Monthly computes per-practice success rates for one calendar month of
// records, ranked descending by percentage. Records referencing codes absent
// from the catalog contribute nothing; codes with no records score zero.
// The input is only read, never mutated.
func Monthly(items []core.Practice, records []core.DailyRecord) Result {
	w := newWindow(records)
	if len(w.filled) == 0 {
		return Result{Empty: true}
	}

	scores := make([]PracticeScore, 0, len(items))
	for _, p := range items {
		cadence := catalog.DetectCadence(p)
		success, denom := counterFor(cadence).Count(p, w)
		scores = append(scores, PracticeScore{
			Practice:   p,
			Cadence:    cadence,
			Percentage: core.Percent(success, denom),
		})
	}

	// Stable sort keeps catalog order among equal scores.
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Percentage > scores[j].Percentage
	})

	return Result{
		FilledDays: len(w.filled),
		Average:    meanPercentage(scores),
		Ranking:    scores,
	}
}

func meanPercentage(scores []PracticeScore) int {
	if len(scores) == 0 {
		return 0
	}
	sum := 0
	for _, s := range scores {
		sum += s.Percentage
	}
	return int(math.Round(float64(sum) / float64(len(scores))))
}
