package core

import (
	"fmt"
	"strconv"
)

// CheckValue is the raw value recorded for one practice on one day.
// Persisted rows mix booleans and numbers (true for yes/no practices, counts
// for quantity ones); both decode to a number where true counts as 1.
type CheckValue float64

// UnmarshalJSON accepts JSON booleans and non-negative numbers.
func (v *CheckValue) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case "true":
		*v = 1
		return nil
	case "false", "null":
		*v = 0
		return nil
	}
	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("check value %s: %w", data, err)
	}
	if f < 0 {
		f = 0
	}
	*v = CheckValue(f)
	return nil
}

// Meets reports whether the value reaches the given success threshold.
func (v CheckValue) Meets(target int) bool {
	return float64(v) >= float64(target)
}

// Positive reports whether the value counts as "something was entered".
func (v CheckValue) Positive() bool {
	return v > 0
}

// Checks maps a practice code to the raw value recorded for it.
type Checks map[string]CheckValue

// DailyRecord is one (user, day) worth of recorded values. A missing code
// means nothing was entered for that practice, never an implicit zero for
// every practice.
type DailyRecord struct {
	Date   DateKey
	Checks Checks
}

// Filled reports whether at least one practice has a positive value.
// Unfilled records never count as completed days in streaks nor enter any
// aggregation denominator.
func (r DailyRecord) Filled() bool {
	for _, v := range r.Checks {
		if v.Positive() {
			return true
		}
	}
	return false
}

// Value returns the recorded value for a practice code, zero when absent.
func (r DailyRecord) Value(code string) CheckValue {
	return r.Checks[code]
}
