// Package core provides the pure domain types for practice tracking:
// civil-day keys, practice definitions and daily records.
//
// This file contains the calendar utility. Every date in the system is a
// DateKey anchored to a fixed UTC+7 civil day (WIB), so a "day" means the
// same thing regardless of the host timezone.
package core

import (
	"errors"
	"fmt"
	"time"
)

// wib is the fixed civil timezone (UTC+7). All "today" derivations go
// through it; host-local time is never consulted.
var wib = time.FixedZone("WIB", 7*60*60)

// ErrMalformedDateKey is returned when a string is not a valid YYYY-MM-DD key.
var ErrMalformedDateKey = errors.New("malformed date key")

// DateKey identifies one civil day as a YYYY-MM-DD string. Keys produced by
// this package are always valid; keys arriving from storage or callers must
// pass through ParseDateKey first. Calling arithmetic methods on a malformed
// key is a contract violation and panics.
type DateKey string

const dateKeyLayout = "2006-01-02"

// ParseDateKey validates a raw string and returns it as a DateKey.
// The format is strict: ten characters, zero-padded, a real calendar date.
func ParseDateKey(s string) (DateKey, error) {
	if len(s) != len(dateKeyLayout) {
		return "", fmt.Errorf("%w: %q", ErrMalformedDateKey, s)
	}
	t, err := time.Parse(dateKeyLayout, s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrMalformedDateKey, s)
	}
	// time.Parse tolerates some sloppy inputs; round-tripping catches them.
	if t.Format(dateKeyLayout) != s {
		return "", fmt.Errorf("%w: %q", ErrMalformedDateKey, s)
	}
	return DateKey(s), nil
}

// TodayKey returns the DateKey for the given moment evaluated in the fixed
// UTC+7 civil calendar. Callers inject "now" so both production and tests
// control the clock explicitly.
func TodayKey(now time.Time) DateKey {
	return DateKey(now.In(wib).Format(dateKeyLayout))
}

// Time returns the key's midnight as a UTC time.Time for arithmetic.
// Panics on a malformed key.
func (k DateKey) Time() time.Time {
	t, err := time.Parse(dateKeyLayout, string(k))
	if err != nil || t.Format(dateKeyLayout) != string(k) {
		panic(fmt.Sprintf("core: malformed DateKey %q", string(k)))
	}
	return t
}

// AddDays returns the key delta days away, rolling correctly across month
// and year boundaries. Negative deltas walk backward.
func (k DateKey) AddDays(delta int) DateKey {
	return DateKey(k.Time().AddDate(0, 0, delta).Format(dateKeyLayout))
}

// Weekday returns the day of week with the Sunday=0 convention.
// Friday (5) anchors the weekly holy-day cadence.
func (k DateKey) Weekday() time.Weekday {
	return k.Time().Weekday()
}

// IsFriday reports whether the key falls on the weekly holy day.
func (k DateKey) IsFriday() bool {
	return k.Weekday() == time.Friday
}

// ISOWeekKey returns the ISO-8601 week identifier (YYYY-Www) for the key.
// Weeks run Monday through Sunday and week 1 is the week containing the
// year's first Thursday; the ISO year may differ from the calendar year at
// the edges, which matters because weekly cadence success is bucketed by
// this value.
func (k DateKey) ISOWeekKey() string {
	year, week := k.Time().ISOWeek()
	return fmt.Sprintf("%04d-W%02d", year, week)
}
