package core

import (
	"errors"
	"testing"
	"time"
)

func TestParseDateKey(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantErr bool
	}{
		{name: "valid key", in: "2024-01-04", wantErr: false},
		{name: "leap day", in: "2024-02-29", wantErr: false},
		{name: "non leap february 29", in: "2023-02-29", wantErr: true},
		{name: "missing zero padding", in: "2024-1-4", wantErr: true},
		{name: "wrong separator", in: "2024/01/04", wantErr: true},
		{name: "empty", in: "", wantErr: true},
		{name: "trailing garbage", in: "2024-01-04x", wantErr: true},
		{name: "month out of range", in: "2024-13-01", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDateKey(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseDateKey(%q) = %q, want error", tt.in, got)
				}
				if !errors.Is(err, ErrMalformedDateKey) {
					t.Errorf("ParseDateKey(%q) error = %v, want ErrMalformedDateKey", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDateKey(%q) error = %v", tt.in, err)
			}
			if string(got) != tt.in {
				t.Errorf("ParseDateKey(%q) = %q", tt.in, got)
			}
		})
	}
}

func TestTodayKeyFixedZone(t *testing.T) {
	// 23:30 UTC on Jan 1 is already Jan 2 in UTC+7, whatever the host zone.
	now := time.Date(2024, 1, 1, 23, 30, 0, 0, time.UTC)
	if got := TodayKey(now); got != "2024-01-02" {
		t.Errorf("TodayKey(23:30 UTC) = %q, want 2024-01-02", got)
	}

	// Same instant expressed in a far-west zone must yield the same key.
	losAngeles := time.FixedZone("UTC-8", -8*60*60)
	if got := TodayKey(now.In(losAngeles)); got != "2024-01-02" {
		t.Errorf("TodayKey in UTC-8 = %q, want 2024-01-02", got)
	}

	// 16:59 UTC is still 23:59 of the same civil day in UTC+7.
	now = time.Date(2024, 1, 1, 16, 59, 0, 0, time.UTC)
	if got := TodayKey(now); got != "2024-01-01" {
		t.Errorf("TodayKey(16:59 UTC) = %q, want 2024-01-01", got)
	}
	// One minute later the civil day flips.
	now = time.Date(2024, 1, 1, 17, 0, 0, 0, time.UTC)
	if got := TodayKey(now); got != "2024-01-02" {
		t.Errorf("TodayKey(17:00 UTC) = %q, want 2024-01-02", got)
	}
}

func TestAddDays(t *testing.T) {
	tests := []struct {
		name  string
		key   DateKey
		delta int
		want  DateKey
	}{
		{name: "simple forward", key: "2024-01-01", delta: 3, want: "2024-01-04"},
		{name: "month rollover", key: "2024-01-31", delta: 1, want: "2024-02-01"},
		{name: "year rollover", key: "2024-12-31", delta: 1, want: "2025-01-01"},
		{name: "leap february", key: "2024-02-28", delta: 1, want: "2024-02-29"},
		{name: "backward across year", key: "2025-01-01", delta: -1, want: "2024-12-31"},
		{name: "zero delta", key: "2024-06-15", delta: 0, want: "2024-06-15"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.key.AddDays(tt.delta); got != tt.want {
				t.Errorf("%s.AddDays(%d) = %s, want %s", tt.key, tt.delta, got, tt.want)
			}
		})
	}
}

func TestAddDaysRoundTrip(t *testing.T) {
	// addDays(addDays(d, k), -k) == d across month and year edges.
	keys := []DateKey{"2024-01-01", "2024-02-29", "2024-12-31", "2025-06-15"}
	for _, d := range keys {
		for k := -400; k <= 400; k += 37 {
			if got := d.AddDays(k).AddDays(-k); got != d {
				t.Fatalf("%s.AddDays(%d).AddDays(%d) = %s, want %s", d, k, -k, got, d)
			}
		}
	}
}

func TestWeekday(t *testing.T) {
	// 2024-01-05 is a Friday.
	if got := DateKey("2024-01-05").Weekday(); got != time.Friday {
		t.Errorf("Weekday(2024-01-05) = %v, want Friday", got)
	}
	if !DateKey("2024-01-05").IsFriday() {
		t.Error("IsFriday(2024-01-05) = false, want true")
	}
	if DateKey("2024-01-06").IsFriday() {
		t.Error("IsFriday(2024-01-06) = true, want false")
	}
	// Sunday=0 convention.
	if got := DateKey("2024-01-07").Weekday(); got != time.Sunday {
		t.Errorf("Weekday(2024-01-07) = %v, want Sunday", got)
	}
}

func TestISOWeekKey(t *testing.T) {
	tests := []struct {
		name string
		key  DateKey
		want string
	}{
		// Dec 31 2024 (Tuesday) and Jan 1 2025 (Wednesday) share ISO week
		// 2025-W01 because that week contains the first Thursday of 2025.
		{name: "dec 31 in next iso year", key: "2024-12-31", want: "2025-W01"},
		{name: "jan 1 same week", key: "2025-01-01", want: "2025-W01"},
		// Jan 1 2027 is a Friday; the week belongs to the previous ISO year.
		{name: "jan 1 in previous iso year", key: "2027-01-01", want: "2026-W53"},
		{name: "mid year monday", key: "2024-06-10", want: "2024-W24"},
		{name: "mid year sunday same week", key: "2024-06-16", want: "2024-W24"},
		{name: "next monday next week", key: "2024-06-17", want: "2024-W25"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.key.ISOWeekKey(); got != tt.want {
				t.Errorf("ISOWeekKey(%s) = %s, want %s", tt.key, got, tt.want)
			}
		})
	}
}

func TestMalformedKeyPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("AddDays on malformed key did not panic")
		}
	}()
	DateKey("not-a-date").AddDays(1)
}
