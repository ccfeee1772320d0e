// Package tracker owns the local day-by-day completion state: which
// practices are enabled, which were done on which day, and the progress and
// streak figures derived from them.
package tracker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"yaumiyah/internal/core"
)

// SchemaVersion tags the persisted state blob. A blob with any other version
// is treated as absent and replaced by defaults.
const SchemaVersion = 1

// streakHorizon bounds the backward streak walk.
const streakHorizon = 365

// StateStore is the durable local store the tracker persists through.
// Load returns (nil, nil) when no prior state exists.
type StateStore interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, blob []byte) error
}

// Practice is the tracker-side view of a practice: just enough to render a
// checklist and compute progress.
type Practice struct {
	ID      string `json:"id"`
	Label   string `json:"label"`
	Enabled bool   `json:"enabled"`
}

// State is the persisted tracking state. Days maps every known civil day to
// the set of practices completed on it; gap-filling keeps the key space
// contiguous for every day since the state was first created.
type State struct {
	Version     int                              `json:"version"`
	Practices   []Practice                       `json:"practices"`
	Days        map[core.DateKey]map[string]bool `json:"days"`
	LastSeenDay core.DateKey                     `json:"last_seen_day"`
}

// Progress is the same-day completion figure over the enabled practices.
type Progress struct {
	Done  int
	Total int
	Pct   int
}

// DayScore is one entry of the rolling last-N-days series.
type DayScore struct {
	Date core.DateKey
	Pct  int
}

// Tracker is the tracking state engine. It is process-local and
// single-writer; all methods are synchronous and must be called from one
// goroutine. Every mutation persists through the StateStore before
// returning.
type Tracker struct {
	store StateStore
	now   func() time.Time
	state *State
}

// New builds a Tracker over the given store. A nil clock defaults to
// time.Now; tests inject a fixed one.
func New(store StateStore, now func() time.Time) *Tracker {
	if now == nil {
		now = time.Now
	}
	return &Tracker{store: store, now: now}
}

// defaultPractices is the built-in seed list used when no prior state
// exists.
func defaultPractices() []Practice {
	return []Practice{
		{ID: "shubuh", Label: "Shalat Shubuh tepat waktu", Enabled: true},
		{ID: "dzuhur", Label: "Shalat Dzuhur tepat waktu", Enabled: true},
		{ID: "ashar", Label: "Shalat Ashar tepat waktu", Enabled: true},
		{ID: "maghrib", Label: "Shalat Maghrib tepat waktu", Enabled: true},
		{ID: "isya", Label: "Shalat Isya tepat waktu", Enabled: true},
		{ID: "quran", Label: "Tilawah Al-Qur'an", Enabled: true},
		{ID: "dzikir", Label: "Dzikir pagi/petang", Enabled: true},
		{ID: "sedekah", Label: "Sedekah / kebaikan hari ini", Enabled: true},
		{ID: "olahraga", Label: "Olahraga / jalan kaki", Enabled: true},
	}
}

// Initialize loads persisted state, falling back to a default state seeded
// with the built-in practice list when none exists or the blob does not
// parse as the current schema version. Recovery is silent: corrupt state is
// "absent", never an error. Safe to call more than once; subsequent calls
// return immediately.
func (t *Tracker) Initialize(ctx context.Context) error {
	if t.state != nil {
		return nil
	}

	today := t.todayKey()

	if s := t.loadState(ctx); s != nil {
		t.state = s
		return nil
	}

	t.state = &State{
		Version:     SchemaVersion,
		Practices:   defaultPractices(),
		Days:        map[core.DateKey]map[string]bool{today: {}},
		LastSeenDay: today,
	}
	if err := t.persist(ctx); err != nil {
		return fmt.Errorf("persist initial state: %w", err)
	}
	return nil
}

// loadState returns the persisted state or nil when it is absent, corrupt,
// or carries a different schema version.
func (t *Tracker) loadState(ctx context.Context) *State {
	blob, err := t.store.Load(ctx)
	if err != nil {
		slog.WarnContext(ctx, "Tracker state load failed, starting fresh", "error", err)
		return nil
	}
	if blob == nil {
		return nil
	}

	var s State
	if err := json.Unmarshal(blob, &s); err != nil {
		slog.WarnContext(ctx, "Tracker state unreadable, starting fresh", "error", err)
		return nil
	}
	if s.Version != SchemaVersion {
		slog.WarnContext(ctx, "Tracker state version mismatch, starting fresh",
			"found", s.Version, "want", SchemaVersion)
		return nil
	}
	if s.Days == nil {
		s.Days = map[core.DateKey]map[string]bool{}
	}
	return &s
}

// EnsureTodayInitialized advances LastSeenDay to today, materializing an
// empty day entry for every day the application was not opened. The recap
// and aggregation logic depend on this contiguous key space; the gap-filling
// is deliberate, not incidental.
func (t *Tracker) EnsureTodayInitialized(ctx context.Context) error {
	s := t.mustState()
	today := t.todayKey()
	if s.LastSeenDay == today {
		return nil
	}
	// A last-seen day in the future means the clock moved backward; snap to
	// today instead of walking forever.
	if s.LastSeenDay > today {
		s.LastSeenDay = today
		return t.persist(ctx)
	}

	for k := s.LastSeenDay; k != today; {
		k = k.AddDays(1)
		if _, ok := s.Days[k]; !ok {
			s.Days[k] = map[string]bool{}
		}
	}
	s.LastSeenDay = today
	return t.persist(ctx)
}

// ToggleEnabled flips a practice's enabled flag. Unknown ids are ignored.
// Disabling a practice never deletes its historical values; it only changes
// which codes participate in progress and streaks from now on.
func (t *Tracker) ToggleEnabled(ctx context.Context, id string) error {
	s := t.mustState()
	for i := range s.Practices {
		if s.Practices[i].ID == id {
			s.Practices[i].Enabled = !s.Practices[i].Enabled
			return t.persist(ctx)
		}
	}
	return nil
}

// SetChecked records a practice's completion for a day, creating the day
// entry when absent.
func (t *Tracker) SetChecked(ctx context.Context, date core.DateKey, id string, checked bool) error {
	s := t.mustState()
	if s.Days[date] == nil {
		s.Days[date] = map[string]bool{}
	}
	s.Days[date][id] = checked
	return t.persist(ctx)
}

// IsChecked reports a practice's completion for a day.
func (t *Tracker) IsChecked(date core.DateKey, id string) bool {
	return t.mustState().Days[date][id]
}

// TodayKey returns the current civil day per the tracker's clock.
func (t *Tracker) TodayKey() core.DateKey {
	return t.todayKey()
}

// Practices returns a copy of the tracked practice list.
func (t *Tracker) Practices() []Practice {
	return append([]Practice(nil), t.mustState().Practices...)
}

// TodayProgress computes today's completion over the enabled practices only.
// With nothing enabled it reports {0, 0, 0}.
func (t *Tracker) TodayProgress() Progress {
	s := t.mustState()
	today := t.todayKey()
	day := s.Days[today]

	done, total := 0, 0
	for _, p := range s.Practices {
		if !p.Enabled {
			continue
		}
		total++
		if day[p.ID] {
			done++
		}
	}
	return Progress{Done: done, Total: total, Pct: core.Percent(done, total)}
}

// Streak counts consecutive days, walking backward from today, in which
// every enabled practice was completed. Today failing yields 0; the walk is
// capped at one year.
func (t *Tracker) Streak() int {
	s := t.mustState()
	enabled := t.enabledIDs()
	if len(enabled) == 0 {
		return 0
	}

	streak := 0
	k := t.todayKey()
	for i := 0; i < streakHorizon; i++ {
		day := s.Days[k]
		ok := true
		for _, id := range enabled {
			if !day[id] {
				ok = false
				break
			}
		}
		if !ok {
			break
		}
		streak++
		k = k.AddDays(-1)
	}
	return streak
}

// LastNDays returns the completion percentage for each of the n most recent
// days, most recent first. The denominator is the enabled-practice count
// captured once at call time, even for days whose historical enabled set
// differed. Reconstructing per-day enablement is deliberately not attempted.
func (t *Tracker) LastNDays(n int) []DayScore {
	s := t.mustState()
	enabled := t.enabledIDs()
	total := len(enabled)

	out := make([]DayScore, 0, n)
	k := t.todayKey()
	for i := 0; i < n; i++ {
		done := 0
		day := s.Days[k]
		for _, id := range enabled {
			if day[id] {
				done++
			}
		}
		out = append(out, DayScore{Date: k, Pct: core.Percent(done, total)})
		k = k.AddDays(-1)
	}
	return out
}

func (t *Tracker) enabledIDs() []string {
	s := t.mustState()
	ids := make([]string, 0, len(s.Practices))
	for _, p := range s.Practices {
		if p.Enabled {
			ids = append(ids, p.ID)
		}
	}
	return ids
}

func (t *Tracker) todayKey() core.DateKey {
	return core.TodayKey(t.now())
}

// mustState guards against use before Initialize; that is a caller contract
// bug, not a runtime condition.
func (t *Tracker) mustState() *State {
	if t.state == nil {
		panic("tracker: Initialize not called")
	}
	return t.state
}

func (t *Tracker) persist(ctx context.Context) error {
	blob, err := json.Marshal(t.state)
	if err != nil {
		return fmt.Errorf("encode tracker state: %w", err)
	}
	if err := t.store.Save(ctx, blob); err != nil {
		return fmt.Errorf("save tracker state: %w", err)
	}
	return nil
}
