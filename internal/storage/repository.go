// Package storage is the SQLite-backed home of the three collaborator
// stores the engines consume: the practice catalog, the per-day record rows
// and the durable tracker-state blob.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"yaumiyah/internal/core"

	_ "modernc.org/sqlite"
)

// Repository wraps one SQLite database holding catalog, logs and state.
type Repository struct {
	db *sql.DB
}

// NewRepository opens (creating if needed) the database at dbPath and runs
// pending migrations.
func NewRepository(dbPath string) (*Repository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// ListActivePractices returns the active catalog rows in ascending sort
// order, mapped to domain practices. The rows are raw: override resolution
// is the caller's next step, as is pre-filtering "holiday"-category rows to
// the applicable day.
func (r *Repository) ListActivePractices(ctx context.Context) ([]core.Practice, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, code, name, icon, input_kind, target_min, target_max,
		       weight, category, sort_order, calc_mode
		FROM practice_items
		WHERE is_active = 1
		ORDER BY sort_order ASC`)
	if err != nil {
		return nil, fmt.Errorf("list active practices: %w", err)
	}
	defer rows.Close()

	var items []core.Practice
	for rows.Next() {
		var p core.Practice
		var input, cadence string
		if err := rows.Scan(&p.ID, &p.Code, &p.Name, &p.Icon, &input,
			&p.TargetMin, &p.TargetMax, &p.Weight, &p.Category,
			&p.SortOrder, &cadence); err != nil {
			return nil, fmt.Errorf("scan practice row: %w", err)
		}
		p.Active = true
		p.Input = core.InputKind(input)
		p.Cadence = core.Cadence(cadence)
		items = append(items, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate practice rows: %w", err)
	}
	return items, nil
}

// MonthRecords returns the user's daily records for the [start, end) span of
// one calendar month, date ascending. Unfilled and missing days are simply
// absent; the engines treat absence as "nothing entered".
func (r *Repository) MonthRecords(ctx context.Context, userID string, year int, month time.Month) ([]core.DailyRecord, error) {
	start := fmt.Sprintf("%04d-%02d-01", year, month)
	end := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0).Format("2006-01-02")

	rows, err := r.db.QueryContext(ctx, `
		SELECT log_date, checks
		FROM daily_logs
		WHERE user_id = ? AND log_date >= ? AND log_date < ?
		ORDER BY log_date ASC`, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("list month records: %w", err)
	}
	defer rows.Close()

	var records []core.DailyRecord
	for rows.Next() {
		var rawDate string
		var rawChecks []byte
		if err := rows.Scan(&rawDate, &rawChecks); err != nil {
			return nil, fmt.Errorf("scan record row: %w", err)
		}

		date, err := core.ParseDateKey(rawDate)
		if err != nil {
			return nil, fmt.Errorf("record row for user %s: %w", userID, err)
		}

		var checks core.Checks
		if err := json.Unmarshal(rawChecks, &checks); err != nil {
			return nil, fmt.Errorf("decode checks for %s: %w", rawDate, err)
		}
		records = append(records, core.DailyRecord{Date: date, Checks: checks})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate record rows: %w", err)
	}
	return records, nil
}

// UpsertDailyRecord writes one (user, date) row, replacing its checks when
// the row already exists.
func (r *Repository) UpsertDailyRecord(ctx context.Context, userID string, record core.DailyRecord) error {
	if _, err := core.ParseDateKey(string(record.Date)); err != nil {
		return err
	}
	checks := record.Checks
	if checks == nil {
		checks = core.Checks{}
	}
	blob, err := json.Marshal(checks)
	if err != nil {
		return fmt.Errorf("encode checks: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO daily_logs (user_id, log_date, checks)
		VALUES (?, ?, ?)
		ON CONFLICT (user_id, log_date)
		DO UPDATE SET checks = excluded.checks, updated_at = datetime('now')`,
		userID, string(record.Date), string(blob))
	if err != nil {
		return fmt.Errorf("upsert daily record: %w", err)
	}

	slog.InfoContext(ctx, "Daily record saved",
		"user_id", userID, "log_date", string(record.Date))
	return nil
}

// TrackerStore binds the repository to one state namespace so it can serve
// as the tracker's durable store.
type TrackerStore struct {
	repo      *Repository
	namespace string
}

// TrackerStore returns the durable tracker-state store for a namespace.
func (r *Repository) TrackerStore(namespace string) *TrackerStore {
	return &TrackerStore{repo: r, namespace: namespace}
}

// Load returns the persisted state blob, or (nil, nil) when none exists.
func (s *TrackerStore) Load(ctx context.Context) ([]byte, error) {
	var payload []byte
	err := s.repo.db.QueryRowContext(ctx,
		`SELECT payload FROM tracker_states WHERE namespace = ?`,
		s.namespace).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load tracker state: %w", err)
	}
	return payload, nil
}

// Save writes the state blob for the namespace.
func (s *TrackerStore) Save(ctx context.Context, blob []byte) error {
	_, err := s.repo.db.ExecContext(ctx, `
		INSERT INTO tracker_states (namespace, payload)
		VALUES (?, ?)
		ON CONFLICT (namespace)
		DO UPDATE SET payload = excluded.payload, updated_at = datetime('now')`,
		s.namespace, blob)
	if err != nil {
		return fmt.Errorf("save tracker state: %w", err)
	}
	return nil
}
