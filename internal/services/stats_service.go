// Package services orchestrates the engines over their collaborator stores:
// concurrent catalog/record loading, result caching and debounced tracker
// persistence.
package services

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"yaumiyah/internal/cache"
	"yaumiyah/internal/catalog"
	"yaumiyah/internal/core"
	"yaumiyah/internal/log"
	"yaumiyah/internal/stats"
)

// CatalogSource supplies raw practice rows, active only, ascending by sort
// order.
type CatalogSource interface {
	ListActivePractices(ctx context.Context) ([]core.Practice, error)
}

// RecordStore supplies and accepts per-day record rows keyed by (user, date).
type RecordStore interface {
	MonthRecords(ctx context.Context, userID string, year int, month time.Month) ([]core.DailyRecord, error)
	UpsertDailyRecord(ctx context.Context, userID string, record core.DailyRecord) error
}

// StatsService computes monthly statistics and recaps over the stores,
// keeping recent results in an LRU cache.
type StatsService struct {
	catalogSrc CatalogSource
	records    RecordStore
	results    *cache.LRU[stats.Result]
	logger     *log.Logger
}

// NewStatsService wires the service. cacheSize and cacheTTL bound the result
// cache.
func NewStatsService(catalogSrc CatalogSource, records RecordStore, cacheSize int, cacheTTL time.Duration, logger *log.Logger) *StatsService {
	if logger == nil {
		logger = log.New(log.Config{Component: log.ComponentStats})
	}
	return &StatsService{
		catalogSrc: catalogSrc,
		records:    records,
		results:    cache.NewLRU[stats.Result](cacheSize, cacheTTL),
		logger:     logger,
	}
}

// load fetches the resolved catalog and the month's records concurrently.
func (s *StatsService) load(ctx context.Context, userID string, year int, month time.Month) ([]core.Practice, []core.DailyRecord, error) {
	var (
		items   []core.Practice
		records []core.DailyRecord
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		raw, err := s.catalogSrc.ListActivePractices(gctx)
		if err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}
		items = catalog.ResolveInPlace(raw)
		return nil
	})
	g.Go(func() error {
		rows, err := s.records.MonthRecords(gctx, userID, year, month)
		if err != nil {
			return fmt.Errorf("load month records: %w", err)
		}
		records = rows
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return items, records, nil
}

// Monthly returns the cadence-aware aggregation for one calendar month,
// serving a cached result when one is still live.
func (s *StatsService) Monthly(ctx context.Context, userID string, year int, month time.Month) (stats.Result, error) {
	key := monthKey(userID, year, month)
	if result, ok := s.results.Get(key); ok {
		s.logger.DebugContext(ctx, "Monthly stats served from cache",
			log.FieldOperation, log.OpMonthly, log.FieldCacheKey, key, log.FieldCacheHit, true)
		return result, nil
	}

	items, records, err := s.load(ctx, userID, year, month)
	if err != nil {
		return stats.Result{}, err
	}

	result := stats.Monthly(items, records)
	s.results.Set(key, result)

	s.logger.InfoContext(ctx, "Monthly stats computed",
		log.FieldOperation, log.OpMonthly,
		log.FieldUserID, userID, log.FieldYear, year, log.FieldMonth, int(month),
		"filled_days", result.FilledDays, "average", result.Average)
	return result, nil
}

// Recap returns the journal view for the month containing today.
func (s *StatsService) Recap(ctx context.Context, userID string, today core.DateKey) ([]stats.DayRecap, error) {
	t := today.Time()
	items, records, err := s.load(ctx, userID, t.Year(), t.Month())
	if err != nil {
		return nil, err
	}
	return stats.Recap(items, records, today), nil
}

// SaveRecord writes one day's record and invalidates the affected month's
// cached result.
func (s *StatsService) SaveRecord(ctx context.Context, userID string, record core.DailyRecord) error {
	if err := s.records.UpsertDailyRecord(ctx, userID, record); err != nil {
		return fmt.Errorf("save record: %w", err)
	}
	t := record.Date.Time()
	s.results.Delete(monthKey(userID, t.Year(), t.Month()))
	return nil
}

func monthKey(userID string, year int, month time.Month) string {
	return fmt.Sprintf("%s:%04d-%02d", userID, year, month)
}
