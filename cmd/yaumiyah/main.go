package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"yaumiyah/internal/cli"
	"yaumiyah/internal/config"
	"yaumiyah/internal/core"
	"yaumiyah/internal/log"
	"yaumiyah/internal/services"
	"yaumiyah/internal/stats"
)

const usage = `usage: yaumiyah <command> [args]

commands:
  today                     show today's checklist, progress and streak
  check <id> [on|off]       mark a tracked practice for today (default on)
  toggle <id>               enable or disable a tracked practice
  record <date> <code>=<v>  save a day's record, e.g. 2024-01-02 tilawah=2 puasa=1
  stats [YYYY-MM]           monthly per-practice success rates (default: this month)
  recap                     journal view for the current month
`

func main() {
	cli.LoadEnvFile()

	level, err := config.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		level = slog.LevelInfo
	}
	logger := cli.SetupLogger(level)
	cfg := cli.LoadAndValidateConfig(logger)

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	logger.Debug("Starting yaumiyah", log.FieldOperation, log.OpStartup, "db_path", cfg.SQLiteDBPath)

	repo := cli.InitSQLite(logger, cfg.SQLiteDBPath)
	defer repo.Close()

	trackerSvc := services.NewTrackerService(
		repo.TrackerStore(cfg.StateNamespace), cfg.SaveDebounce, nil,
		logger.WithComponent(log.ComponentTracker))
	defer func() {
		if err := trackerSvc.Close(); err != nil {
			logger.Error("Failed to flush tracker state", log.FieldOperation, log.OpShutdown, log.FieldError, err)
		}
	}()

	statsSvc := services.NewStatsService(repo, repo, cfg.StatsCacheSize, cfg.StatsCacheTTL,
		logger.WithComponent(log.ComponentStats))

	ctx, cancel := cli.Interrupt()
	defer cancel()

	if err := run(ctx, cfg, trackerSvc, statsSvc, os.Args[1], os.Args[2:]); err != nil {
		logger.Error("Command failed", "command", os.Args[1], log.FieldError, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, trackerSvc *services.TrackerService, statsSvc *services.StatsService, command string, args []string) error {
	if err := trackerSvc.Initialize(ctx); err != nil {
		return err
	}
	if err := trackerSvc.EnsureTodayInitialized(ctx); err != nil {
		return err
	}

	switch command {
	case "today":
		return runToday(cfg, trackerSvc)
	case "check":
		return runCheck(ctx, trackerSvc, args)
	case "toggle":
		return runToggle(ctx, trackerSvc, args)
	case "record":
		return runRecord(ctx, cfg, statsSvc, args)
	case "stats":
		return runStats(ctx, cfg, statsSvc, args)
	case "recap":
		return runRecap(ctx, cfg, statsSvc, trackerSvc.TodayKey())
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

func runToday(cfg *config.Config, svc *services.TrackerService) error {
	today := svc.TodayKey()
	fmt.Printf("%s\n\n", today)

	for _, p := range svc.Practices() {
		if !p.Enabled {
			fmt.Printf("  --- %s (off)\n", p.Label)
			continue
		}
		mark := "[ ]"
		if svc.IsChecked(today, p.ID) {
			mark = "[x]"
		}
		fmt.Printf("  %s %s\n", mark, p.Label)
	}

	progress := svc.TodayProgress()
	fmt.Printf("\nprogress: %d/%d (%d%%)\n", progress.Done, progress.Total, progress.Pct)
	fmt.Printf("streak:   %d day(s)\n", svc.Streak())

	fmt.Print("trend:   ")
	for _, day := range svc.LastNDays(cfg.TrendDays) {
		fmt.Printf(" %s=%d%%", day.Date, day.Pct)
	}
	fmt.Println()
	return nil
}

func runCheck(ctx context.Context, svc *services.TrackerService, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("check: practice id required")
	}
	checked := true
	if len(args) > 1 {
		switch args[1] {
		case "on":
		case "off":
			checked = false
		default:
			return fmt.Errorf("check: want on or off, got %q", args[1])
		}
	}
	return svc.SetChecked(ctx, svc.TodayKey(), args[0], checked)
}

func runToggle(ctx context.Context, svc *services.TrackerService, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("toggle: practice id required")
	}
	return svc.ToggleEnabled(ctx, args[0])
}

func runRecord(ctx context.Context, cfg *config.Config, svc *services.StatsService, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("record: want <date> <code>=<value>...")
	}
	date, err := core.ParseDateKey(args[0])
	if err != nil {
		return err
	}

	checks := core.Checks{}
	for _, pair := range args[1:] {
		code, raw, ok := strings.Cut(pair, "=")
		if !ok {
			return fmt.Errorf("record: want <code>=<value>, got %q", pair)
		}
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("record: bad value for %s: %w", code, err)
		}
		checks[code] = core.CheckValue(value)
	}

	return svc.SaveRecord(ctx, cfg.UserID, core.DailyRecord{Date: date, Checks: checks})
}

func runStats(ctx context.Context, cfg *config.Config, svc *services.StatsService, args []string) error {
	year, month, err := parseMonthArg(args)
	if err != nil {
		return err
	}

	result, err := svc.Monthly(ctx, cfg.UserID, year, month)
	if err != nil {
		return err
	}
	if result.Empty {
		fmt.Printf("%04d-%02d: no filled days\n", year, month)
		return nil
	}

	fmt.Printf("%04d-%02d  filled days: %d  average: %d%%\n\n", year, month, result.FilledDays, result.Average)
	for _, score := range result.Ranking {
		fmt.Printf("  %3d%%  %-24s %s\n", score.Percentage, score.Label(), score.Cadence)
	}
	return nil
}

func runRecap(ctx context.Context, cfg *config.Config, svc *services.StatsService, today core.DateKey) error {
	days, err := svc.Recap(ctx, cfg.UserID, today)
	if err != nil {
		return err
	}
	for _, day := range days {
		fmt.Printf("  %s  %3d%%  %s\n", day.Date, day.Pct, badgeText(day.Badge))
	}
	return nil
}

func badgeText(b stats.Badge) string {
	switch b {
	case stats.BadgePerfect:
		return "perfect"
	case stats.BadgeGood:
		return "good"
	case stats.BadgePoor:
		return "poor"
	default:
		return "-"
	}
}

// parseMonthArg reads an optional YYYY-MM argument, defaulting to the
// current month in the tracking zone.
func parseMonthArg(args []string) (int, time.Month, error) {
	if len(args) == 0 {
		t := core.TodayKey(time.Now()).Time()
		return t.Year(), t.Month(), nil
	}
	t, err := time.Parse("2006-01", args[0])
	if err != nil {
		return 0, 0, fmt.Errorf("stats: want YYYY-MM, got %q", args[0])
	}
	return t.Year(), t.Month(), nil
}
