package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is the env-driven runtime configuration.
type Config struct {
	// Database
	SQLiteDBPath string

	// Identity of the single local user the records belong to.
	UserID string

	// Tracker
	StateNamespace string
	SaveDebounce   time.Duration

	// Stats
	StatsCacheSize int
	StatsCacheTTL  time.Duration

	// Display
	TrendDays int

	// Logging
	LogLevel string
}

// Load reads the configuration from the environment, applying defaults for
// anything unset.
func Load() *Config {
	return &Config{
		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/yaumiyah.db"),

		UserID: getEnv("YAUMIYAH_USER", "local"),

		StateNamespace: getEnv("STATE_NAMESPACE", "yaumiyah.v1"),
		SaveDebounce:   getEnvDuration("SAVE_DEBOUNCE", 500*time.Millisecond),

		StatsCacheSize: getEnvInt("STATS_CACHE_SIZE", 32),
		StatsCacheTTL:  getEnvDuration("STATS_CACHE_TTL", 5*time.Minute),

		TrendDays: getEnvInt("TREND_DAYS", 7),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

// Validate checks the configuration and returns one error naming every
// problem found.
func (c *Config) Validate() error {
	var problems []string

	if c.SQLiteDBPath == "" {
		problems = append(problems, "SQLite database path cannot be empty")
	}
	if strings.TrimSpace(c.UserID) == "" {
		problems = append(problems, "user id cannot be empty")
	}
	if strings.TrimSpace(c.StateNamespace) == "" {
		problems = append(problems, "state namespace cannot be empty")
	}
	if c.SaveDebounce < 0 {
		problems = append(problems, fmt.Sprintf("save debounce %v cannot be negative", c.SaveDebounce))
	}
	if c.StatsCacheSize < 1 {
		problems = append(problems, fmt.Sprintf("stats cache size %d must be at least 1", c.StatsCacheSize))
	}
	if c.StatsCacheTTL <= 0 {
		problems = append(problems, fmt.Sprintf("stats cache TTL %v must be positive", c.StatsCacheTTL))
	}
	if c.TrendDays < 1 || c.TrendDays > 365 {
		problems = append(problems, fmt.Sprintf("trend days %d must be between 1 and 365", c.TrendDays))
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		problems = append(problems, err.Error())
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(problems, "; "))
	}
	return nil
}

// ParseLevel maps a configured level name to a slog level.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid log level %q: must be debug, info, warn or error", level)
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}
