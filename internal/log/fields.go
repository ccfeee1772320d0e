package log

// Common field names for structured logging.
const (
	FieldComponent = "component"
	FieldOperation = "operation"
	FieldDuration  = "duration_ms"
	FieldError     = "error"
	FieldUserID    = "user_id"
	FieldDate      = "log_date"
	FieldPractice  = "practice"
	FieldYear      = "year"
	FieldMonth     = "month"
	FieldCacheKey  = "cache_key"
	FieldCacheHit  = "cache_hit"
)

// Standard component names.
const (
	ComponentApp     = "app"
	ComponentTracker = "tracker"
	ComponentStats   = "stats"
	ComponentCatalog = "catalog"
	ComponentStorage = "storage"
	ComponentCache   = "cache"
	ComponentCLI     = "cli"
)

// Standard operation names.
const (
	OpInitialize = "initialize"
	OpEnsureDay  = "ensure_day"
	OpToggle     = "toggle"
	OpCheck      = "check"
	OpProgress   = "progress"
	OpStreak     = "streak"
	OpMonthly    = "monthly"
	OpRecap      = "recap"
	OpStartup    = "startup"
	OpShutdown   = "shutdown"
)
