package types

// AppConfig represents the complete application configuration.
type AppConfig struct {
	Verbose  bool           `mapstructure:"verbose"`
	Config   string         `mapstructure:"config"`
	User     string         `mapstructure:"user" validate:"required,min=1"`
	Data     DataConfig     `mapstructure:"data" validate:"required"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Sync     SyncConfig     `mapstructure:"sync"`
	Features FeaturesConfig `mapstructure:"features"`
}

// DataConfig selects and configures the document-store backend.
type DataConfig struct {
	// Backend is "file" for a durable per-user document file, or "memory"
	// for an in-process store (useful for demos and tests).
	Backend string `mapstructure:"backend" validate:"required,oneof=file memory"`
	// Dir holds one document file per user when Backend is "file".
	Dir    string `mapstructure:"dir" validate:"required_if=Backend file"`
	Format string `mapstructure:"format" validate:"omitempty,oneof=json yaml"`
}

// CacheConfig configures the local durable snapshot cache.
type CacheConfig struct {
	// Path to the sqlite cache database. Empty disables caching.
	Path string `mapstructure:"path"`
}

// SyncConfig tunes subscription and write behavior.
type SyncConfig struct {
	// SnapshotLimit bounds each subscription emission to the most recent N
	// tasks. Clamped to [50, 100]; 0 means the default of 100.
	SnapshotLimit int `mapstructure:"snapshotLimit" validate:"omitempty,min=0,max=100"`
	// DebounceMs is the quiet window for coalescing rapid subtask writes to
	// the same task. 0 means the default of 200.
	DebounceMs int `mapstructure:"debounceMs" validate:"omitempty,min=0,max=5000"`
}

// FeaturesConfig toggles optional extensions layered onto the base task.
// Disabling a feature hides its surface in the presentation layer; the core
// model always carries the fields.
type FeaturesConfig struct {
	Priorities bool `mapstructure:"priorities"`
	Subtasks   bool `mapstructure:"subtasks"`
	GroupByDay bool `mapstructure:"groupByDay"`
}

const (
	// DefaultSnapshotLimit mirrors the original subscription's limit(100).
	DefaultSnapshotLimit = 100
	// MinSnapshotLimit is the lower clamp for configured limits.
	MinSnapshotLimit = 50
	// DefaultDebounceMs is the quiet window for coalesced subtask writes.
	DefaultDebounceMs = 200
)

// EffectiveSnapshotLimit applies defaulting and clamping to the configured
// snapshot limit.
func (c SyncConfig) EffectiveSnapshotLimit() int {
	if c.SnapshotLimit == 0 {
		return DefaultSnapshotLimit
	}
	if c.SnapshotLimit < MinSnapshotLimit {
		return MinSnapshotLimit
	}
	return c.SnapshotLimit
}

// EffectiveDebounceMs applies defaulting to the configured debounce window.
func (c SyncConfig) EffectiveDebounceMs() int {
	if c.DebounceMs == 0 {
		return DefaultDebounceMs
	}
	return c.DebounceMs
}
