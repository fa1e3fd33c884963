// Package config provides configuration management for symbdb.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// Source database credentials missing from all of the above are read from
// the [client] section of ~/.my.cnf.
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Source: driver, host, port, user, password, database, ssl_mode,
//     timeout, attempts, backoff, max_params
//   - Sink: output_dir, path
//   - Cache: dir
//   - Log: level, format, destination
//   - Metrics: textfile
//   - General: batch_size
//
// Runtime-only fields (CLI flags only):
//   - Migrate.ClearCache, Migrate.DryRun (per-command)
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use SYMBDB_ prefix with underscores for nesting:
//
//	SYMBDB_SOURCE_HOST=localhost
//	SYMBDB_SOURCE_PORT=3306
//	SYMBDB_LOG_LEVEL=info
//	SYMBDB_BATCH_SIZE=1000000
package config

import (
	"time"
)

// Config represents the complete symbdb configuration.
type Config struct {
	// Source contains connection settings of the Symbiota database the
	// occurrences are migrated from.
	Source SourceConfig `mapstructure:"source" yaml:"source"`

	// Sink contains settings of the SQLite file data is migrated to.
	Sink SinkConfig `mapstructure:"sink" yaml:"sink"`

	// Cache contains settings of the on-disk cache of fetched tables.
	Cache CacheConfig `mapstructure:"cache" yaml:"cache"`

	// Migrate contains settings specific to the migrate command.
	Migrate MigrateConfig `mapstructure:"migrate" yaml:"migrate"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	Metrics MetricsConfig `mapstructure:"metrics" yaml:"metrics"`

	// BatchSize is the number of occurrences fetched and written at once.
	// Full occurrence rows are wide, so only one batch is kept in memory.
	BatchSize int `mapstructure:"batch_size" yaml:"batch_size"`

	// HomeDir determines where config, cache and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// SourceConfig contains connection parameters of the source database.
type SourceConfig struct {
	// Driver is either "mysql" (Symbiota portals) or "postgres" (mirrors).
	Driver string `mapstructure:"driver" yaml:"driver"`

	// Host is the database server hostname or IP address.
	Host string `mapstructure:"host" yaml:"host"`

	// Port is the database server port number.
	Port int `mapstructure:"port" yaml:"port"`

	// User is the database username. When empty, credentials are taken
	// from ~/.my.cnf.
	User string `mapstructure:"user" yaml:"user"`

	// Password is the database password.
	Password string `mapstructure:"password" yaml:"password"`

	// Database is the name of the Symbiota database.
	Database string `mapstructure:"database" yaml:"database"`

	// SSLMode specifies the SSL connection mode (postgres only).
	// Valid values: "disable", "require", "verify-ca", "verify-full"
	SSLMode string `mapstructure:"ssl_mode" yaml:"ssl_mode"`

	// Timeout limits a single query attempt.
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`

	// Attempts is how many times a failing query is tried before giving up.
	Attempts int `mapstructure:"attempts" yaml:"attempts"`

	// Backoff is the pause after the first failed attempt, it doubles
	// after every following failure.
	Backoff time.Duration `mapstructure:"backoff" yaml:"backoff"`

	// MaxParams is the largest number of identifiers sent in one IN (...)
	// list. Longer lists are split into several queries.
	MaxParams int `mapstructure:"max_params" yaml:"max_params"`
}

// SinkConfig contains settings of the destination SQLite file.
type SinkConfig struct {
	// OutputDir is the directory where dated output files are created.
	OutputDir string `mapstructure:"output_dir" yaml:"output_dir"`

	// Path overrides the dated file name when not empty.
	Path string `mapstructure:"path" yaml:"path"`
}

// CacheConfig contains settings of the on-disk table cache.
type CacheConfig struct {
	// Dir overrides the default cache directory (~/.cache/symbdb/tables).
	Dir string `mapstructure:"dir" yaml:"dir"`
}

// MigrateConfig contains settings specific to the migrate command.
type MigrateConfig struct {
	// ClearCache removes cached tables before the run starts.
	ClearCache bool `mapstructure:"clear_cache" yaml:"clear_cache"`

	// DryRun fetches (and caches) all data without writing the
	// destination file.
	DryRun bool `mapstructure:"dry_run" yaml:"dry_run"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json', 'text' or 'tint' (compact, colored on a terminal).
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// MetricsConfig describes where run metrics are exported.
type MetricsConfig struct {
	// Textfile is a path for Prometheus text exposition output, suitable
	// for node_exporter textfile collector. Empty disables export.
	Textfile string `mapstructure:"textfile" yaml:"textfile"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Source: SourceConfig{
			Driver:    "mysql",
			Host:      "localhost",
			Port:      3306,
			Database:  "symbscan",
			SSLMode:   "disable",
			Timeout:   10 * time.Minute,
			Attempts:  3,
			Backoff:   2 * time.Second,
			MaxParams: 30_000,
		},
		Sink: SinkConfig{
			OutputDir: ".",
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
		BatchSize: 1_000_000,
	}

	return res
}
