package config

import (
	"strings"
	"time"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptSourceDriver sets the source database driver.
// Valid values: "mysql", "postgres".
func OptSourceDriver(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Source.Driver", s) {
			c.Source.Driver = s
		}
	}
}

// OptSourceHost sets the source server hostname or IP address.
func OptSourceHost(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Source Host", s) {
			c.Source.Host = s
		}
	}
}

// OptSourcePort sets the source server port number.
func OptSourcePort(i int) Option {
	return func(c *Config) {
		if isValidInt("Source Port", i) {
			c.Source.Port = i
		}
	}
}

// OptSourceUser sets the source database username.
func OptSourceUser(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Source User", s) {
			c.Source.User = s
		}
	}
}

// OptSourcePassword sets the source database password.
func OptSourcePassword(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Source Password", s) {
			c.Source.Password = s
		}
	}
}

// OptSourceDatabase sets the source database name.
func OptSourceDatabase(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Source Database", s) {
			c.Source.Database = s
		}
	}
}

// OptSourceSSLMode sets the SSL connection mode for postgres sources.
// Valid values: "disable", "require", "verify-ca", "verify-full".
func OptSourceSSLMode(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Source.SSLMode", s) {
			c.Source.SSLMode = s
		}
	}
}

// OptSourceTimeout sets the time limit of one query attempt.
func OptSourceTimeout(d time.Duration) Option {
	return func(c *Config) {
		if isValidDuration("Source Timeout", d) {
			c.Source.Timeout = d
		}
	}
}

// OptSourceAttempts sets how many times a failing query is tried.
func OptSourceAttempts(i int) Option {
	return func(c *Config) {
		if isValidInt("Source Attempts", i) {
			c.Source.Attempts = i
		}
	}
}

// OptSourceBackoff sets the pause after the first failed attempt.
func OptSourceBackoff(d time.Duration) Option {
	return func(c *Config) {
		if isValidDuration("Source Backoff", d) {
			c.Source.Backoff = d
		}
	}
}

// OptSourceMaxParams sets the largest IN (...) list sent in one query.
func OptSourceMaxParams(i int) Option {
	return func(c *Config) {
		if isValidInt("Source Max Params", i) {
			c.Source.MaxParams = i
		}
	}
}

// OptSinkOutputDir sets the directory for dated output files.
func OptSinkOutputDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Sink Output Dir", s) {
			c.Sink.OutputDir = s
		}
	}
}

// OptSinkPath sets an explicit output file, overriding the dated name.
func OptSinkPath(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Sink Path", s) {
			c.Sink.Path = s
		}
	}
}

// OptCacheDir overrides the default cache directory.
func OptCacheDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Cache Dir", s) {
			c.Cache.Dir = s
		}
	}
}

// OptMigrateClearCache sets whether cached tables are removed before a run.
// Runtime-only field - not in ToOptions().
func OptMigrateClearCache(b bool) Option {
	return func(c *Config) {
		c.Migrate.ClearCache = b
	}
}

// OptMigrateDryRun sets whether the destination file is left untouched.
// Runtime-only field - not in ToOptions().
func OptMigrateDryRun(b bool) Option {
	return func(c *Config) {
		c.Migrate.DryRun = b
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text", "tint".
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stderr", "stdout".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptMetricsTextfile sets the Prometheus textfile path.
func OptMetricsTextfile(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Metrics Textfile", s) {
			c.Metrics.Textfile = s
		}
	}
}

// OptBatchSize sets the number of occurrences migrated per batch.
func OptBatchSize(i int) Option {
	return func(c *Config) {
		if isValidInt("Batch Size", i) {
			c.BatchSize = i
		}
	}
}

// OptHomeDir sets the home directory for config, cache, and log locations.
// Set once at startup from os.UserHomeDir().
// Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}
