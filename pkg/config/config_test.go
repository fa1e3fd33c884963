package config_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/gnames/symbdb/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirs(t *testing.T) {
	tempHome := t.TempDir()

	tests := []struct {
		msg string
		fn  func(string) string
		res string
	}{
		{
			msg: "config dir",
			fn:  config.ConfigDir,
			res: filepath.Join(tempHome, ".config", "symbdb"),
		},
		{
			msg: "cache dir",
			fn:  config.CacheDir,
			res: filepath.Join(tempHome, ".cache", "symbdb"),
		},
		{
			msg: "log dir",
			fn:  config.LogDir,
			res: filepath.Join(tempHome, ".local", "share", "symbdb", "logs"),
		},
		{
			msg: "filters file",
			fn:  config.FiltersFilePath,
			res: filepath.Join(tempHome, ".config", "symbdb", "filters.yaml"),
		},
		{
			msg: "my.cnf",
			fn:  config.MyCnfPath,
			res: filepath.Join(tempHome, ".my.cnf"),
		},
	}

	for _, v := range tests {
		res := v.fn(tempHome)
		assert.Equal(t, v.res, res, v.msg)
	}
}

func TestNew(t *testing.T) {
	cfg := config.New()
	require.NotNil(t, cfg)

	assert.Equal(t, "mysql", cfg.Source.Driver)
	assert.Equal(t, "localhost", cfg.Source.Host)
	assert.Equal(t, 3306, cfg.Source.Port)
	assert.Equal(t, "", cfg.Source.User)
	assert.Equal(t, "symbscan", cfg.Source.Database)
	assert.Equal(t, 10*time.Minute, cfg.Source.Timeout)
	assert.Equal(t, 3, cfg.Source.Attempts)
	assert.Equal(t, 2*time.Second, cfg.Source.Backoff)
	assert.Equal(t, 30_000, cfg.Source.MaxParams)

	assert.Equal(t, ".", cfg.Sink.OutputDir)
	assert.Equal(t, "", cfg.Sink.Path)
	assert.Equal(t, 1_000_000, cfg.BatchSize)

	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "file", cfg.Log.Destination)

	assert.False(t, cfg.Migrate.ClearCache)
	assert.False(t, cfg.Migrate.DryRun)
}

func TestOptionSourceDriver(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "mysql", input: "mysql", expected: "mysql"},
		{name: "postgres", input: "postgres", expected: "postgres"},
		{name: "case insensitive", input: " PostgreS ", expected: "postgres"},
		{name: "ignores unknown", input: "oracle", expected: "mysql"},
		{name: "ignores empty", input: "", expected: "mysql"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{config.OptSourceDriver(tt.input)})
			assert.Equal(t, tt.expected, cfg.Source.Driver)
		})
	}
}

func TestOptionSourceHost(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "sets valid host", input: "db.example.org", expected: "db.example.org"},
		{name: "trims whitespace", input: "  db.example.org ", expected: "db.example.org"},
		{name: "ignores empty string", input: "", expected: "localhost"},
		{name: "ignores whitespace-only", input: "   ", expected: "localhost"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{config.OptSourceHost(tt.input)})
			assert.Equal(t, tt.expected, cfg.Source.Host)
		})
	}
}

func TestOptionInts(t *testing.T) {
	tests := []struct {
		name  string
		opt   config.Option
		field func(*config.Config) int
		want  int
	}{
		{
			name:  "port",
			opt:   config.OptSourcePort(5432),
			field: func(c *config.Config) int { return c.Source.Port },
			want:  5432,
		},
		{
			name:  "negative port ignored",
			opt:   config.OptSourcePort(-1),
			field: func(c *config.Config) int { return c.Source.Port },
			want:  3306,
		},
		{
			name:  "attempts",
			opt:   config.OptSourceAttempts(5),
			field: func(c *config.Config) int { return c.Source.Attempts },
			want:  5,
		},
		{
			name:  "zero attempts ignored",
			opt:   config.OptSourceAttempts(0),
			field: func(c *config.Config) int { return c.Source.Attempts },
			want:  3,
		},
		{
			name:  "max params",
			opt:   config.OptSourceMaxParams(1000),
			field: func(c *config.Config) int { return c.Source.MaxParams },
			want:  1000,
		},
		{
			name:  "batch size",
			opt:   config.OptBatchSize(500),
			field: func(c *config.Config) int { return c.BatchSize },
			want:  500,
		},
		{
			name:  "zero batch size ignored",
			opt:   config.OptBatchSize(0),
			field: func(c *config.Config) int { return c.BatchSize },
			want:  1_000_000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{tt.opt})
			assert.Equal(t, tt.want, tt.field(cfg))
		})
	}
}

func TestOptionDurations(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptSourceTimeout(time.Minute),
		config.OptSourceBackoff(0),
	})
	assert.Equal(t, time.Minute, cfg.Source.Timeout)
	assert.Equal(t, 2*time.Second, cfg.Source.Backoff, "zero backoff ignored")
}

func TestOptionLog(t *testing.T) {
	tests := []struct {
		name   string
		opt    config.Option
		level  string
		format string
		dest   string
	}{
		{
			name:  "level debug",
			opt:   config.OptLogLevel("DEBUG"),
			level: "debug", format: "json", dest: "file",
		},
		{
			name:  "bad level",
			opt:   config.OptLogLevel("trace"),
			level: "info", format: "json", dest: "file",
		},
		{
			name:  "text format",
			opt:   config.OptLogFormat("text"),
			level: "info", format: "text", dest: "file",
		},
		{
			name:  "stderr",
			opt:   config.OptLogDestination("stderr"),
			level: "info", format: "json", dest: "stderr",
		},
		{
			name:  "bad destination",
			opt:   config.OptLogDestination("syslog"),
			level: "info", format: "json", dest: "file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{tt.opt})
			assert.Equal(t, tt.level, cfg.Log.Level)
			assert.Equal(t, tt.format, cfg.Log.Format)
			assert.Equal(t, tt.dest, cfg.Log.Destination)
		})
	}
}

func TestMultipleOptions(t *testing.T) {
	t.Run("later options override earlier ones", func(t *testing.T) {
		cfg := config.New()
		cfg.Update([]config.Option{
			config.OptSourceHost("first.host.org"),
			config.OptSourceHost("second.host.org"),
		})
		assert.Equal(t, "second.host.org", cfg.Source.Host)
	})
}

func TestToOptions(t *testing.T) {
	t.Run("round trip of persistent fields", func(t *testing.T) {
		original := config.New()
		original.Update([]config.Option{
			config.OptSourceDriver("postgres"),
			config.OptSourceHost("test.host.org"),
			config.OptSourcePort(5432),
			config.OptSourceUser("testuser"),
			config.OptSourcePassword("testpass"),
			config.OptSourceDatabase("testdb"),
			config.OptSourceSSLMode("require"),
			config.OptSourceTimeout(time.Minute),
			config.OptSourceAttempts(7),
			config.OptSourceBackoff(time.Second),
			config.OptSourceMaxParams(100),
			config.OptSinkOutputDir("/tmp/out"),
			config.OptSinkPath("/tmp/out/x.sqlite"),
			config.OptCacheDir("/tmp/cache"),
			config.OptLogLevel("debug"),
			config.OptLogFormat("text"),
			config.OptLogDestination("stdout"),
			config.OptMetricsTextfile("/tmp/symbdb.prom"),
			config.OptBatchSize(10),
		})

		newCfg := config.New()
		newCfg.Update(original.ToOptions())

		assert.Equal(t, original.Source, newCfg.Source)
		assert.Equal(t, original.Sink, newCfg.Sink)
		assert.Equal(t, original.Cache, newCfg.Cache)
		assert.Equal(t, original.Log, newCfg.Log)
		assert.Equal(t, original.Metrics, newCfg.Metrics)
		assert.Equal(t, original.BatchSize, newCfg.BatchSize)
	})

	t.Run("excludes runtime-only fields", func(t *testing.T) {
		cfg := config.New()
		cfg.Update([]config.Option{
			config.OptHomeDir("/custom/home"),
			config.OptMigrateClearCache(true),
			config.OptMigrateDryRun(true),
		})

		newCfg := config.New()
		newCfg.Update(cfg.ToOptions())

		assert.Equal(t, "", newCfg.HomeDir)
		assert.False(t, newCfg.Migrate.ClearCache)
		assert.False(t, newCfg.Migrate.DryRun)
	})
}

func TestOutputPath(t *testing.T) {
	ts := time.Date(2026, 3, 9, 15, 4, 0, 0, time.UTC)

	cfg := config.New()
	cfg.Update([]config.Option{config.OptSinkOutputDir("/data")})
	assert.Equal(t, "/data/2026-03-09_symbscan.sqlite", cfg.OutputPath(ts))

	cfg.Update([]config.Option{config.OptSinkPath("/other/file.sqlite")})
	assert.Equal(t, "/other/file.sqlite", cfg.OutputPath(ts))
}

func TestTablesCacheDir(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{config.OptHomeDir("/home/u")})
	assert.Equal(t, "/home/u/.cache/symbdb/tables", cfg.TablesCacheDir())

	cfg.Update([]config.Option{config.OptCacheDir("/var/cache/symb")})
	assert.Equal(t, "/var/cache/symb", cfg.TablesCacheDir())
}
