package config

import (
	"fmt"
	"path/filepath"
	"time"
)

var (
	// AppName is used in generating file system paths.
	AppName = "symbdb"

	// OutputSuffix follows the date in generated output file names.
	OutputSuffix = "_symbscan.sqlite"
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/symbdb by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// CacheDir returns the directory path for cache files.
// Returns ~/.cache/symbdb by default.
func CacheDir(homeDir string) string {
	return filepath.Join(homeDir, ".cache", AppName)
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/symbdb/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "logs")
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/symbdb/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}

// FiltersFilePath returns the full path to the filters.yaml file.
// Returns ~/.config/symbdb/filters.yaml by default.
func FiltersFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "filters.yaml")
}

// MyCnfPath returns the path to the MySQL client options file.
func MyCnfPath(homeDir string) string {
	return filepath.Join(homeDir, ".my.cnf")
}

// TablesCacheDir returns the directory where fetched tables are cached.
func (c *Config) TablesCacheDir() string {
	if c.Cache.Dir != "" {
		return c.Cache.Dir
	}
	return filepath.Join(CacheDir(c.HomeDir), "tables")
}

// OutputPath returns the destination SQLite file for a run started at t.
// Sink.Path wins when set, otherwise the file is named after the date.
func (c *Config) OutputPath(t time.Time) string {
	if c.Sink.Path != "" {
		return c.Sink.Path
	}
	name := fmt.Sprintf("%s%s", t.Format("2006-01-02"), OutputSuffix)
	return filepath.Join(c.Sink.OutputDir, name)
}
