// Package iotesting provides shared test utilities.
// This is an internal package for test infrastructure only.
package iotesting

import (
	"os"
	"strconv"
	"testing"

	"github.com/gnames/symbdb/pkg/config"
)

// Environment variables describing a disposable Symbiota database for
// integration tests. Tests that need it are skipped when
// SYMBDB_TEST_SOURCE_HOST is not set.
const (
	EnvHost     = "SYMBDB_TEST_SOURCE_HOST"
	EnvDriver   = "SYMBDB_TEST_SOURCE_DRIVER"
	EnvPort     = "SYMBDB_TEST_SOURCE_PORT"
	EnvUser     = "SYMBDB_TEST_SOURCE_USER"
	EnvPassword = "SYMBDB_TEST_SOURCE_PASSWORD"
	EnvDatabase = "SYMBDB_TEST_SOURCE_DATABASE"
)

// SourceConfig returns the source configuration for integration tests.
//
// Usage:
//
//	func TestSomething(t *testing.T) {
//	    cfg := iotesting.SourceConfig(t)
//	    // ... connect with cfg
//	}
func SourceConfig(t *testing.T) *config.SourceConfig {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	host := os.Getenv(EnvHost)
	if host == "" {
		t.Skipf("skipping integration test, %s is not set", EnvHost)
	}

	cfg := config.New().Source
	cfg.Host = host
	if v := os.Getenv(EnvDriver); v != "" {
		cfg.Driver = v
	}
	if cfg.Driver == "postgres" {
		cfg.Port = 5432
	}
	if v := os.Getenv(EnvPort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			t.Fatalf("bad %s: %v", EnvPort, err)
		}
		cfg.Port = port
	}
	cfg.User = os.Getenv(EnvUser)
	cfg.Password = os.Getenv(EnvPassword)
	if v := os.Getenv(EnvDatabase); v != "" {
		cfg.Database = v
	}
	return &cfg
}

// SetupHome points HOME to a temporary directory, so config, cache and log
// files of a test never touch the real ones.
func SetupHome(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	return dir
}
