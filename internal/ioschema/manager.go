// Package ioschema creates and opens the destination SQLite file.
// The schema is kept as goose migrations embedded into the binary, so an
// older output file is brought up to date before new data is appended.
package ioschema

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/gnames/symbdb/internal/iofs"
	"github.com/gnames/symbdb/pkg/lifecycle"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// goose keeps its settings in package globals.
var gooseMu sync.Mutex

// manager implements the lifecycle.SchemaManager interface
// using goose migrations.
type manager struct{}

// NewManager creates a new SchemaManager.
func NewManager() lifecycle.SchemaManager {
	return &manager{}
}

// Create makes sure the destination file exists and has the current
// schema. It is safe to call on a file that is already up to date.
func (m *manager) Create(ctx context.Context, path string) error {
	db, err := Open(ctx, path)
	if err != nil {
		return err
	}
	defer db.Close()

	return Migrate(ctx, db, path)
}

// Version returns the schema version of the destination file.
func (m *manager) Version(ctx context.Context, path string) (int64, error) {
	db, err := Open(ctx, path)
	if err != nil {
		return 0, err
	}
	defer db.Close()

	gooseMu.Lock()
	defer gooseMu.Unlock()
	if err = setupGoose(); err != nil {
		return 0, MigrateSchemaError(path, err)
	}
	v, err := goose.GetDBVersionContext(ctx, db)
	if err != nil {
		return 0, MigrateSchemaError(path, err)
	}
	return v, nil
}

// Open opens the destination SQLite file, creating its directory when
// needed. The caller closes the returned handle.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	if err := iofs.TouchDir(filepath.Dir(path)); err != nil {
		return nil, err
	}

	dsn := fmt.Sprintf(
		"file:%s?_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)",
		path,
	)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, OpenError(path, err)
	}
	// single writer
	db.SetMaxOpenConns(1)

	if err = db.PingContext(ctx); err != nil {
		db.Close()
		return nil, OpenError(path, err)
	}
	return db, nil
}

// Migrate applies pending migrations to an open destination.
func Migrate(ctx context.Context, db *sql.DB, path string) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	if err := setupGoose(); err != nil {
		return MigrateSchemaError(path, err)
	}
	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return MigrateSchemaError(path, err)
	}
	return nil
}

func setupGoose() error {
	goose.SetBaseFS(EmbedMigrations)
	goose.SetLogger(goose.NopLogger())
	return goose.SetDialect("sqlite3")
}
