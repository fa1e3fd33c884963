// Package iosink appends migrated rows to the destination SQLite file.
//
// The file is opened and closed around every write and each write is a
// single transaction, so a failed run leaves every earlier write intact.
// By default rows that collide with existing keys are skipped, which lets
// a rerun append to a partially written file. A strict sink rejects the
// whole write instead.
package iosink

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gnames/symbdb/internal/ioschema"
	"github.com/gnames/symbdb/pkg/lifecycle"
	"github.com/gnames/symbdb/pkg/schema"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

type sink struct {
	path   string
	strict bool
}

// Option configures a sink.
type Option func(*sink)

// OptStrict makes Append fail with a conflict error when a row collides
// with an existing key. Nothing of the failed write is kept.
func OptStrict() Option {
	return func(s *sink) {
		s.strict = true
	}
}

// New creates a sink writing to the SQLite file at path.
func New(path string, opts ...Option) lifecycle.Sink {
	res := &sink{path: path}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

func (s *sink) Path() string {
	return s.path
}

func (s *sink) Init(ctx context.Context) error {
	return ioschema.NewManager().Create(ctx, s.path)
}

func (s *sink) Append(ctx context.Context, recs schema.Records) (int, error) {
	if recs.Len() == 0 {
		return 0, nil
	}

	db, err := ioschema.Open(ctx, s.path)
	if err != nil {
		return 0, err
	}
	defer db.Close()

	q := InsertSQL(recs.Table(), recs.Columns())
	if s.strict {
		q = StrictInsertSQL(recs.Table(), recs.Columns())
	}
	res, err := insert(ctx, db, q, recs)
	if err != nil {
		if s.strict && isConstraint(err) {
			return 0, ConflictError(recs.Table(), s.path, err)
		}
		return 0, WriteError(recs.Table(), s.path, err)
	}

	slog.Info("Rows appended",
		"table", recs.Table(),
		"rows", recs.Len(),
		"inserted", res,
	)
	if skipped := recs.Len() - res; skipped > 0 {
		slog.Warn("Existing rows skipped",
			"table", recs.Table(),
			"skipped", skipped,
		)
	}
	return res, nil
}

func isConstraint(err error) bool {
	var se *sqlite.Error
	return errors.As(err, &se) && se.Code()&0xff == sqlite3.SQLITE_CONSTRAINT
}

func insert(
	ctx context.Context,
	db *sql.DB,
	q string,
	recs schema.Records,
) (int, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, q)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	var count int
	for i := range recs.Len() {
		r, err := stmt.ExecContext(ctx, recs.Values(i)...)
		if err != nil {
			return 0, fmt.Errorf("row %d: %w", i, err)
		}
		n, err := r.RowsAffected()
		if err != nil {
			return 0, err
		}
		count += int(n)
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return count, nil
}

// InsertSQL builds the statement for appending rows. Column names are
// quoted because several of them are SQL keywords.
func InsertSQL(table string, cols []string) string {
	return insertSQL("INSERT OR IGNORE", table, cols)
}

// StrictInsertSQL is InsertSQL without skipping of existing keys.
func StrictInsertSQL(table string, cols []string) string {
	return insertSQL("INSERT", table, cols)
}

func insertSQL(verb, table string, cols []string) string {
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = `"` + c + `"`
	}
	marks := strings.TrimSuffix(strings.Repeat("?,", len(cols)), ",")
	return fmt.Sprintf(
		"%s INTO %s (%s) VALUES (%s)",
		verb, table, strings.Join(quoted, ", "), marks,
	)
}

func (s *sink) Collection(ctx context.Context, name string) (int64, error) {
	db, err := ioschema.Open(ctx, s.path)
	if err != nil {
		return 0, err
	}
	defer db.Close()

	var collID int64
	q := "SELECT collid FROM omcollections WHERE collectionName = ? LIMIT 1"
	err = db.QueryRowContext(ctx, q, name).Scan(&collID)
	if err == nil {
		return collID, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, CollectionError(name, s.path, err)
	}

	r, err := db.ExecContext(ctx,
		"INSERT INTO omcollections (collectionName) VALUES (?)", name)
	if err != nil {
		return 0, CollectionError(name, s.path, err)
	}
	collID, err = r.LastInsertId()
	if err != nil {
		return 0, CollectionError(name, s.path, err)
	}

	slog.Info("Collection created", "name", name, "collid", collID)
	return collID, nil
}
