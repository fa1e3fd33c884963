package lifecycle

import (
	"context"

	"github.com/gnames/symbdb/pkg/schema"
)

// Sink appends rows to the destination file.
type Sink interface {
	// Path is the destination file.
	Path() string

	// Init creates the destination file and its schema if needed.
	Init(ctx context.Context) error

	// Append adds records to their table in one transaction and returns
	// the number of rows inserted. Rows that already exist are skipped.
	Append(ctx context.Context, recs schema.Records) (int, error)

	// Collection returns the collid of the collection with the given name,
	// creating the collection when it does not exist.
	Collection(ctx context.Context, name string) (int64, error)

	// Optimize updates planner statistics and compacts the file. It is
	// called once after the last write of a run.
	Optimize(ctx context.Context) error
}

// Cache keeps intermediate results between runs.
type Cache interface {
	// Load decodes the value stored under key into v. It returns false
	// when nothing is stored.
	Load(key string, v any) (bool, error)

	// Store saves v under key.
	Store(key string, v any) error

	// Clear removes all stored values.
	Clear() error
}
