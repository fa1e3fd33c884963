package lifecycle

import (
	"context"
)

// SchemaManager creates the destination SQLite schema.
// Schema management is idempotent - safe to run multiple times.
type SchemaManager interface {
	// Create creates the destination file if it does not exist and brings
	// its schema to the latest version.
	Create(ctx context.Context, path string) error

	// Version returns the schema version of the destination file.
	Version(ctx context.Context, path string) (int64, error)
}
