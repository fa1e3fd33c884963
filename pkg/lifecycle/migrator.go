package lifecycle

import (
	"context"
	"time"
)

// Migrator copies the filtered subset of a Symbiota database into the
// destination file.
type Migrator interface {
	Migrate(ctx context.Context) (*Summary, error)
}

// Ingester appends occurrences from a tab-separated file to the
// destination.
type Ingester interface {
	Ingest(ctx context.Context, path string) (*Summary, error)
}

// Summary describes a finished run.
type Summary struct {
	// RunID identifies the run in logs and metrics.
	RunID string

	// Output is the destination file.
	Output string

	// Rows is the number of rows per table inserted into the destination.
	// During a dry run it is the number of rows that would be sent.
	Rows map[string]int

	// Skipped is the number of rows per table that were not inserted
	// because their keys already existed in the destination.
	Skipped map[string]int

	// ClosureRounds is the number of taxaenumtree fetches. It is zero when
	// the closure came from cache.
	ClosureRounds int

	// Batches is the number of occurrence batches.
	Batches int

	// Duration of the run.
	Duration time.Duration

	DryRun bool
}
