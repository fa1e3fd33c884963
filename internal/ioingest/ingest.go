// Package ioingest appends occurrences from a tab-separated file to the
// destination.
//
// Only header columns that exist in omoccurrences are kept. All rows go
// to the collection named CollectionName, which is created on first use.
// Empty cells are stored as NULL, other cells as text that SQLite
// converts according to the column type. Only inserted rows are counted;
// rows whose occid already exists are reported as skipped, or fail the
// run when the sink is strict.
package ioingest

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/symbdb/internal/iofs"
	"github.com/gnames/symbdb/pkg/config"
	"github.com/gnames/symbdb/pkg/lifecycle"
	"github.com/gnames/symbdb/pkg/schema"
	"github.com/google/uuid"
)

// CollectionName is the collection that receives ingested occurrences.
const CollectionName = "csv_upload"

var (
	errNoColumns = errors.New("no column matches omoccurrences")
	errNotFile   = errors.New("not a regular file")
)

// Ingester implements lifecycle.Ingester.
type Ingester struct {
	cfg   *config.Config
	sink  lifecycle.Sink
	runID string
	bar   bool
}

// Option configures an Ingester.
type Option func(*Ingester)

// OptRunID sets the identifier of the run.
func OptRunID(id string) Option {
	return func(in *Ingester) {
		in.runID = id
	}
}

// OptProgressBar turns the progress bar on or off.
func OptProgressBar(b bool) Option {
	return func(in *Ingester) {
		in.bar = b
	}
}

// New creates an Ingester writing to sink.
func New(cfg *config.Config, sink lifecycle.Sink, opts ...Option) *Ingester {
	res := &Ingester{cfg: cfg, sink: sink, runID: uuid.NewString()}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

// Columns returns positions of header fields that are omoccurrences
// columns, and their names. The collid column is skipped because it is
// always set to the upload collection. Repeated names keep their first
// position.
func Columns(header []string) ([]int, []string) {
	var idx []int
	var names []string
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if h == "collid" || slices.Contains(names, h) {
			continue
		}
		if !schema.HasColumn[schema.Occurrence](h) {
			continue
		}
		idx = append(idx, i)
		names = append(names, h)
	}
	return idx, names
}

// Ingest appends all rows of the file at path in batches of
// cfg.BatchSize rows.
func (in *Ingester) Ingest(
	ctx context.Context,
	path string,
) (*lifecycle.Summary, error) {
	start := time.Now()
	table := schema.Occurrence{}.TableName()
	sum := &lifecycle.Summary{
		RunID:  in.runID,
		Output: in.sink.Path(),
		Rows:    map[string]int{table: 0},
		Skipped: make(map[string]int),
	}

	if !iofs.FileExists(path) {
		return nil, ReadError(path, 0, errNotFile)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, ReadError(path, 0, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = '\t'
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, HeaderError(path, err)
	}
	idx, cols := Columns(header)
	if len(idx) == 0 {
		return nil, HeaderError(path, errNoColumns)
	}
	slog.Info("Ingesting occurrences",
		"run_id", in.runID,
		"file", path,
		"columns", len(cols),
		"skipped", len(header)-len(cols),
	)

	if err = in.sink.Init(ctx); err != nil {
		return nil, err
	}
	collID, err := in.sink.Collection(ctx, CollectionName)
	if err != nil {
		return nil, err
	}

	var bar *pb.ProgressBar
	if in.bar {
		if fi, err := f.Stat(); err == nil {
			bar = pb.Full.Start64(fi.Size())
			bar.Set(pb.Bytes, true)
			bar.Set("prefix", "Ingesting: ")
			bar.Set(pb.CleanOnFinish, true)
			defer bar.Finish()
		}
	}

	size := max(in.cfg.BatchSize, 1)
	batch := newBatch(table, cols)
	rn := 0
	flush := func() error {
		if batch.Len() == 0 {
			return nil
		}
		n, err := in.sink.Append(ctx, batch)
		if err != nil {
			return err
		}
		sum.Rows[table] += n
		if batch.Len() > n {
			sum.Skipped[table] += batch.Len() - n
		}
		sum.Batches++
		if bar != nil {
			bar.SetCurrent(r.InputOffset())
		}
		batch = newBatch(table, cols)
		return nil
	}

	for {
		if err = ctx.Err(); err != nil {
			return nil, err
		}
		rec, err := r.Read()
		rn++
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, ReadError(path, rn, err)
		}

		batch.Data = append(batch.Data, row(rec, idx, collID))
		if batch.Len() >= size {
			if err = flush(); err != nil {
				return nil, err
			}
		}
	}
	if err = flush(); err != nil {
		return nil, err
	}

	sum.Duration = time.Since(start)
	slog.Info("Ingest complete",
		"run_id", in.runID,
		"rows", sum.Rows[table],
		"skipped", sum.Skipped[table],
		"batches", sum.Batches,
		"duration", gnfmt.TimeString(sum.Duration.Seconds()),
	)
	gn.Info("Ingested <em>%s</em> occurrences into %s in %s",
		humanize.Comma(int64(sum.Rows[table])),
		sum.Output,
		gnfmt.TimeString(sum.Duration.Seconds()),
	)
	if n := sum.Skipped[table]; n > 0 {
		gn.Warn("Skipped <em>%s</em> rows with occid already in %s",
			humanize.Comma(int64(n)), sum.Output)
	}
	return sum, nil
}

func newBatch(table string, cols []string) *schema.RawRecords {
	return &schema.RawRecords{
		Name: table,
		Cols: append(slices.Clone(cols), "collid"),
	}
}

func row(rec []string, idx []int, collID int64) []any {
	res := make([]any, len(idx)+1)
	for i, j := range idx {
		if j >= len(rec) || rec[j] == "" {
			continue
		}
		res[i] = rec[j]
	}
	res[len(idx)] = collID
	return res
}
