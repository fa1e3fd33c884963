// Package iomigrate runs the migration of a filtered Symbiota subset into
// the destination file.
//
// The run is a sequence of stages. Every fetch stage stores its result in
// the cache, so after a failure the next run starts from the first stage
// that did not finish. Reference tables are written before occurrences,
// and occurrences are fetched and written in batches.
package iomigrate

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/symbdb/pkg/closure"
	"github.com/gnames/symbdb/pkg/config"
	"github.com/gnames/symbdb/pkg/filter"
	"github.com/gnames/symbdb/pkg/lifecycle"
	"github.com/gnames/symbdb/pkg/schema"
	"github.com/google/uuid"
)

// Cache keys of the fetch stages.
const (
	KeyOccurrences  = "occid"
	KeyCollections  = "tbl_omcollections"
	KeyInstitutions = "tbl_institutions"
	KeyEdges        = "tbl_taxaenumtree"
	KeyTaxa         = "tbl_taxa"
	KeyTaxonUnits   = "tbl_taxonunits"
)

// Migrator implements lifecycle.Migrator.
type Migrator struct {
	cfg    *config.Config
	filter filter.Filter
	src    lifecycle.Source
	sink   lifecycle.Sink
	cache  lifecycle.Cache
	runID  string
	bar    bool
}

// Option configures a Migrator.
type Option func(*Migrator)

// OptRunID sets the identifier of the run.
func OptRunID(id string) Option {
	return func(m *Migrator) {
		m.runID = id
	}
}

// OptProgressBar turns the occurrence progress bar on or off.
func OptProgressBar(b bool) Option {
	return func(m *Migrator) {
		m.bar = b
	}
}

// New creates a Migrator.
func New(
	cfg *config.Config,
	f filter.Filter,
	src lifecycle.Source,
	sink lifecycle.Sink,
	cache lifecycle.Cache,
	opts ...Option,
) *Migrator {
	res := &Migrator{
		cfg:    cfg,
		filter: f.Normalize(),
		src:    src,
		sink:   sink,
		cache:  cache,
		runID:  uuid.NewString(),
	}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

// fetched holds the results of all fetch stages.
type fetched struct {
	keys   []schema.OccurrenceKey
	colls  []schema.Collection
	insts  []schema.Institution
	edges  []schema.TaxaEnumTree
	rounds int
	taxa   []schema.Taxon
	units  []schema.TaxonUnit
}

// Migrate runs all stages. Any error aborts the run. Rows committed before
// the error stay in the destination and cached stages are reused by the
// next run.
func (m *Migrator) Migrate(ctx context.Context) (*lifecycle.Summary, error) {
	start := time.Now()
	dryRun := m.cfg.Migrate.DryRun
	sum := &lifecycle.Summary{
		RunID:  m.runID,
		Output: m.sink.Path(),
		Rows:    make(map[string]int),
		Skipped: make(map[string]int),
		DryRun:  dryRun,
	}

	slog.Info("Starting migration",
		"run_id", m.runID,
		"output", m.sink.Path(),
		"dry_run", dryRun,
	)

	if m.cfg.Migrate.ClearCache {
		if err := m.cache.Clear(); err != nil {
			return nil, err
		}
	}

	f, err := m.fetch(ctx)
	if err != nil {
		return nil, err
	}
	sum.ClosureRounds = f.rounds

	occIDs := occurrenceIDs(f.keys)
	batches := Batches(occIDs, m.cfg.BatchSize)
	sum.Batches = len(batches)

	if dryRun {
		m.plan(f, occIDs, sum)
		sum.Duration = time.Since(start)
		m.report(sum)
		return sum, nil
	}

	if err = m.sink.Init(ctx); err != nil {
		return nil, err
	}
	if err = m.writeReferences(ctx, f, sum); err != nil {
		return nil, err
	}
	if err = m.writeOccurrences(ctx, batches, len(occIDs), sum); err != nil {
		return nil, err
	}
	if err = m.sink.Optimize(ctx); err != nil {
		return nil, err
	}

	sum.Duration = time.Since(start)
	m.report(sum)
	return sum, nil
}

func (m *Migrator) fetch(ctx context.Context) (*fetched, error) {
	var res fetched
	var err error

	res.keys, _, err = cached(m.cache, KeyOccurrences,
		func() ([]schema.OccurrenceKey, error) {
			return m.src.OccurrenceKeys(ctx, m.filter)
		})
	if err != nil {
		return nil, err
	}
	gn.Info("Selected <em>%s</em> occurrences", humanize.Comma(int64(len(res.keys))))

	collIDs := distinct(res.keys, func(k schema.OccurrenceKey) (int64, bool) {
		return k.CollID, true
	})
	res.colls, _, err = cached(m.cache, KeyCollections,
		func() ([]schema.Collection, error) {
			return m.src.Collections(ctx, collIDs)
		})
	if err != nil {
		return nil, err
	}

	iids := distinct(res.colls, func(c schema.Collection) (int64, bool) {
		return c.IID.Int64, c.IID.Valid
	})
	res.insts, _, err = cached(m.cache, KeyInstitutions,
		func() ([]schema.Institution, error) {
			return m.src.Institutions(ctx, iids)
		})
	if err != nil {
		return nil, err
	}

	leaves := distinct(res.keys, func(k schema.OccurrenceKey) (int64, bool) {
		return k.TidInterpreted.Int64, k.TidInterpreted.Valid
	})
	var fromCache bool
	res.edges, fromCache, err = cached(m.cache, KeyEdges,
		func() ([]schema.TaxaEnumTree, error) {
			cl, err := closure.Build(ctx, m.src, leaves,
				closure.OptProgress(closureProgress))
			if err != nil {
				return nil, err
			}
			res.rounds = cl.Rounds
			return cl.Edges, nil
		})
	if err != nil {
		return nil, err
	}
	if fromCache {
		res.rounds = 0
	}

	cl := closure.Result{Leaves: leaves, Edges: res.edges}
	tids := cl.IDs()
	gn.Info("Taxonomic closure has <em>%s</em> taxa",
		humanize.Comma(int64(len(tids))))

	res.taxa, _, err = cached(m.cache, KeyTaxa,
		func() ([]schema.Taxon, error) {
			return m.src.Taxa(ctx, tids)
		})
	if err != nil {
		return nil, err
	}

	res.units, _, err = cached(m.cache, KeyTaxonUnits,
		func() ([]schema.TaxonUnit, error) {
			return m.src.TaxonUnits(ctx)
		})
	if err != nil {
		return nil, err
	}

	return &res, nil
}

func closureProgress(round, frontier, edges int) {
	slog.Info("Closure round",
		"round", round,
		"frontier", frontier,
		"edges", edges,
	)
}

// cached returns the value stored under key, or fetches and stores it.
// The boolean result is true when the value came from the cache.
func cached[T any](
	c lifecycle.Cache,
	key string,
	fetch func() (T, error),
) (T, bool, error) {
	var res T
	ok, err := c.Load(key, &res)
	if err != nil {
		return res, false, err
	}
	if ok {
		return res, true, nil
	}

	if res, err = fetch(); err != nil {
		return res, false, err
	}
	if err = c.Store(key, res); err != nil {
		return res, false, err
	}
	return res, false, nil
}

// writeReferences writes lookup tables before the tables that refer to
// them.
func (m *Migrator) writeReferences(
	ctx context.Context,
	f *fetched,
	sum *lifecycle.Summary,
) error {
	recs := []schema.Records{
		schema.Rows[schema.TaxonUnit](f.units),
		schema.Rows[schema.Institution](f.insts),
		schema.Rows[schema.Taxon](f.taxa),
		schema.Rows[schema.Collection](f.colls),
		schema.Rows[schema.TaxaEnumTree](f.edges),
	}
	for _, r := range recs {
		n, err := m.sink.Append(ctx, r)
		if err != nil {
			return err
		}
		count(sum, r.Table(), r.Len(), n)
	}
	return nil
}

// count adds the outcome of one write to the summary.
func count(sum *lifecycle.Summary, table string, sent, inserted int) {
	sum.Rows[table] += inserted
	if sent > inserted {
		sum.Skipped[table] += sent - inserted
	}
}

func (m *Migrator) writeOccurrences(
	ctx context.Context,
	batches [][]int64,
	total int,
	sum *lifecycle.Summary,
) error {
	table := schema.Occurrence{}.TableName()
	sum.Rows[table] = 0

	var bar *pb.ProgressBar
	if m.bar && total > 0 {
		bar = pb.Full.Start(total)
		bar.Set("prefix", "Migrating occurrences: ")
		bar.Set(pb.CleanOnFinish, true)
		defer bar.Finish()
	}

	for i, batch := range batches {
		if err := ctx.Err(); err != nil {
			return err
		}

		occs, err := m.src.Occurrences(ctx, batch)
		if err != nil {
			return err
		}
		n, err := m.sink.Append(ctx, schema.Rows[schema.Occurrence](occs))
		if err != nil {
			return err
		}
		count(sum, table, len(occs), n)

		slog.Info("Occurrence batch written",
			"batch", i+1,
			"batches", len(batches),
			"rows", len(occs),
			"inserted", n,
		)
		if bar != nil {
			bar.Add(len(batch))
		}
	}
	return nil
}

// plan fills the summary of a dry run with the rows that would be written.
func (m *Migrator) plan(f *fetched, occIDs []int64, sum *lifecycle.Summary) {
	sum.Rows[schema.TaxonUnit{}.TableName()] = len(f.units)
	sum.Rows[schema.Institution{}.TableName()] = len(f.insts)
	sum.Rows[schema.Taxon{}.TableName()] = len(f.taxa)
	sum.Rows[schema.Collection{}.TableName()] = len(f.colls)
	sum.Rows[schema.TaxaEnumTree{}.TableName()] = len(f.edges)
	sum.Rows[schema.Occurrence{}.TableName()] = len(occIDs)
}

// Tables lists destination tables in the order they are written.
var Tables = []string{
	"taxonunits", "institutions", "taxa", "omcollections", "taxaenumtree",
	"omoccurrences",
}

func (m *Migrator) report(sum *lifecycle.Summary) {
	args := []any{
		"run_id", sum.RunID,
		"output", sum.Output,
		"closure_rounds", sum.ClosureRounds,
		"batches", sum.Batches,
		"dry_run", sum.DryRun,
		"duration", gnfmt.TimeString(sum.Duration.Seconds()),
	}
	for _, t := range Tables {
		args = append(args, t, sum.Rows[t])
	}
	slog.Info("Migration complete", args...)

	verb := "Migrated"
	if sum.DryRun {
		verb = "Would migrate"
	}
	for _, t := range Tables {
		gn.Message("%s %s rows of <em>%s</em>",
			verb, humanize.Comma(int64(sum.Rows[t])), t)
		if n := sum.Skipped[t]; n > 0 {
			gn.Warn("Skipped %s rows of <em>%s</em> already in the output",
				humanize.Comma(int64(n)), t)
		}
	}
	gn.Info("Done in <em>%s</em>, output: %s",
		gnfmt.TimeString(sum.Duration.Seconds()), sum.Output)
}

// Batches splits ids into consecutive slices of at most size elements.
// A size that is not positive gives a single batch.
func Batches(ids []int64, size int) [][]int64 {
	if len(ids) == 0 {
		return nil
	}
	if size <= 0 {
		size = len(ids)
	}
	return slices.Collect(slices.Chunk(ids, size))
}

func occurrenceIDs(keys []schema.OccurrenceKey) []int64 {
	res := distinct(keys, func(k schema.OccurrenceKey) (int64, bool) {
		return k.OccID, true
	})
	slices.Sort(res)
	return res
}

// distinct collects valid ids from items, keeping first-seen order.
func distinct[T any](items []T, id func(T) (int64, bool)) []int64 {
	seen := make(map[int64]struct{})
	var res []int64
	for _, it := range items {
		v, ok := id(it)
		if !ok {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		res = append(res, v)
	}
	return res
}
