// Package iosource reads Symbiota tables from the source database.
// This is an impure I/O package that implements lifecycle.Source.
//
// Queries are built with gorm, so the same code renders in MySQL and
// PostgreSQL dialects. Lists of identifiers are sent in chunks small
// enough for the driver's parameter limit.
package iosource

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	"github.com/gnames/symbdb/pkg/config"
	"github.com/gnames/symbdb/pkg/db"
	"github.com/gnames/symbdb/pkg/filter"
	"github.com/gnames/symbdb/pkg/lifecycle"
	"github.com/gnames/symbdb/pkg/schema"
	"gorm.io/gorm"
)

type source struct {
	op  db.Operator
	cfg *config.SourceConfig
}

// New creates a source reading through a connected operator.
func New(op db.Operator, cfg *config.SourceConfig) lifecycle.Source {
	if cfg == nil {
		c := config.New().Source
		cfg = &c
	}
	return &source{op: op, cfg: cfg}
}

func (s *source) gormDB() (*gorm.DB, error) {
	if s.op == nil || s.op.DB() == nil {
		return nil, NotConnectedError()
	}
	return s.op.DB(), nil
}

// OccurrenceKeysQuery selects the key projection of occurrences matching
// the filter.
func OccurrenceKeysQuery(tx *gorm.DB, f filter.Filter) *gorm.DB {
	conds := []string{
		"(decimalLatitude BETWEEN ? AND ? AND decimalLongitude BETWEEN ? AND ?)",
	}
	args := []any{f.BBox.MinLat, f.BBox.MaxLat, f.BBox.MinLon, f.BBox.MaxLon}
	if len(f.Countries) > 0 {
		conds = append(conds, "LOWER(country) IN ?")
		args = append(args, f.Countries)
	}
	if len(f.States) > 0 {
		conds = append(conds, "LOWER(stateProvince) IN ?")
		args = append(args, f.States)
	}

	return tx.Table(schema.OccurrenceKey{}.TableName()).
		Select(schema.SelectExprs[schema.OccurrenceKey]()).
		Where(strings.Join(conds, " OR "), args...)
}

// ByIDsQuery selects rows of table T whose column col is in ids.
func ByIDsQuery[T schema.Model](tx *gorm.DB, col string, ids []int64) *gorm.DB {
	var m T
	return tx.Table(m.TableName()).
		Select(schema.SelectExprs[T]()).
		Where(col+" IN ?", ids)
}

// EdgesQuery selects distinct taxaenumtree edges of the given child taxa.
func EdgesQuery(tx *gorm.DB, tids []int64) *gorm.DB {
	return tx.Table(schema.TaxaEnumTree{}.TableName()).
		Distinct(schema.SelectExprs[schema.TaxaEnumTree]()).
		Where("tid IN ?", tids)
}

// TaxonUnitsQuery selects the whole taxonunits table.
func TaxonUnitsQuery(tx *gorm.DB) *gorm.DB {
	return tx.Table(schema.TaxonUnit{}.TableName()).
		Select(schema.SelectExprs[schema.TaxonUnit]())
}

func (s *source) OccurrenceKeys(
	ctx context.Context,
	f filter.Filter,
) ([]schema.OccurrenceKey, error) {
	return query[schema.OccurrenceKey](ctx, s, func(tx *gorm.DB) *gorm.DB {
		return OccurrenceKeysQuery(tx, f)
	})
}

func (s *source) Occurrences(
	ctx context.Context,
	occIDs []int64,
) ([]schema.Occurrence, error) {
	return byIDs(ctx, s, occIDs, column[schema.Occurrence]("occid"))
}

func (s *source) Collections(
	ctx context.Context,
	collIDs []int64,
) ([]schema.Collection, error) {
	return byIDs(ctx, s, collIDs, column[schema.Collection]("collid"))
}

func (s *source) Institutions(
	ctx context.Context,
	iids []int64,
) ([]schema.Institution, error) {
	return byIDs(ctx, s, iids, column[schema.Institution]("iid"))
}

func (s *source) Taxa(ctx context.Context, tids []int64) ([]schema.Taxon, error) {
	return byIDs(ctx, s, tids, column[schema.Taxon]("tid"))
}

func (s *source) FetchEdges(
	ctx context.Context,
	tids []int64,
) ([]schema.TaxaEnumTree, error) {
	return byIDs(ctx, s, tids, builder[schema.TaxaEnumTree](EdgesQuery))
}

func (s *source) TaxonUnits(ctx context.Context) ([]schema.TaxonUnit, error) {
	return query[schema.TaxonUnit](ctx, s, TaxonUnitsQuery)
}

// builder renders a query of table T for one chunk of identifiers.
type builder[T schema.Model] func(tx *gorm.DB, ids []int64) *gorm.DB

// column returns a builder selecting rows of T by one identifier column.
func column[T schema.Model](col string) builder[T] {
	return func(tx *gorm.DB, ids []int64) *gorm.DB {
		return ByIDsQuery[T](tx, col, ids)
	}
}

// byIDs runs the query once per chunk of ids and concatenates results.
func byIDs[T schema.Model](
	ctx context.Context,
	s *source,
	ids []int64,
	build builder[T],
) ([]T, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	size := s.cfg.MaxParams
	if size <= 0 {
		size = len(ids)
	}

	var res []T
	for chunk := range slices.Chunk(ids, size) {
		rows, err := query[T](ctx, s, func(tx *gorm.DB) *gorm.DB {
			return build(tx, chunk)
		})
		if err != nil {
			return nil, err
		}
		res = append(res, rows...)
	}
	return res, nil
}

func query[T schema.Model](
	ctx context.Context,
	s *source,
	build func(*gorm.DB) *gorm.DB,
) ([]T, error) {
	gdb, err := s.gormDB()
	if err != nil {
		return nil, err
	}

	var m T
	table := m.TableName()
	var res []T
	err = s.retry(ctx, table, func(ctx context.Context) error {
		rows, err := build(gdb.WithContext(ctx)).Rows()
		if err != nil {
			return err
		}
		res, err = ScanRows[T](rows)
		return err
	})
	if err != nil {
		return nil, err
	}

	slog.Debug("Source rows fetched", "table", table, "rows", len(res))
	return res, nil
}
