package iotesting

import (
	"context"
	"database/sql"
	"sync"

	"github.com/gnames/symbdb/pkg/filter"
	"github.com/gnames/symbdb/pkg/schema"
)

// Source is an in-memory Symbiota database. It applies the filter in Go
// and counts calls per method, so tests can check what was served from
// cache.
type Source struct {
	OccurrenceRows  []schema.Occurrence
	CollectionRows  []schema.Collection
	InstitutionRows []schema.Institution
	TaxonRows       []schema.Taxon
	Edges           []schema.TaxaEnumTree
	Units           []schema.TaxonUnit

	// Err, when set, is returned by the method named in FailOn.
	Err    error
	FailOn string

	mu    sync.Mutex
	calls map[string]int
}

// NewSource creates an empty in-memory source.
func NewSource() *Source {
	return &Source{calls: make(map[string]int)}
}

// Calls returns how many times a method was called.
func (s *Source) Calls(method string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[method]
}

func (s *Source) call(method string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.calls == nil {
		s.calls = make(map[string]int)
	}
	s.calls[method]++
	if s.Err != nil && s.FailOn == method {
		return s.Err
	}
	return nil
}

func idSet(ids []int64) map[int64]bool {
	res := make(map[int64]bool, len(ids))
	for _, id := range ids {
		res[id] = true
	}
	return res
}

func (s *Source) OccurrenceKeys(
	_ context.Context,
	f filter.Filter,
) ([]schema.OccurrenceKey, error) {
	if err := s.call("OccurrenceKeys"); err != nil {
		return nil, err
	}
	var res []schema.OccurrenceKey
	for _, o := range s.OccurrenceRows {
		if !f.Matches(o.DecimalLatitude, o.DecimalLongitude, o.Country, o.StateProvince) {
			continue
		}
		res = append(res, schema.OccurrenceKey{
			OccID:          o.OccID,
			CollID:         o.CollID,
			TidInterpreted: o.TidInterpreted,
		})
	}
	return res, nil
}

func (s *Source) Occurrences(
	_ context.Context,
	occIDs []int64,
) ([]schema.Occurrence, error) {
	if err := s.call("Occurrences"); err != nil {
		return nil, err
	}
	want := idSet(occIDs)
	var res []schema.Occurrence
	for _, o := range s.OccurrenceRows {
		if want[o.OccID] {
			res = append(res, o)
		}
	}
	return res, nil
}

func (s *Source) Collections(
	_ context.Context,
	collIDs []int64,
) ([]schema.Collection, error) {
	if err := s.call("Collections"); err != nil {
		return nil, err
	}
	want := idSet(collIDs)
	var res []schema.Collection
	for _, c := range s.CollectionRows {
		if want[c.CollID] {
			res = append(res, c)
		}
	}
	return res, nil
}

func (s *Source) Institutions(
	_ context.Context,
	iids []int64,
) ([]schema.Institution, error) {
	if err := s.call("Institutions"); err != nil {
		return nil, err
	}
	want := idSet(iids)
	var res []schema.Institution
	for _, i := range s.InstitutionRows {
		if want[i.IID] {
			res = append(res, i)
		}
	}
	return res, nil
}

func (s *Source) Taxa(_ context.Context, tids []int64) ([]schema.Taxon, error) {
	if err := s.call("Taxa"); err != nil {
		return nil, err
	}
	want := idSet(tids)
	var res []schema.Taxon
	for _, t := range s.TaxonRows {
		if want[t.Tid] {
			res = append(res, t)
		}
	}
	return res, nil
}

func (s *Source) FetchEdges(
	_ context.Context,
	tids []int64,
) ([]schema.TaxaEnumTree, error) {
	if err := s.call("FetchEdges"); err != nil {
		return nil, err
	}
	want := idSet(tids)
	var res []schema.TaxaEnumTree
	for _, e := range s.Edges {
		if want[e.Tid] {
			res = append(res, e)
		}
	}
	return res, nil
}

func (s *Source) TaxonUnits(_ context.Context) ([]schema.TaxonUnit, error) {
	if err := s.call("TaxonUnits"); err != nil {
		return nil, err
	}
	return s.Units, nil
}

// Int is a shortcut for a valid sql.NullInt64.
func Int(v int64) sql.NullInt64 {
	return sql.NullInt64{Int64: v, Valid: true}
}

// Float is a shortcut for a valid sql.NullFloat64.
func Float(v float64) sql.NullFloat64 {
	return sql.NullFloat64{Float64: v, Valid: true}
}

// Str is a shortcut for a valid sql.NullString.
func Str(s string) sql.NullString {
	return sql.NullString{String: s, Valid: true}
}
