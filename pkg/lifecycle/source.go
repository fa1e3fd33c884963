// Package lifecycle defines the contracts between symbdb stages and the
// I/O packages that implement them.
package lifecycle

import (
	"context"

	"github.com/gnames/symbdb/pkg/closure"
	"github.com/gnames/symbdb/pkg/filter"
	"github.com/gnames/symbdb/pkg/schema"
)

// Source reads Symbiota tables. Every method that takes identifiers
// returns only rows matching them, and an empty list of identifiers gives
// an empty result without touching the database.
type Source interface {
	// FetchEdges returns taxaenumtree rows for the given child taxa.
	closure.EdgeFetcher

	// OccurrenceKeys returns the key projection of occurrences selected
	// by the filter.
	OccurrenceKeys(ctx context.Context, f filter.Filter) ([]schema.OccurrenceKey, error)

	// Collections returns omcollections rows by collid.
	Collections(ctx context.Context, collIDs []int64) ([]schema.Collection, error)

	// Institutions returns institutions rows by iid.
	Institutions(ctx context.Context, iids []int64) ([]schema.Institution, error)

	// Taxa returns taxa rows by tid.
	Taxa(ctx context.Context, tids []int64) ([]schema.Taxon, error)

	// TaxonUnits returns the whole taxonunits table.
	TaxonUnits(ctx context.Context) ([]schema.TaxonUnit, error)

	// Occurrences returns full omoccurrences rows by occid.
	Occurrences(ctx context.Context, occIDs []int64) ([]schema.Occurrence, error)
}
