// Package closure computes the ancestor closure of a set of taxa.
//
// Starting from leaf taxon IDs, Build repeatedly fetches parent edges of the
// current frontier until no new ancestors appear. The resulting taxon set
// is closed under the parent relation: every taxon in it is either a root
// or has its parent in the set too.
package closure

import (
	"context"
	"slices"

	"github.com/gnames/symbdb/pkg/schema"
)

// EdgeFetcher returns all hierarchy edges whose child is one of tids.
type EdgeFetcher interface {
	FetchEdges(ctx context.Context, tids []int64) ([]schema.TaxaEnumTree, error)
}

// Result is the outcome of the closure walk.
type Result struct {
	// Leaves are the distinct taxon IDs the walk started from.
	Leaves []int64

	// Edges are the deduplicated hierarchy edges in the order they were
	// first seen. A duplicate (tid, parenttid) pair keeps the position of
	// its first occurrence and the payload of its last one.
	Edges []schema.TaxaEnumTree

	// Rounds is the number of fetch calls made.
	Rounds int
}

// IDs returns the sorted closure: leaves plus every tid and non-null parent
// appearing in the edges.
func (r *Result) IDs() []int64 {
	set := make(map[int64]struct{}, len(r.Leaves)+len(r.Edges))
	for _, id := range r.Leaves {
		set[id] = struct{}{}
	}
	for _, e := range r.Edges {
		set[e.Tid] = struct{}{}
		if e.ParentTid.Valid {
			set[e.ParentTid.Int64] = struct{}{}
		}
	}
	res := make([]int64, 0, len(set))
	for id := range set {
		res = append(res, id)
	}
	slices.Sort(res)
	return res
}

// Progress receives the state of the walk after every round.
type Progress func(round, frontier, edges int)

type builder struct {
	progress Progress
}

// Option configures Build.
type Option func(*builder)

// OptProgress sets a callback that is called after every fetch round.
func OptProgress(p Progress) Option {
	return func(b *builder) {
		b.progress = p
	}
}

// Build walks the hierarchy upwards from leaves.
//
// Every taxon ID is put into a frontier at most once, so self-references
// and cycles in the source data cannot make the walk loop. The walk stops
// when the frontier is empty or when a round brings no new edge. For a
// forest of depth D it makes at most D+1 fetches.
func Build(
	ctx context.Context,
	fetcher EdgeFetcher,
	leaves []int64,
	opts ...Option,
) (*Result, error) {
	b := builder{}
	for _, opt := range opts {
		opt(&b)
	}

	frontier := distinct(leaves)
	res := &Result{Leaves: slices.Clone(frontier)}

	visited := make(map[int64]struct{}, len(frontier))
	for _, id := range frontier {
		visited[id] = struct{}{}
	}
	index := make(map[schema.EdgeKey]int)

	for len(frontier) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		edges, err := fetcher.FetchEdges(ctx, frontier)
		if err != nil {
			return nil, err
		}
		res.Rounds++

		var added int
		var next []int64
		for _, e := range edges {
			k := e.Key()
			if i, ok := index[k]; ok {
				res.Edges[i] = e
			} else {
				index[k] = len(res.Edges)
				res.Edges = append(res.Edges, e)
				added++
			}

			if !e.ParentTid.Valid {
				continue
			}
			p := e.ParentTid.Int64
			if _, ok := visited[p]; ok {
				continue
			}
			visited[p] = struct{}{}
			next = append(next, p)
		}

		if b.progress != nil {
			b.progress(res.Rounds, len(next), len(res.Edges))
		}

		if added == 0 {
			break
		}
		frontier = next
	}

	return res, nil
}

func distinct(ids []int64) []int64 {
	res := make([]int64, 0, len(ids))
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		res = append(res, id)
	}
	return res
}
