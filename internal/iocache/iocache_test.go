package iocache_test

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gnames/symbdb/internal/iocache"
	"github.com/gnames/symbdb/pkg/errcode"
	"github.com/gnames/symbdb/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreLoad(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "tables")
	c := iocache.New(dir)

	ts := time.Date(2019, 5, 1, 10, 0, 0, 0, time.UTC)
	edges := []schema.TaxaEnumTree{
		{Tid: 10, ParentTid: sql.NullInt64{Int64: 5, Valid: true}},
		{Tid: 1, InitialTimestamp: sql.NullTime{Time: ts, Valid: true}},
	}

	var res []schema.TaxaEnumTree
	ok, err := c.Load("tbl_taxaenumtree", &res)
	require.NoError(t, err)
	assert.False(t, ok, "nothing stored yet")

	require.NoError(t, c.Store("tbl_taxaenumtree", edges))
	_, err = os.Stat(filepath.Join(dir, "tbl_taxaenumtree.gob.gz"))
	require.NoError(t, err)

	ok, err = c.Load("tbl_taxaenumtree", &res)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, res, 2)
	assert.Equal(t, edges[0].Key(), res[0].Key())
	assert.False(t, res[1].ParentTid.Valid)
	assert.True(t, ts.Equal(res[1].InitialTimestamp.Time))

	matches, err := filepath.Glob(filepath.Join(dir, "*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, matches, "no temporary files left")
}

func TestLoadCorrupted(t *testing.T) {
	dir := t.TempDir()
	path := iocache.Path(dir, "occid")
	require.NoError(t, os.WriteFile(path, []byte("not gzip"), 0644))

	var res []schema.OccurrenceKey
	ok, err := iocache.New(dir).Load("occid", &res)
	require.Error(t, err)
	assert.False(t, ok)
	assert.Equal(t, errcode.ExitCache, errcode.ExitCode(err))
}

func TestClear(t *testing.T) {
	dir := t.TempDir()
	c := iocache.New(dir)
	require.NoError(t, c.Store("occid", []schema.OccurrenceKey{{OccID: 1, CollID: 2}}))
	require.NoError(t, c.Store("tbl_taxa", []schema.Taxon{{Tid: 3}}))
	other := filepath.Join(dir, "keep.txt")
	require.NoError(t, os.WriteFile(other, nil, 0644))

	require.NoError(t, c.Clear())

	var keys []schema.OccurrenceKey
	ok, err := c.Load("occid", &keys)
	require.NoError(t, err)
	assert.False(t, ok)
	_, err = os.Stat(other)
	assert.NoError(t, err)

	assert.NoError(t, iocache.New(filepath.Join(dir, "missing")).Clear())
}
