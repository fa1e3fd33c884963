package iometrics_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gnames/symbdb/internal/iometrics"
	"github.com/gnames/symbdb/pkg/lifecycle"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserve(t *testing.T) {
	m := iometrics.New()
	sum := &lifecycle.Summary{
		Rows:          map[string]int{"taxa": 4, "omoccurrences": 3},
		ClosureRounds: 3,
		Batches:       1,
		Duration:      2 * time.Second,
	}
	m.Observe("migrate", sum, nil, time.Unix(1700000000, 0))

	n, err := testutil.GatherAndCount(m.Registry())
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	path := filepath.Join(t.TempDir(), "metrics", "symbdb.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	txt := string(data)
	assert.Contains(t, txt, `symbdb_rows{command="migrate",table="taxa"} 4`)
	assert.Contains(t, txt, `symbdb_last_run_success{command="migrate"} 1`)
	assert.Contains(t, txt, "symbdb_closure_rounds 3")
	assert.Contains(t, txt, `symbdb_last_run_timestamp_seconds{command="migrate"} 1.7e+09`)
}

func TestObserveFailure(t *testing.T) {
	m := iometrics.New()
	m.Observe("ingest", nil, errors.New("boom"), time.Now())

	path := filepath.Join(t.TempDir(), "symbdb.prom")
	require.NoError(t, m.WriteTextfile(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `symbdb_last_run_success{command="ingest"} 0`)
	assert.NotContains(t, string(data), "symbdb_rows{")
}
