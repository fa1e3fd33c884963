package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execRoot runs a fresh root command and returns its combined output.
func execRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := getRootCmd()
	root.Version = "version: v9.9.9\nbuild:   deadbeef"

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestRootCmd(t *testing.T) {
	root := getRootCmd()
	require.NotNil(t, root)
	assert.Equal(t, "symbdb", root.Use)
	assert.NotNil(t, root.PersistentPreRunE, "bootstrap hook")
	assert.NotNil(t, root.RunE)
	assert.True(t, root.SilenceErrors)
	assert.True(t, root.SilenceUsage)

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"migrate", "ingest", "schema"})

	other := getRootCmd()
	assert.NotSame(t, root, other)
	other.Version = "changed"
	assert.NotEqual(t, root.Version, other.Version)
}

func TestRootVersion(t *testing.T) {
	for _, flag := range []string{"--version", "-V"} {
		t.Run(flag, func(t *testing.T) {
			out, err := execRoot(t, flag)
			require.NoError(t, err)
			assert.Equal(t, "version: v9.9.9\nbuild:   deadbeef\n", out)
		})
	}
}

func TestRootHelp(t *testing.T) {
	out, err := execRoot(t, "--help")
	require.NoError(t, err)

	for _, s := range []string{
		"Symbiota", "SQLite", "SYMBDB_SOURCE_HOST", "SYMBDB_BATCH_SIZE",
		".my.cnf", "filters.yaml", "migrate", "ingest", "schema",
	} {
		assert.Contains(t, out, s)
	}
}

func TestRootUnknownCommand(t *testing.T) {
	_, err := execRoot(t, "populate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command")
}
