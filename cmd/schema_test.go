package cmd

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/gnames/symbdb/internal/ioschema"
	"github.com/gnames/symbdb/internal/iotesting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGetSchemaCmd verifies the schema command.
func TestGetSchemaCmd(t *testing.T) {
	cmd := getSchemaCmd()
	require.NotNil(t, cmd)
	assert.Equal(t, "schema", cmd.Use)
	assert.Contains(t, cmd.Short, "SQLite")
	require.NotNil(t, cmd.Flags().Lookup("output"))
}

// TestSchemaCommand creates an empty output through the root command.
func TestSchemaCommand(t *testing.T) {
	iotesting.SetupHome(t)
	out := filepath.Join(t.TempDir(), "empty.sqlite")

	root := getRootCmd()
	root.SetArgs([]string{"schema", "--output", out})
	require.NoError(t, root.Execute())

	v, err := ioschema.NewManager().Version(context.Background(), out)
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)
}

// TestSchemaCommandEnv verifies environment variables reach the config.
func TestSchemaCommandEnv(t *testing.T) {
	iotesting.SetupHome(t)
	dir := t.TempDir()
	t.Setenv("SYMBDB_SINK_PATH", filepath.Join(dir, "env.sqlite"))
	t.Setenv("SYMBDB_BATCH_SIZE", "500")

	root := getRootCmd()
	root.SetArgs([]string{"schema"})
	require.NoError(t, root.Execute())

	assert.FileExists(t, filepath.Join(dir, "env.sqlite"))
	assert.Equal(t, 500, cfg.BatchSize)
}
