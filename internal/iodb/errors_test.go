package iodb

import (
	"errors"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/symbdb/pkg/config"
	"github.com/gnames/symbdb/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectionError(t *testing.T) {
	cfg := config.New().Source
	cfg.User = "reader"
	cause := errors.New("connection refused")

	err := ConnectionError(&cfg, cause)
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.SourceConnectionError, gnErr.Code)
	assert.Equal(t, []any{"mysql", "symbscan", "localhost", 3306, "reader"},
		gnErr.Vars)
	assert.ErrorIs(t, gnErr.Err, cause)
	assert.NotContains(t, gnErr.Err.Error(), cfg.Password)
}

func TestDriverError(t *testing.T) {
	err := DriverError("oracle")
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.ConfigDriverError, gnErr.Code)
	assert.Equal(t, errcode.ExitConfig, errcode.ExitCode(err))
}
