package iofs

import (
	"errors"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/symbdb/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrors(t *testing.T) {
	originalErr := errors.New("permission denied")

	tests := []struct {
		name string
		err  error
		code gn.ErrorCode
	}{
		{
			name: "create dir",
			err:  CreateDirError("/test/dir", originalErr),
			code: errcode.CreateDirError,
		},
		{
			name: "copy file",
			err:  CopyFileError("/test/file", originalErr),
			code: errcode.CopyFileError,
		},
		{
			name: "read file",
			err:  ReadFileError("/test/config.yaml", originalErr),
			code: errcode.ReadFileError,
		},
		{
			name: "config file",
			err:  ConfigFileError("/test/config.yaml", originalErr),
			code: errcode.ConfigFileError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gnErr, ok := tt.err.(*gn.Error)
			require.True(t, ok, "error should be *gn.Error")
			assert.Equal(t, tt.code, gnErr.Code)
			assert.Contains(t, gnErr.Msg, "%s")
			require.Len(t, gnErr.Vars, 1)
			assert.ErrorIs(t, gnErr.Err, originalErr)
			assert.Contains(t, gnErr.Err.Error(), "TestErrors")
		})
	}
}
