package errcode_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/symbdb/pkg/errcode"
	"github.com/stretchr/testify/assert"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: 0},
		{name: "plain error", err: errors.New("boom"), want: errcode.ExitUnknown},
		{
			name: "configuration",
			err:  &gn.Error{Code: errcode.ConfigCredentialsError, Err: errors.New("x")},
			want: errcode.ExitConfig,
		},
		{
			name: "source",
			err:  &gn.Error{Code: errcode.SourceQueryError, Err: errors.New("x")},
			want: errcode.ExitSource,
		},
		{
			name: "write",
			err:  &gn.Error{Code: errcode.SinkWriteError, Err: errors.New("x")},
			want: errcode.ExitWrite,
		},
		{
			name: "schema mismatch",
			err:  &gn.Error{Code: errcode.SchemaMismatchError, Err: errors.New("x")},
			want: errcode.ExitSchemaMismatch,
		},
		{
			name: "cache",
			err:  &gn.Error{Code: errcode.CacheWriteError, Err: errors.New("x")},
			want: errcode.ExitCache,
		},
		{
			name: "wrapped",
			err: fmt.Errorf("stage failed: %w",
				&gn.Error{Code: errcode.SourceTimeoutError, Err: errors.New("x")}),
			want: errcode.ExitSource,
		},
		{
			name: "unknown code",
			err:  &gn.Error{Code: errcode.UnknownError, Err: errors.New("x")},
			want: errcode.ExitUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errcode.ExitCode(tt.err))
		})
	}
}
