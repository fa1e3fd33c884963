package iosource

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gnames/gn"
	"github.com/gnames/symbdb/pkg/config"
	"github.com/gnames/symbdb/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSource(timeout time.Duration) *source {
	cfg := config.New().Source
	cfg.Attempts = 3
	cfg.Backoff = time.Millisecond
	cfg.Timeout = timeout
	return &source{cfg: &cfg}
}

func code(t *testing.T, err error) gn.ErrorCode {
	t.Helper()
	var gnErr *gn.Error
	require.ErrorAs(t, err, &gnErr)
	return gnErr.Code
}

func TestRetry(t *testing.T) {
	boom := errors.New("connection reset")

	tests := []struct {
		name  string
		fails int
		err   error
		calls int
		code  gn.ErrorCode
	}{
		{name: "first attempt", fails: 0, calls: 1},
		{name: "recovers", fails: 2, err: boom, calls: 3},
		{
			name: "gives up", fails: 10, err: boom,
			calls: 3, code: errcode.SourceQueryError,
		},
		{
			name: "schema mismatch", fails: 10,
			err:   SchemaMismatchError("taxa", boom),
			calls: 1, code: errcode.SchemaMismatchError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := testSource(time.Minute)
			var calls int
			err := s.retry(context.Background(), "taxa",
				func(context.Context) error {
					calls++
					if calls <= tt.fails {
						return tt.err
					}
					return nil
				},
			)
			assert.Equal(t, tt.calls, calls)
			if tt.code == 0 {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, tt.code, code(t, err))
		})
	}
}

func TestRetryTimeout(t *testing.T) {
	s := testSource(5 * time.Millisecond)
	var calls int
	err := s.retry(context.Background(), "omoccurrences",
		func(ctx context.Context) error {
			calls++
			<-ctx.Done()
			return ctx.Err()
		},
	)
	assert.Equal(t, 3, calls)
	assert.Equal(t, errcode.SourceTimeoutError, code(t, err))
	assert.Equal(t, errcode.ExitSource, errcode.ExitCode(err))
}

func TestRetryCanceled(t *testing.T) {
	s := testSource(time.Minute)
	ctx, cancel := context.WithCancel(context.Background())
	var calls int
	err := s.retry(ctx, "taxa", func(context.Context) error {
		calls++
		cancel()
		return errors.New("interrupted")
	})
	assert.Equal(t, 1, calls)
	assert.ErrorIs(t, err, context.Canceled)
}
