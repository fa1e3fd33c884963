package iosource

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/gnames/gn"
	"github.com/gnames/symbdb/pkg/errcode"
)

// retry runs fn up to cfg.Attempts times. Each attempt gets its own
// timeout, waits between attempts double starting from cfg.Backoff.
func (s *source) retry(
	ctx context.Context,
	table string,
	fn func(context.Context) error,
) error {
	attempts := max(s.cfg.Attempts, 1)
	wait := s.cfg.Backoff

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		err = s.attempt(ctx, fn)
		if err == nil {
			return nil
		}
		if !retryable(ctx, err) {
			break
		}
		if attempt == attempts {
			break
		}

		slog.Warn("Source query failed, retrying",
			"table", table,
			"attempt", attempt,
			"wait", wait,
			"error", err,
		)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
		wait *= 2
	}

	return s.wrap(ctx, table, err)
}

func (s *source) attempt(
	ctx context.Context,
	fn func(context.Context) error,
) error {
	if s.cfg.Timeout <= 0 {
		return fn(ctx)
	}
	actx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()
	return fn(actx)
}

func retryable(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	var gnErr *gn.Error
	if errors.As(err, &gnErr) && gnErr.Code == errcode.SchemaMismatchError {
		return false
	}
	return true
}

func (s *source) wrap(ctx context.Context, table string, err error) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	var gnErr *gn.Error
	if errors.As(err, &gnErr) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return TimeoutError(table, s.cfg.Timeout, err)
	}
	return QueryError(table, err)
}
