package iosource

import (
	"fmt"
	"time"

	"github.com/gnames/gn"
	"github.com/gnames/symbdb/pkg/errcode"
)

func NotConnectedError() error {
	msg := "Source database is not connected"
	return &gn.Error{
		Code: errcode.SourceNotConnectedError,
		Msg:  msg,
		Err:  fmt.Errorf("source is not connected"),
	}
}

func QueryError(table string, err error) error {
	msg := "Query of <em>%s</em> failed"
	vars := []any{table}
	return &gn.Error{
		Code: errcode.SourceQueryError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("query %s: %w", table, err),
	}
}

func TimeoutError(table string, timeout time.Duration, err error) error {
	msg := "Query of <em>%s</em> did not finish in %s"
	vars := []any{table, timeout}
	return &gn.Error{
		Code: errcode.SourceTimeoutError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("query %s timed out after %s: %w", table, timeout, err),
	}
}

func SchemaMismatchError(table string, err error) error {
	msg := "Data in <em>%s</em> does not match the expected schema"
	vars := []any{table}
	return &gn.Error{
		Code: errcode.SchemaMismatchError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("scan %s: %w", table, err),
	}
}
