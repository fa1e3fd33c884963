package iometrics

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/symbdb/pkg/errcode"
)

func WriteError(path string, err error) error {
	msg := "Cannot write metrics to %s"
	vars := []any{path}
	return &gn.Error{
		Code: errcode.MetricsWriteError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("write metrics %s: %w", path, err),
	}
}
