package ioingest

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/symbdb/pkg/errcode"
)

func ReadError(path string, record int, err error) error {
	msg := "Cannot read <em>%s</em> at record %d"
	vars := []any{path, record}
	return &gn.Error{
		Code: errcode.IngestReadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("read %s record %d: %w", path, record, err),
	}
}

func HeaderError(path string, err error) error {
	msg := "File <em>%s</em> has no usable header"
	vars := []any{path}
	return &gn.Error{
		Code: errcode.IngestHeaderError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("header of %s: %w", path, err),
	}
}
