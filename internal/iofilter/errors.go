package iofilter

import (
	"errors"
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/symbdb/pkg/errcode"
)

func ReadFiltersError(path string, err error) error {
	msg := "Cannot read filters file <em>%s</em>"
	vars := []any{path}
	return &gn.Error{
		Code: errcode.ConfigFiltersError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot read filters %s: %w", path, err),
	}
}

func ParseFiltersError(path string, err error) error {
	msg := "Cannot parse filters file <em>%s</em>"
	vars := []any{path}
	return &gn.Error{
		Code: errcode.ConfigFiltersError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot parse filters %s: %w", path, err),
	}
}

func InvalidFiltersError(path, reason string) error {
	msg := "Filters file <em>%s</em> is invalid: %s"
	vars := []any{path, reason}
	return &gn.Error{
		Code: errcode.ConfigFiltersError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("invalid filters %s: %w", path, errors.New(reason)),
	}
}
