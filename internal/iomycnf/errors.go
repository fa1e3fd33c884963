package iomycnf

import (
	"errors"
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/symbdb/pkg/errcode"
)

func MyCnfError(path string, err error) error {
	msg := "Cannot read MySQL option file <em>%s</em>"
	vars := []any{path}
	return &gn.Error{
		Code: errcode.ConfigCredentialsError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot read %s: %w", path, err),
	}
}

func NoCredentialsError(path string) error {
	msg := "No source database user in config, environment or <em>%s</em>"
	vars := []any{path}
	return &gn.Error{
		Code: errcode.ConfigCredentialsError,
		Msg:  msg,
		Vars: vars,
		Err:  errors.New("source user is not configured"),
	}
}
