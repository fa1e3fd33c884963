package iosink

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/symbdb/pkg/errcode"
)

func WriteError(table, path string, err error) error {
	msg := "Cannot append rows to <em>%s</em> in %s"
	vars := []any{table, path}
	return &gn.Error{
		Code: errcode.SinkWriteError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot write %s to %s: %w", table, path, err),
	}
}

func CollectionError(name, path string, err error) error {
	msg := "Cannot find or create collection <em>%s</em> in %s"
	vars := []any{name, path}
	return &gn.Error{
		Code: errcode.SinkCollectionError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("collection %s in %s: %w", name, path, err),
	}
}

func OptimizeError(path string, err error) error {
	msg := "Cannot optimize %s"
	vars := []any{path}
	return &gn.Error{
		Code: errcode.SinkOptimizeError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("optimize %s: %w", path, err),
	}
}

func ConflictError(table, path string, err error) error {
	msg := "Rows of <em>%s</em> collide with existing rows in %s"
	vars := []any{table, path}
	return &gn.Error{
		Code: errcode.SinkConflictError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("conflict in %s of %s: %w", table, path, err),
	}
}
