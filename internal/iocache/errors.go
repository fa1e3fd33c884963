package iocache

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/symbdb/pkg/errcode"
)

func ReadError(key, path string, err error) error {
	msg := "Cannot read cached <em>%s</em> from %s, remove it or run with --clear-cache"
	vars := []any{key, path}
	return &gn.Error{
		Code: errcode.CacheReadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot read cache %s: %w", path, err),
	}
}

func WriteError(key, path string, err error) error {
	msg := "Cannot write <em>%s</em> to cache %s"
	vars := []any{key, path}
	return &gn.Error{
		Code: errcode.CacheWriteError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot write cache %s: %w", path, err),
	}
}

func ClearError(dir string, err error) error {
	msg := "Cannot clear cache directory <em>%s</em>"
	vars := []any{dir}
	return &gn.Error{
		Code: errcode.CacheClearError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot clear cache %s: %w", dir, err),
	}
}
