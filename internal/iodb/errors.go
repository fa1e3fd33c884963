package iodb

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/symbdb/pkg/config"
	"github.com/gnames/symbdb/pkg/errcode"
)

func ConnectionError(cfg *config.SourceConfig, err error) error {
	msg := "Cannot connect to %s database <em>%s</em> at <em>%s:%d</em> as <em>%s</em>"
	vars := []any{cfg.Driver, cfg.Database, cfg.Host, cfg.Port, cfg.User}
	return &gn.Error{
		Code: errcode.SourceConnectionError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("failed to connect to %s:%d/%s: %w",
			cfg.Host, cfg.Port, cfg.Database, err),
	}
}

func DriverError(driver string) error {
	msg := "Unsupported source driver <em>%s</em>, use mysql or postgres"
	vars := []any{driver}
	return &gn.Error{
		Code: errcode.ConfigDriverError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("unsupported driver %q", driver),
	}
}
