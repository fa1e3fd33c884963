package ioschema

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/symbdb/pkg/errcode"
)

// OpenError is returned when the destination file cannot be opened.
func OpenError(path string, err error) error {
	msg := "Cannot open destination file <em>%s</em>"
	vars := []any{path}
	return &gn.Error{
		Code: errcode.SinkOpenError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot open sqlite %s: %w", path, err),
	}
}

// MigrateSchemaError is returned when the destination schema cannot be
// created or updated.
func MigrateSchemaError(path string, err error) error {
	msg := `Cannot create schema in <em>%s</em>

<em>Possible causes:</em>
  - The file is not a SQLite database
  - The file was created by an incompatible version of symbdb
  - No space left on the device`
	vars := []any{path}
	return &gn.Error{
		Code: errcode.SchemaMigrateError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to migrate schema of %s: %w", path, err),
	}
}
