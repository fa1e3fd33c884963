package ioschema

import "embed"

// EmbedMigrations contains the SQL migrations of the destination file.
//
//go:embed migrations/*.sql
var EmbedMigrations embed.FS
