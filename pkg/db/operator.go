package db

import (
	"context"

	"github.com/gnames/symbdb/pkg/config"
	"gorm.io/gorm"
)

// Operator manages the connection to the source Symbiota database.
// It hides driver differences (MySQL, PostgreSQL) behind a *gorm.DB, so
// queries are built once and rendered in the dialect of the source.
type Operator interface {
	// Connect opens a connection pool and verifies the server answers.
	Connect(context.Context, *config.SourceConfig) error

	// Close releases all connections.
	Close() error

	// DB returns the connected gorm handle, or nil before Connect.
	DB() *gorm.DB

	// Driver is the name of the source driver ("mysql" or "postgres").
	Driver() string
}
