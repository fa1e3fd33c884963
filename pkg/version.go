// Package symbdb migrates a filtered subset of a Symbiota database into a
// portable SQLite file.
package symbdb

var (
	// Version of symbdb, set at build time.
	Version = "v0.1.0"

	// Build timestamp, set at build time.
	Build = "n/a"
)
