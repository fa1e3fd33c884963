// Package templates provides embedded YAML configuration templates.
package templates

import _ "embed"

// ConfigYAML contains the default config.yaml template for application configuration.
//
//go:embed config.yaml
var ConfigYAML string

// FiltersYAML contains the default filters.yaml template that selects
// North American occurrences.
//
//go:embed filters.yaml
var FiltersYAML string
