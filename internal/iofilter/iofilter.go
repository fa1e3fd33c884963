// Package iofilter reads occurrence filters from a YAML file.
package iofilter

import (
	"bytes"
	"errors"
	"io"
	"os"

	"github.com/gnames/symbdb/pkg/filter"
	"gopkg.in/yaml.v3"
)

// Load reads a filters.yaml file. Allow-lists are normalized to lowercase.
func Load(path string) (filter.Filter, error) {
	var res filter.Filter

	data, err := os.ReadFile(path)
	if err != nil {
		return res, ReadFiltersError(path, err)
	}

	return Parse(path, data)
}

// Parse decodes filters from YAML content. Unknown fields are rejected to
// catch typos like `min_latitude`.
func Parse(path string, data []byte) (filter.Filter, error) {
	var res filter.Filter

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&res); err != nil {
		if errors.Is(err, io.EOF) {
			return res, InvalidFiltersError(path, "file is empty")
		}
		return res, ParseFiltersError(path, err)
	}

	if !res.BBox.Valid() {
		return res, InvalidFiltersError(path, "bounding box is not valid")
	}

	return res.Normalize(), nil
}
