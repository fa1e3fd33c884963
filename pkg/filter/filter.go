// Package filter defines which occurrences are selected for migration.
//
// An occurrence is selected when its coordinates fall into the bounding box,
// OR its country is in the country list, OR its state or province is in the
// state list. Country and state comparisons are case-insensitive.
package filter

import (
	"database/sql"
	"slices"
	"strings"
)

// BBox is a closed latitude/longitude rectangle in decimal degrees.
type BBox struct {
	MinLat float64 `yaml:"min_lat"`
	MaxLat float64 `yaml:"max_lat"`
	MinLon float64 `yaml:"min_lon"`
	MaxLon float64 `yaml:"max_lon"`
}

// Contains reports whether the point lies inside the box, edges included.
func (b BBox) Contains(lat, lon float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat &&
		lon >= b.MinLon && lon <= b.MaxLon
}

// Valid reports whether the box is a proper rectangle on the globe.
func (b BBox) Valid() bool {
	return b.MinLat <= b.MaxLat && b.MinLon <= b.MaxLon &&
		b.MinLat >= -90 && b.MaxLat <= 90 &&
		b.MinLon >= -180 && b.MaxLon <= 180
}

// Filter selects occurrences.
type Filter struct {
	BBox      BBox     `yaml:"bbox"`
	Countries []string `yaml:"countries"`
	States    []string `yaml:"states"`
}

// Default returns the North American filter.
func Default() Filter {
	return Filter{
		BBox: BBox{
			MinLat: 6.6,
			MaxLat: 83.3,
			MinLon: -178.2,
			MaxLon: -49.0,
		},
		Countries: []string{
			"u.s.", "u.s.a.", "united states", "united states of america",
			"canada", "mexico",
		},
		States: []string{
			"aguascalientes", "baja california", "baja california sur",
			"campeche", "chiapas", "mexico city", "chihuahua", "coahuila",
			"colima", "durango", "guanajuato", "guerrero", "hidalgo",
			"jalisco", "méxico", "mexico", "michoacán", "morelos",
			"nayarit", "nuevo león", "nuevo leon", "oaxaca", "puebla",
			"querétaro", "queretaro", "quintana roo", "san luis potosí",
			"san luis potosi", "sinaloa", "sonora", "tabasco", "tamaulipas",
			"tlaxcala", "veracruz", "ignacio de la llave", "yucatán",
			"yucatan", "zacatecas", "ontario", "quebec", "british columbia",
			"alberta", "manitoba", "saskatchewan", "nova scotia",
			"new brunswick", "newfoundland and labrador",
			"prince edward island", "northwest territories", "nunavut",
			"yukon", "alabama", "alaska",
		},
	}
}

// Normalize returns a copy of the filter with lowercased, trimmed and
// deduplicated allow-lists.
func (f Filter) Normalize() Filter {
	f.Countries = normalizeList(f.Countries)
	f.States = normalizeList(f.States)
	return f
}

func normalizeList(l []string) []string {
	res := make([]string, 0, len(l))
	for _, v := range l {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "" || slices.Contains(res, v) {
			continue
		}
		res = append(res, v)
	}
	return res
}

// Matches applies the filter to an occurrence. Missing coordinates never
// match the bounding box.
func (f Filter) Matches(
	lat, lon sql.NullFloat64,
	country, state sql.NullString,
) bool {
	if lat.Valid && lon.Valid && f.BBox.Contains(lat.Float64, lon.Float64) {
		return true
	}
	if country.Valid && inList(f.Countries, country.String) {
		return true
	}
	if state.Valid && inList(f.States, state.String) {
		return true
	}
	return false
}

func inList(l []string, s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return slices.Contains(l, s)
}
