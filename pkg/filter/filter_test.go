package filter_test

import (
	"database/sql"
	"testing"

	"github.com/gnames/symbdb/pkg/filter"
	"github.com/stretchr/testify/assert"
)

func f64(v float64) sql.NullFloat64 { return sql.NullFloat64{Float64: v, Valid: true} }
func str(s string) sql.NullString    { return sql.NullString{String: s, Valid: true} }

func TestMatches(t *testing.T) {
	flt := filter.Default().Normalize()

	tests := []struct {
		name    string
		lat     sql.NullFloat64
		lon     sql.NullFloat64
		country sql.NullString
		state   sql.NullString
		want    bool
	}{
		{
			name: "lon out of range",
			lat:  f64(50), lon: f64(10),
			want: false,
		},
		{
			name: "lon out of range but country matches",
			lat:  f64(50), lon: f64(10), country: str("Canada"),
			want: true,
		},
		{
			name: "lon out of range but state matches",
			lat:  f64(50), lon: f64(10), state: str("  Nuevo León "),
			want: true,
		},
		{
			name: "inside box",
			lat:  f64(45.5), lon: f64(-73.6),
			want: true,
		},
		{
			name: "box edge included",
			lat:  f64(6.6), lon: f64(-49.0),
			want: true,
		},
		{
			name: "no coordinates, unknown country",
			country: str("France"),
			want:    false,
		},
		{
			name: "only latitude",
			lat:  f64(45),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := flt.Matches(tt.lat, tt.lon, tt.country, tt.state)
			assert.Equal(t, tt.want, res)
		})
	}
}

func TestNormalize(t *testing.T) {
	f := filter.Filter{
		Countries: []string{" Canada", "CANADA", "", "Mexico"},
		States:    []string{"Yukon"},
	}
	res := f.Normalize()
	assert.Equal(t, []string{"canada", "mexico"}, res.Countries)
	assert.Equal(t, []string{"yukon"}, res.States)
	assert.Equal(t, []string{" Canada", "CANADA", "", "Mexico"}, f.Countries)
}

func TestBBoxValid(t *testing.T) {
	assert.True(t, filter.Default().BBox.Valid())
	assert.False(t, filter.BBox{MinLat: 10, MaxLat: 5}.Valid())
	assert.False(t, filter.BBox{MinLon: -200, MaxLon: 0}.Valid())
}
