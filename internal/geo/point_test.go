package geo_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/floodwatch/floodwatch/internal/geo"
)

func TestDistance_IdenticalPoints(t *testing.T) {
	points := []geo.Point{
		{Lat: 0, Lon: 0},
		{Lat: 9.138, Lon: 99.3208},
		{Lat: -45.5, Lon: 170.2},
		{Lat: 90, Lon: 0},
	}

	for _, p := range points {
		assert.Equal(t, 0.0, geo.Distance(p, p))
	}
}

func TestDistance_Symmetry(t *testing.T) {
	a := geo.Point{Lat: 13.7563, Lon: 100.5018} // Bangkok
	b := geo.Point{Lat: 9.1382, Lon: 99.3215}   // Surat Thani

	assert.Equal(t, geo.Distance(a, b), geo.Distance(b, a))
}

func TestDistance_KnownDistance(t *testing.T) {
	// Bangkok to Chiang Mai is roughly 580 km great-circle.
	bangkok := geo.Point{Lat: 13.7563, Lon: 100.5018}
	chiangMai := geo.Point{Lat: 18.7883, Lon: 98.9853}

	d := geo.Distance(bangkok, chiangMai)
	assert.InDelta(t, 580, d, 10)
}

func TestDistance_Antipodal(t *testing.T) {
	a := geo.Point{Lat: 0, Lon: 0}
	b := geo.Point{Lat: 0, Lon: 180}

	d := geo.Distance(a, b)
	assert.False(t, math.IsNaN(d))
	// Half the Earth's circumference at radius 6371 km.
	assert.InDelta(t, math.Pi*6371, d, 1)
}

func TestDistance_NonNegative(t *testing.T) {
	cases := [][2]geo.Point{
		{{Lat: 1, Lon: 1}, {Lat: 1.0001, Lon: 1.0001}},
		{{Lat: -89.9, Lon: 0}, {Lat: 89.9, Lon: 180}},
		{{Lat: 9.138, Lon: 99.3208}, {Lat: 9.138, Lon: 99.3208}},
	}

	for _, c := range cases {
		d := geo.Distance(c[0], c[1])
		assert.GreaterOrEqual(t, d, 0.0)
		assert.False(t, math.IsNaN(d))
	}
}
