package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeoPointValidate(t *testing.T) {
	valid := []GeoPoint{
		{Latitude: 0, Longitude: 0},
		{Latitude: 90, Longitude: 180},
		{Latitude: -90, Longitude: -180},
		{Latitude: 14.6091, Longitude: 121.0223},
	}
	for _, p := range valid {
		assert.NoError(t, p.Validate(), "%+v", p)
	}

	invalid := []GeoPoint{
		{Latitude: 90.0001, Longitude: 0},
		{Latitude: -91, Longitude: 0},
		{Latitude: 0, Longitude: 180.5},
		{Latitude: 0, Longitude: -200},
		{Latitude: math.NaN(), Longitude: 0},
		{Latitude: 0, Longitude: math.Inf(1)},
		// swapped axis order of a Manila coordinate
		{Latitude: 121.0223, Longitude: 14.6091},
	}
	for _, p := range invalid {
		err := p.Validate()
		require.Error(t, err, "%+v", p)
		assert.ErrorIs(t, err, ErrOutOfRange)
	}
}

func TestReversed(t *testing.T) {
	points := []GeoPoint{{Latitude: 1}, {Latitude: 2}, {Latitude: 3}}
	rev := Reversed(points)

	assert.Equal(t, []GeoPoint{{Latitude: 3}, {Latitude: 2}, {Latitude: 1}}, rev)
	assert.Equal(t, 1.0, points[0].Latitude, "input must not be modified")
	assert.Empty(t, Reversed(nil))
}

func TestPathsToGeoJSON(t *testing.T) {
	paths := map[string]DirectionalPath{
		"R2B": {VariantID: "R2B", Points: []GeoPoint{{Latitude: 1, Longitude: 2}}},
		"R2A": {VariantID: "R2A", Points: []GeoPoint{{Latitude: 1, Longitude: 2}, {Latitude: 3, Longitude: 4}}},
	}

	fc := PathsToGeoJSON(paths)

	require.Len(t, fc.Features, 2)
	assert.Equal(t, "FeatureCollection", fc.Type)
	assert.Equal(t, "R2A", fc.Features[0].Properties["variant_id"])
	assert.Equal(t, "LineString", fc.Features[0].Geometry.Type)
	assert.Equal(t, [][]float64{{2, 1}, {4, 3}}, fc.Features[0].Geometry.Coordinates)
	assert.Equal(t, 1, fc.Features[1].Properties["points"])
}
