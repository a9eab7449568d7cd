package main

import (
	"encoding/json"
	"io"
	"testing"

	"github.com/athenavillarin/lugar-app/internal/geo"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

var samplePoints = []geo.GeoPoint{
	{Latitude: 14.676, Longitude: 121.0437},
	{Latitude: 14.677, Longitude: 121.044},
}

func TestMarshalJSON(t *testing.T) {
	data, err := marshal("json", "R01", samplePoints)
	require.NoError(t, err)

	var dump map[string][]geo.GeoPoint
	require.NoError(t, json.Unmarshal(data, &dump))
	assert.Equal(t, samplePoints, dump["R01"])
	assert.Contains(t, string(data), `"latitude": 14.676`)
}

func TestMarshalYAML(t *testing.T) {
	data, err := marshal("yaml", "R01", samplePoints)
	require.NoError(t, err)

	var dump map[string][]geo.GeoPoint
	require.NoError(t, yaml.Unmarshal(data, &dump))
	assert.Equal(t, samplePoints, dump["R01"])
}

func TestMarshalGeoJSON(t *testing.T) {
	data, err := marshal("geojson", "R01", samplePoints)
	require.NoError(t, err)

	var fc geo.GeoJSONFeatureCollection
	require.NoError(t, json.Unmarshal(data, &fc))
	require.Len(t, fc.Features, 1)
	assert.Equal(t, [][]float64{{121.0437, 14.676}, {121.044, 14.677}}, fc.Features[0].Geometry.Coordinates)
}

func TestLoggerOptions(t *testing.T) {
	var opts Options
	_, err := flags.NewParser(&opts, flags.Default).ParseArgs(nil)
	require.NoError(t, err)
	assert.Equal(t, "info", opts.Logger.Level)

	_, err = flags.NewParser(&opts, flags.Default).ParseArgs([]string{"--log-level", "warn", "-i", "route.kml"})
	require.NoError(t, err)
	assert.Equal(t, "route.kml", opts.Input)

	prev := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(prev) })
	opts.Logger.SetupWriter(io.Discard)
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())
}
