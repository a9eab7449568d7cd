package splitter

import (
	"testing"

	"github.com/athenavillarin/lugar-app/internal/geo"
	"github.com/athenavillarin/lugar-app/internal/tables"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func linePoints(n int) []geo.GeoPoint {
	points := make([]geo.GeoPoint, n)
	for i := range points {
		points[i] = geo.GeoPoint{Latitude: 0, Longitude: float64(i)}
	}
	return points
}

func testRegistry() tables.Registry {
	reg := tables.Registry{}
	for i, id := range []string{"S0", "S1", "S2", "S3", "S4"} {
		reg[id] = tables.Stop{ID: id, Name: id, Location: geo.GeoPoint{Latitude: 0.001, Longitude: float64(i)}}
	}
	return reg
}

func orders(variants map[string][]string) tables.Orders {
	out := tables.Orders{}
	for id, stops := range variants {
		out[id] = tables.RouteVariantOrder{VariantID: id, Stops: stops}
	}
	return out
}

func TestSplitOrientation(t *testing.T) {
	s := New(testRegistry(), orders(map[string][]string{
		"R1A": {"S0", "S2", "S4"},
		"R1B": {"S4", "S2", "S0"},
	}), Options{})

	line := geo.Polyline{SourceID: "R1", Points: linePoints(5)}
	res, err := s.Split("R1", line)
	require.NoError(t, err)

	require.Len(t, res.Paths, 2)
	assert.Equal(t, linePoints(5), res.Paths["R1A"].Points)
	assert.Equal(t, geo.Reversed(linePoints(5)), res.Paths["R1B"].Points)
	assert.Equal(t, geo.GeoPoint{}, res.Paths["R1B"].Points[4], "B ends at the polyline start")
	assert.Equal(t, "R1B", res.Paths["R1B"].VariantID)

	require.Len(t, res.Diagnostics, 2)
	a, b := res.Diagnostics[0], res.Diagnostics[1]
	assert.Equal(t, 0, a.StartIndex)
	assert.Equal(t, 4, a.EndIndex)
	assert.Equal(t, 4, b.StartIndex)
	assert.Equal(t, 0, b.EndIndex)
	assert.True(t, b.Reversed)
	assert.False(t, a.Suspicious())
	assert.False(t, b.Suspicious())
	assert.InDelta(t, 111, a.StartSnapM, 1)

	assert.Equal(t, linePoints(5), line.Points, "input polyline is not modified")
}

func TestSplitSubrange(t *testing.T) {
	s := New(testRegistry(), orders(map[string][]string{
		"R1A": {"S1", "S3"},
		"R1B": {"S3", "S2"},
	}), Options{})

	res, err := s.Split("R1", geo.Polyline{Points: linePoints(5)})
	require.NoError(t, err)

	assert.Equal(t, linePoints(5)[1:4], res.Paths["R1A"].Points)
	assert.Equal(t, []geo.GeoPoint{{Longitude: 3}, {Longitude: 2}}, res.Paths["R1B"].Points)
}

func TestSplitDeterministic(t *testing.T) {
	s := New(testRegistry(), orders(map[string][]string{
		"R1A": {"S0", "S3"},
		"R1B": {"S3", "S1"},
	}), Options{})
	line := geo.Polyline{Points: linePoints(5)}

	first, err := s.Split("R1", line)
	require.NoError(t, err)
	for range 5 {
		again, err := s.Split("R1", line)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestSplitMissingVariant(t *testing.T) {
	s := New(testRegistry(), orders(map[string][]string{
		"R1A": {"S0", "S4"},
	}), Options{})

	_, _, ok := s.Variants("R1")
	assert.False(t, ok)

	res, err := s.Split("R1", geo.Polyline{Points: linePoints(5)})
	require.NoError(t, err)
	assert.Empty(t, res.Paths)
	assert.Empty(t, res.Diagnostics)
}

func TestSplitEmptyPolyline(t *testing.T) {
	s := New(testRegistry(), orders(map[string][]string{
		"R1A": {"S0", "S4"},
		"R1B": {"S4", "S0"},
	}), Options{})

	res, err := s.Split("R1", geo.Polyline{SourceID: "R1"})

	var ige *InsufficientGeometryError
	require.ErrorAs(t, err, &ige)
	assert.Equal(t, "R1", ige.BaseRouteID)
	assert.Empty(t, res.Paths)
}

func TestSplitMissingReference(t *testing.T) {
	s := New(testRegistry(), orders(map[string][]string{
		"R1A": {"S0", "S4"},
		"R1B": {"S4", "S9"},
	}), Options{})

	res, err := s.Split("R1", geo.Polyline{Points: linePoints(5)})

	var mre *MissingReferenceError
	require.ErrorAs(t, err, &mre)
	assert.Equal(t, "R1B", mre.VariantID)
	assert.Equal(t, "S9", mre.StopID)

	assert.Contains(t, res.Paths, "R1A")
	assert.NotContains(t, res.Paths, "R1B")
}

func TestSplitSinglePoint(t *testing.T) {
	s := New(testRegistry(), orders(map[string][]string{
		"R1A": {"S2", "S2"},
		"R1B": {"S4", "S0"},
	}), Options{})

	res, err := s.Split("R1", geo.Polyline{Points: linePoints(5)})
	require.NoError(t, err)

	assert.Len(t, res.Paths["R1A"].Points, 1)
	assert.True(t, res.Diagnostics[0].SinglePoint)
	assert.Zero(t, res.Diagnostics[0].LengthM)
}

func TestSplitOrientationDiagnostics(t *testing.T) {
	// B authored in the same direction as the polyline: the reversal
	// assumption does not hold and must be reported, not corrected.
	s := New(testRegistry(), orders(map[string][]string{
		"R1A": {"S0", "S3", "S1", "S4"},
		"R1B": {"S0", "S2", "S4"},
	}), Options{})

	res, err := s.Split("R1", geo.Polyline{Points: linePoints(5)})
	require.NoError(t, err)

	a, b := res.Diagnostics[0], res.Diagnostics[1]
	assert.False(t, a.TerminalFlip)
	assert.Equal(t, 1, a.Mismatches)
	assert.True(t, a.Suspicious())

	assert.True(t, b.TerminalFlip)
	assert.Equal(t, 2, b.Mismatches)
	assert.Equal(t, geo.Reversed(linePoints(5)), res.Paths["R1B"].Points)
}

func TestSplitCustomSuffixes(t *testing.T) {
	s := New(testRegistry(), orders(map[string][]string{
		"R1-N": {"S0", "S4"},
		"R1-S": {"S4", "S0"},
	}), Options{SuffixA: "-N", SuffixB: "-S"})

	a, b, ok := s.Variants("R1")
	require.True(t, ok)
	assert.Equal(t, "R1-N", a)
	assert.Equal(t, "R1-S", b)
}

func TestNearestIndex(t *testing.T) {
	points := []geo.GeoPoint{
		{Longitude: 0},
		{Longitude: 2},
		{Longitude: 1},
		{Longitude: 2},
	}

	idx, _ := NearestIndex(points, geo.GeoPoint{Longitude: 2})
	assert.Equal(t, 1, idx, "ties resolve to the lowest index")

	idx, d := NearestIndex(points, geo.GeoPoint{Longitude: 1.1})
	assert.Equal(t, 2, idx)
	assert.InDelta(t, 11119.5, d, 10)

	idx, _ = NearestIndex(nil, geo.GeoPoint{})
	assert.Equal(t, -1, idx)
}
