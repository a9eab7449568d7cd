// Package geo holds the geographic primitives shared by the route tooling:
// points, polylines, directional paths, distances and GeoJSON export.
package geo

import (
	"errors"
	"fmt"
	"math"
)

// ErrOutOfRange reports a coordinate outside the WGS84 decimal degree range.
var ErrOutOfRange = errors.New("coordinate out of range")

// GeoPoint is a WGS84 position in decimal degrees.
type GeoPoint struct {
	Latitude  float64 `json:"latitude" yaml:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude"`
}

// Validate checks latitude is within [-90, 90] and longitude within [-180, 180].
// NaN and infinite values are rejected as well.
func (p GeoPoint) Validate() error {
	if math.IsNaN(p.Latitude) || p.Latitude < -90 || p.Latitude > 90 {
		return fmt.Errorf("%w: latitude %v", ErrOutOfRange, p.Latitude)
	}
	if math.IsNaN(p.Longitude) || p.Longitude < -180 || p.Longitude > 180 {
		return fmt.Errorf("%w: longitude %v", ErrOutOfRange, p.Longitude)
	}
	return nil
}

// Polyline is the geometry extracted from one source document.
// Points are kept in traversal order.
type Polyline struct {
	SourceID string
	Points   []GeoPoint
}

// DirectionalPath is the reconciled geometry of one route variant.
type DirectionalPath struct {
	VariantID string
	Points    []GeoPoint
}

// Reversed returns a reversed copy of points.
func Reversed(points []GeoPoint) []GeoPoint {
	out := make([]GeoPoint, len(points))
	for i, p := range points {
		out[len(points)-1-i] = p
	}
	return out
}
