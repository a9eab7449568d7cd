package geo

import "math"

// EarthRadiusMeters is the mean Earth radius used for great-circle distances.
const EarthRadiusMeters = 6371000.0

// Distance returns the great-circle distance in meters between two points
// using the haversine formula on a spherical Earth.
func Distance(p1, p2 GeoPoint) float64 {
	lat1 := p1.Latitude * (math.Pi / 180)
	lat2 := p2.Latitude * (math.Pi / 180)
	dLat := (p2.Latitude - p1.Latitude) * (math.Pi / 180)
	dLon := (p2.Longitude - p1.Longitude) * (math.Pi / 180)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	// rounding can push a past 1 near antipodes
	a = math.Min(a, 1)

	return EarthRadiusMeters * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// PathLength sums the distances between consecutive points.
func PathLength(points []GeoPoint) float64 {
	var total float64
	for i := 1; i < len(points); i++ {
		total += Distance(points[i-1], points[i])
	}
	return total
}
