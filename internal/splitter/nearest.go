package splitter

import (
	"math"

	"github.com/athenavillarin/lugar-app/internal/geo"
)

// NearestIndex returns the index of the point closest to p and its distance
// in meters. Ties go to the lowest index. It returns -1 for an empty slice.
func NearestIndex(points []geo.GeoPoint, p geo.GeoPoint) (int, float64) {
	best, bestDist := -1, math.Inf(1)
	for i, c := range points {
		if d := geo.Distance(p, c); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best, bestDist
}
