package geo

import "sort"

// GeoJSONFeatureCollection represents a collection of geographic features.
// It follows the standard GeoJSON structure.
type GeoJSONFeatureCollection struct {
	Type     string           `json:"type" yaml:"type"`
	Features []GeoJSONFeature `json:"features" yaml:"features"`
}

// GeoJSONFeature represents a single geographic feature with geometry and properties.
type GeoJSONFeature struct {
	Properties map[string]interface{} `json:"properties" yaml:"properties"`
	Type       string                 `json:"type" yaml:"type"`
	Geometry   GeoJSONGeometry        `json:"geometry" yaml:"geometry"`
}

// GeoJSONGeometry represents a LineString geometry.
type GeoJSONGeometry struct {
	Type        string      `json:"type" yaml:"type"`
	Coordinates [][]float64 `json:"coordinates" yaml:"coordinates"` // [[Lon, Lat], ...]
}

// PathsToGeoJSON converts directional paths into a FeatureCollection with one
// LineString feature per variant, ordered by variant id.
func PathsToGeoJSON(paths map[string]DirectionalPath) GeoJSONFeatureCollection {
	ids := make([]string, 0, len(paths))
	for id := range paths {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fc := GeoJSONFeatureCollection{Type: "FeatureCollection", Features: make([]GeoJSONFeature, 0, len(ids))}
	for _, id := range ids {
		path := paths[id]

		coords := make([][]float64, 0, len(path.Points))
		for _, p := range path.Points {
			coords = append(coords, []float64{p.Longitude, p.Latitude})
		}

		fc.Features = append(fc.Features, GeoJSONFeature{
			Type: "Feature",
			Geometry: GeoJSONGeometry{
				Type:        "LineString",
				Coordinates: coords,
			},
			Properties: map[string]interface{}{
				"variant_id": id,
				"points":     len(path.Points),
				"length_m":   PathLength(path.Points),
			},
		})
	}

	return fc
}
