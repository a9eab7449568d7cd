package processor

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/athenavillarin/lugar-app/internal/geo"

	"github.com/twpayne/go-polyline"
	"gopkg.in/yaml.v3"
)

// Output file base names.
const (
	RoutePathsName  = "route_paths"
	SplitPathsName  = "split_route_paths"
	SummaryName     = "split_summary"
	GeoJSONFile     = SplitPathsName + ".geojson"
	EncodedPathsExt = ".polyline"
)

// ErrOutputExists is returned when outputs must be kept but a run would
// replace them.
var ErrOutputExists = errors.New("output file exists")

// output is one file written at the end of a run.
type output struct {
	fileName string
	format   string
	value    any
}

// EncodePaths converts each path to a Google encoded polyline string.
func EncodePaths(paths map[string]geo.DirectionalPath) map[string]string {
	out := make(map[string]string, len(paths))
	for id, path := range paths {
		coords := make([][]float64, 0, len(path.Points))
		for _, p := range path.Points {
			coords = append(coords, []float64{p.Latitude, p.Longitude})
		}
		out[id] = string(polyline.EncodeCoords(coords))
	}
	return out
}

// pointsByID flattens directional paths into the dump layout.
func pointsByID(paths map[string]geo.DirectionalPath) map[string][]geo.GeoPoint {
	out := make(map[string][]geo.GeoPoint, len(paths))
	for id, path := range paths {
		out[id] = path.Points
	}
	return out
}

// sortedKeys returns the keys of m in ascending order.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// saveFile writes v as json, yaml or geojson to dir/fileName, replacing any
// existing file. A failed close is returned since the file may be truncated.
func saveFile(dir, fileName, format string, v any) (path string, err error) {
	path = filepath.Join(dir, fileName)

	switch format {
	case "yaml", "json", "geojson":
	default:
		return path, fmt.Errorf("unsupported output format %q", format)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return path, err
	}

	f, err := os.Create(path)
	if err != nil {
		return path, err
	}

	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	if format == "yaml" {
		enc := yaml.NewEncoder(f)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return path, err
		}
		return path, enc.Close()
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return path, enc.Encode(v)
}
