package tables

import (
	"errors"
	"strings"

	"github.com/athenavillarin/lugar-app/internal/geo"
)

// ErrDuplicateStop is reported for a stop id seen more than once.
var ErrDuplicateStop = errors.New("duplicate stop id")

// Stop is a named stop location.
type Stop struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Location geo.GeoPoint `json:"location"`
}

// Registry maps stop ids to stops. It is read-only once loaded.
type Registry map[string]Stop

// Lookup returns the stop with the given id.
func (r Registry) Lookup(id string) (Stop, bool) {
	s, ok := r[id]
	return s, ok
}

// LoadStops reads a stop table with columns stop_id, stop_name, latitude
// and longitude. Malformed rows are skipped and returned as problems; the
// error is non-nil only when the table cannot be read.
func LoadStops(t *Table, opts LoadOptions) (Registry, []error, error) {
	stops := make(Registry)
	var problems []error

	for row, err := range t.Rows("stop_id", "latitude", "longitude") {
		if err != nil {
			var pe *ParseError
			if errors.As(err, &pe) {
				return nil, problems, err
			}
			problems = append(problems, err)
			continue
		}

		id, err := requireString(t, row, "stop_id")
		if err != nil {
			problems = append(problems, err)
			continue
		}

		lat, problem, keep := numberField(t, row, "latitude", opts, parseFloat)
		if problem != nil {
			problems = append(problems, problem)
		}
		if !keep {
			continue
		}

		lon, problem, keep := numberField(t, row, "longitude", opts, parseFloat)
		if problem != nil {
			problems = append(problems, problem)
		}
		if !keep {
			continue
		}

		loc := geo.GeoPoint{Latitude: lat, Longitude: lon}
		if err := loc.Validate(); err != nil {
			problems = append(problems, &MalformedRecordError{Table: t.name, Line: row.Line, Field: "location", Err: err})
			continue
		}

		if _, dup := stops[id]; dup {
			problems = append(problems, &MalformedRecordError{Table: t.name, Line: row.Line, Field: "stop_id", Value: id, Err: ErrDuplicateStop})
			continue
		}

		stops[id] = Stop{
			ID:       id,
			Name:     strings.ReplaceAll(row.Value("stop_name"), `"`, ""),
			Location: loc,
		}
	}

	return stops, problems, nil
}
