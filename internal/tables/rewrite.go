package tables

import (
	"encoding/csv"
	"errors"
	"io"
)

// RewriteRouteStops copies the route-stop table to w with a synthetic
// route_stop_id key (route_id_stop_id_order). Rows lacking any of route_id,
// stop_id or order are dropped and reported.
func RewriteRouteStops(t *Table, w io.Writer) (int, []error, error) {
	return rewrite(t, w,
		[]string{"route_id", "stop_id", "order"},
		[]string{"route_stop_id", "route_id", "stop_id", "order"},
		func(r Row) []string {
			routeID, stopID, order := r.Value("route_id"), r.Value("stop_id"), r.Value("order")
			return []string{routeID + "_" + stopID + "_" + order, routeID, stopID, order}
		})
}

// RewriteFares copies the fare table to w keyed by fare_id_distance_km, with
// the original fare_id kept as fare_type. Rows lacking fare_id or
// distance_km are dropped and reported.
func RewriteFares(t *Table, w io.Writer) (int, []error, error) {
	return rewrite(t, w,
		[]string{"fare_id", "distance_km"},
		[]string{"fare_id", "fare_type", "distance_km", "regular", "discounted"},
		func(r Row) []string {
			fareID, distance := r.Value("fare_id"), r.Value("distance_km")
			return []string{fareID + "_" + distance, fareID, distance, r.Value("regular"), r.Value("discounted")}
		})
}

func rewrite(t *Table, w io.Writer, required, header []string, convert func(Row) []string) (int, []error, error) {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return 0, nil, err
	}

	var problems []error
	written := 0

rows:
	for row, err := range t.Rows(required...) {
		if err != nil {
			var pe *ParseError
			if errors.As(err, &pe) {
				return written, problems, err
			}
			problems = append(problems, err)
			continue
		}

		for _, col := range required {
			if _, err := requireString(t, row, col); err != nil {
				problems = append(problems, err)
				continue rows
			}
		}

		if err := cw.Write(convert(row)); err != nil {
			return written, problems, err
		}
		written++
	}

	cw.Flush()
	return written, problems, cw.Error()
}
