package tables

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
)

var (
	// ErrInvalidOrder marks an order value below 1.
	ErrInvalidOrder = errors.New("order must be 1 or greater")
	// ErrDuplicatePosition marks two stops claiming the same position.
	ErrDuplicatePosition = errors.New("duplicate stop position")
	// ErrSequenceGap marks a missing position in a variant's stop list.
	ErrSequenceGap = errors.New("gap in stop sequence")
)

// RouteVariantOrder is the ordered stop list of one route variant.
type RouteVariantOrder struct {
	VariantID string   `json:"variant_id"`
	Stops     []string `json:"stops"`
}

// First returns the first stop id.
func (o RouteVariantOrder) First() string {
	return o.Stops[0]
}

// Last returns the last stop id.
func (o RouteVariantOrder) Last() string {
	return o.Stops[len(o.Stops)-1]
}

// Orders maps variant ids to their stop sequences.
type Orders map[string]RouteVariantOrder

// LoadRouteStops reads a route-stop table with columns route_id, stop_id and
// order (1-indexed). Each variant becomes a dense 0-indexed stop list. A
// variant with duplicate or missing positions is rejected with a
// *SequenceError; malformed rows are skipped and reported.
func LoadRouteStops(t *Table, opts LoadOptions) (Orders, []error, error) {
	positions := make(map[string]map[int]string)
	rejected := make(map[string]bool)
	var problems []error

	for row, err := range t.Rows("route_id", "stop_id", "order") {
		if err != nil {
			var pe *ParseError
			if errors.As(err, &pe) {
				return nil, problems, err
			}
			problems = append(problems, err)
			continue
		}

		routeID, err := requireString(t, row, "route_id")
		if err != nil {
			problems = append(problems, err)
			continue
		}
		stopID, err := requireString(t, row, "stop_id")
		if err != nil {
			problems = append(problems, err)
			continue
		}

		order, problem, keep := numberField(t, row, "order", opts, strconv.Atoi)
		if problem != nil {
			problems = append(problems, problem)
		}
		if !keep {
			continue
		}
		if order < 1 {
			problems = append(problems, &MalformedRecordError{Table: t.name, Line: row.Line, Field: "order", Value: row.Value("order"), Err: ErrInvalidOrder})
			continue
		}

		if rejected[routeID] {
			continue
		}
		seq, ok := positions[routeID]
		if !ok {
			seq = make(map[int]string)
			positions[routeID] = seq
		}
		if _, dup := seq[order]; dup {
			problems = append(problems, &SequenceError{Table: t.name, VariantID: routeID, Position: order, Err: ErrDuplicatePosition})
			rejected[routeID] = true
			delete(positions, routeID)
			continue
		}
		seq[order] = stopID
	}

	ids := make([]string, 0, len(positions))
	for id := range positions {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	orders := make(Orders, len(ids))
	for _, id := range ids {
		seq := positions[id]
		stops := make([]string, len(seq))

		complete := true
		for pos := 1; pos <= len(seq); pos++ {
			stopID, ok := seq[pos]
			if !ok {
				problems = append(problems, &SequenceError{Table: t.name, VariantID: id, Position: pos, Err: fmt.Errorf("%w: %d stops, max position %d", ErrSequenceGap, len(seq), maxPosition(seq))})
				complete = false
				break
			}
			stops[pos-1] = stopID
		}
		if complete {
			orders[id] = RouteVariantOrder{VariantID: id, Stops: stops}
		}
	}

	return orders, problems, nil
}

func maxPosition(seq map[int]string) int {
	m := 0
	for pos := range seq {
		m = max(m, pos)
	}
	return m
}
