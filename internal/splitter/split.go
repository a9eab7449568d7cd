// Package splitter cuts a shared two-way route geometry into per-variant
// directional paths anchored on each variant's terminal stops.
package splitter

import (
	"errors"

	"github.com/athenavillarin/lugar-app/internal/geo"
	"github.com/athenavillarin/lugar-app/internal/tables"
)

// Default direction suffixes appended to a base route id.
const (
	DefaultSuffixA = "A"
	DefaultSuffixB = "B"
)

// Options configures variant naming.
type Options struct {
	SuffixA string
	SuffixB string
}

// Splitter matches polylines against stop registry and route orders.
// Both are treated as read-only snapshots.
type Splitter struct {
	stops   tables.Registry
	orders  tables.Orders
	suffixA string
	suffixB string
}

// New returns a Splitter. Empty suffixes fall back to "A" and "B".
func New(stops tables.Registry, orders tables.Orders, opts Options) *Splitter {
	if opts.SuffixA == "" {
		opts.SuffixA = DefaultSuffixA
	}
	if opts.SuffixB == "" {
		opts.SuffixB = DefaultSuffixB
	}
	return &Splitter{stops: stops, orders: orders, suffixA: opts.SuffixA, suffixB: opts.SuffixB}
}

// Variants returns the A and B variant ids of a base route and whether both
// have a stop order.
func (s *Splitter) Variants(baseRouteID string) (a, b string, ok bool) {
	a, b = baseRouteID+s.suffixA, baseRouteID+s.suffixB
	_, okA := s.orders[a]
	_, okB := s.orders[b]
	return a, b, okA && okB
}

// Result holds the directional paths of one base route and their diagnostics.
type Result struct {
	BaseRouteID string
	Paths       map[string]geo.DirectionalPath
	Diagnostics []VariantDiagnostics
}

// Split produces the A and B paths of baseRouteID from line.
//
// The A slice keeps the polyline's direction and the B slice is always
// reversed, since both directions were digitized as one road polyline. The
// assumption is not corrected here; orientation diagnostics report where the
// stop order disagrees with it.
//
// When either variant has no stop order the result is empty and the error
// nil. An unknown terminal stop aborts only its own variant.
func (s *Splitter) Split(baseRouteID string, line geo.Polyline) (*Result, error) {
	res := &Result{BaseRouteID: baseRouteID, Paths: map[string]geo.DirectionalPath{}}

	aID, bID, ok := s.Variants(baseRouteID)
	if !ok {
		return res, nil
	}
	if len(line.Points) == 0 {
		return res, &InsufficientGeometryError{BaseRouteID: baseRouteID}
	}

	var errs []error
	for _, v := range []struct {
		id      string
		reverse bool
	}{
		{aID, false},
		{bID, true},
	} {
		path, diag, err := s.splitVariant(s.orders[v.id], line.Points, v.reverse)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		res.Paths[v.id] = path
		res.Diagnostics = append(res.Diagnostics, diag)
	}

	return res, errors.Join(errs...)
}

func (s *Splitter) splitVariant(order tables.RouteVariantOrder, points []geo.GeoPoint, reverse bool) (geo.DirectionalPath, VariantDiagnostics, error) {
	first, ok := s.stops.Lookup(order.First())
	if !ok {
		return geo.DirectionalPath{}, VariantDiagnostics{}, &MissingReferenceError{VariantID: order.VariantID, StopID: order.First()}
	}
	last, ok := s.stops.Lookup(order.Last())
	if !ok {
		return geo.DirectionalPath{}, VariantDiagnostics{}, &MissingReferenceError{VariantID: order.VariantID, StopID: order.Last()}
	}

	startIdx, startSnap := NearestIndex(points, first.Location)
	endIdx, endSnap := NearestIndex(points, last.Location)

	lo, hi := min(startIdx, endIdx), max(startIdx, endIdx)
	slice := make([]geo.GeoPoint, hi-lo+1)
	copy(slice, points[lo:hi+1])
	if reverse {
		slice = geo.Reversed(slice)
	}

	diag := VariantDiagnostics{
		VariantID:    order.VariantID,
		Reversed:     reverse,
		StartIndex:   startIdx,
		EndIndex:     endIdx,
		StartSnapM:   startSnap,
		EndSnapM:     endSnap,
		Points:       len(slice),
		LengthM:      geo.PathLength(slice),
		SinglePoint:  len(slice) == 1,
		TerminalFlip: terminalFlip(startIdx, endIdx, reverse),
		Mismatches:   s.orientationMismatches(order, points, reverse),
	}

	return geo.DirectionalPath{VariantID: order.VariantID, Points: slice}, diag, nil
}
