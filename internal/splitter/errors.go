package splitter

import "fmt"

// MissingReferenceError is returned when a variant's terminal stop is not in
// the stop registry. Only that variant is aborted.
type MissingReferenceError struct {
	VariantID string
	StopID    string
}

func (e *MissingReferenceError) Error() string {
	return fmt.Sprintf("splitter: variant %s references unknown stop %q", e.VariantID, e.StopID)
}

// InsufficientGeometryError is returned when a source declares variants but
// its polyline has no points.
type InsufficientGeometryError struct {
	BaseRouteID string
}

func (e *InsufficientGeometryError) Error() string {
	return fmt.Sprintf("splitter: route %s has variants but no geometry", e.BaseRouteID)
}
