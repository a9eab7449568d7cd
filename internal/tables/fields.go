package tables

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	// ErrMissingField marks an empty required value.
	ErrMissingField = errors.New("missing required value")
	// ErrDefaultedToZero marks a numeric value replaced by 0 in lenient mode.
	ErrDefaultedToZero = errors.New("unparseable number defaulted to 0")
)

// LoadOptions tunes row validation.
type LoadOptions struct {
	// LenientNumbers turns empty or unparseable numeric fields into 0 instead
	// of skipping the row. The substitution is still reported.
	LenientNumbers bool
}

// requireString returns the value of col or a MalformedRecordError.
func requireString(t *Table, row Row, col string) (string, error) {
	v := row.Value(col)
	if v == "" {
		return "", &MalformedRecordError{Table: t.name, Line: row.Line, Field: col, Err: ErrMissingField}
	}
	return v, nil
}

// numberField parses col with parse. The returned problem is non-nil whenever
// the value was not usable as-is; keep reports whether the row survives.
func numberField[T int | float64](t *Table, row Row, col string, opts LoadOptions, parse func(string) (T, error)) (value T, problem error, keep bool) {
	raw := row.Value(col)

	var err error
	if raw == "" {
		err = ErrMissingField
	} else if value, err = parse(raw); err == nil {
		return value, nil, true
	}

	if opts.LenientNumbers {
		return 0, &MalformedRecordError{Table: t.name, Line: row.Line, Field: col, Value: raw, Err: fmt.Errorf("%w: %w", ErrDefaultedToZero, err)}, true
	}
	return 0, &MalformedRecordError{Table: t.name, Line: row.Line, Field: col, Value: raw, Err: err}, false
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}
