package tables

import "fmt"

// ParseError means a table could not be read at all.
type ParseError struct {
	Table string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("tables: %s: %v", e.Table, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// MalformedRecordError reports a single row that was skipped (or defaulted).
type MalformedRecordError struct {
	Table string
	Line  int
	Field string
	Value string
	Err   error
}

func (e *MalformedRecordError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("tables: %s line %d: %v", e.Table, e.Line, e.Err)
	}
	return fmt.Sprintf("tables: %s line %d: field %s=%q: %v", e.Table, e.Line, e.Field, e.Value, e.Err)
}

func (e *MalformedRecordError) Unwrap() error {
	return e.Err
}

// SequenceError rejects a route variant whose stop positions are not dense.
type SequenceError struct {
	Table     string
	VariantID string
	Position  int
	Err       error
}

func (e *SequenceError) Error() string {
	return fmt.Sprintf("tables: %s: variant %s position %d: %v", e.Table, e.VariantID, e.Position, e.Err)
}

func (e *SequenceError) Unwrap() error {
	return e.Err
}
