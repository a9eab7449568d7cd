// Package tables reads the CSV datasets that accompany route geometries:
// the stop registry, the route-stop ordering and the fares table.
package tables

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"path/filepath"
	"strings"
)

// ErrMissingColumn is returned when a required header column is absent.
var ErrMissingColumn = errors.New("missing required column")

// Table is a restartable source of CSV rows. Every call to Rows reads the
// underlying data again from the start.
type Table struct {
	name string
	open func() (io.ReadCloser, error)
}

// Open returns a Table backed by the file at path. The file is opened
// lazily on each iteration.
func Open(path string) *Table {
	return &Table{
		name: filepath.Base(path),
		open: func() (io.ReadCloser, error) { return os.Open(path) },
	}
}

// FromBytes returns a Table over in-memory CSV data.
func FromBytes(name string, data []byte) *Table {
	return &Table{
		name: name,
		open: func() (io.ReadCloser, error) { return io.NopCloser(bytes.NewReader(data)), nil },
	}
}

// Name identifies the table in errors and logs.
func (t *Table) Name() string {
	return t.name
}

// Row is one data record addressed by header name.
type Row struct {
	Line   int
	fields []string
	header map[string]int
}

// Get returns the trimmed value of column col and whether the row has it.
func (r Row) Get(col string) (string, bool) {
	i, ok := r.header[col]
	if !ok || i >= len(r.fields) {
		return "", false
	}
	return strings.TrimSpace(r.fields[i]), true
}

// Value returns the trimmed value of col or "" when absent.
func (r Row) Value(col string) string {
	v, _ := r.Get(col)
	return v
}

// Rows yields the data rows of the table. A row-level CSV problem is yielded
// as a *MalformedRecordError and iteration continues; an unreadable table or
// a missing required column is yielded once as a *ParseError and ends the
// sequence. Blank lines are skipped.
func (t *Table) Rows(required ...string) iter.Seq2[Row, error] {
	return func(yield func(Row, error) bool) {
		rc, err := t.open()
		if err != nil {
			yield(Row{}, &ParseError{Table: t.name, Err: err})
			return
		}
		defer func() { _ = rc.Close() }()

		r := csv.NewReader(rc)
		r.FieldsPerRecord = -1
		r.LazyQuotes = true

		head, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				err = errors.New("empty table")
			}
			yield(Row{}, &ParseError{Table: t.name, Err: err})
			return
		}

		header := make(map[string]int, len(head))
		for i, h := range head {
			h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
			if _, dup := header[h]; !dup {
				header[h] = i
			}
		}
		for _, col := range required {
			if _, ok := header[col]; !ok {
				yield(Row{}, &ParseError{Table: t.name, Err: fmt.Errorf("%w: %s", ErrMissingColumn, col)})
				return
			}
		}

		for {
			fields, err := r.Read()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				var csvErr *csv.ParseError
				if !errors.As(err, &csvErr) {
					yield(Row{}, &ParseError{Table: t.name, Err: err})
					return
				}
				if !yield(Row{Line: csvErr.StartLine}, &MalformedRecordError{Table: t.name, Line: csvErr.StartLine, Err: err}) {
					return
				}
				continue
			}

			if isBlank(fields) {
				continue
			}
			line, _ := r.FieldPos(0)
			if !yield(Row{Line: line, fields: fields, header: header}, nil) {
				return
			}
		}
	}
}

func isBlank(fields []string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
