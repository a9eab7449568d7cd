package kml

import (
	"errors"
	"fmt"
)

// ErrTokenTooLong is returned when a coordinate tuple exceeds the token buffer.
var ErrTokenTooLong = errors.New("coordinate token too long")

// ParseError describes a document that could not be turned into coordinates.
type ParseError struct {
	Source    string
	Placemark string
	Token     string
	Err       error
}

func (e *ParseError) Error() string {
	msg := "kml: parse"
	if e.Source != "" {
		msg += " " + e.Source
	}
	if e.Placemark != "" {
		msg += fmt.Sprintf(": placemark %q", e.Placemark)
	}
	if e.Token != "" {
		msg += fmt.Sprintf(": token %q", e.Token)
	}
	return msg + ": " + e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
