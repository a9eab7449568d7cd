package splitter

import (
	"github.com/athenavillarin/lugar-app/internal/geo"
	"github.com/athenavillarin/lugar-app/internal/tables"
)

// VariantDiagnostics describes how a variant was matched onto the polyline.
type VariantDiagnostics struct {
	VariantID  string  `json:"variant_id" yaml:"variant_id"`
	Reversed   bool    `json:"reversed" yaml:"reversed"`
	StartIndex int     `json:"start_index" yaml:"start_index"`
	EndIndex   int     `json:"end_index" yaml:"end_index"`
	StartSnapM float64 `json:"start_snap_m" yaml:"start_snap_m"`
	EndSnapM   float64 `json:"end_snap_m" yaml:"end_snap_m"`
	Points     int     `json:"points" yaml:"points"`
	LengthM    float64 `json:"length_m" yaml:"length_m"`

	// SinglePoint paths are valid output but cannot be rendered as lines.
	SinglePoint bool `json:"single_point" yaml:"single_point"`

	// TerminalFlip is set when the first and last stop match in the order
	// opposite to the assumed direction (A forward, B reverse).
	TerminalFlip bool `json:"terminal_flip" yaml:"terminal_flip"`

	// Mismatches counts consecutive stop pairs whose matched polyline
	// indices run against the assumed direction. Unknown stops are ignored.
	Mismatches int `json:"mismatches" yaml:"mismatches"`
}

// Suspicious reports whether the variant needs an operator's attention.
func (d VariantDiagnostics) Suspicious() bool {
	return d.TerminalFlip || d.Mismatches > 0
}

func terminalFlip(startIdx, endIdx int, reverse bool) bool {
	if reverse {
		return startIdx < endIdx
	}
	return startIdx > endIdx
}

func (s *Splitter) orientationMismatches(order tables.RouteVariantOrder, points []geo.GeoPoint, reverse bool) int {
	mismatches := 0
	prev := -1
	for _, id := range order.Stops {
		stop, ok := s.stops.Lookup(id)
		if !ok {
			continue
		}
		idx, _ := NearestIndex(points, stop.Location)
		if prev >= 0 {
			if (!reverse && idx < prev) || (reverse && idx > prev) {
				mismatches++
			}
		}
		prev = idx
	}
	return mismatches
}
