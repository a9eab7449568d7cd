package kml

import (
	"bufio"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/athenavillarin/lugar-app/internal/geo"

	"github.com/rs/zerolog/log"
)

// DefaultMaxTokenBytes bounds a single "lon,lat[,alt]" tuple.
const DefaultMaxTokenBytes = 256

// Extractor reads LineString geometry out of KML documents.
type Extractor struct {
	// MaxTokenBytes caps the size of one coordinate tuple.
	// Zero means DefaultMaxTokenBytes.
	MaxTokenBytes int
}

// Extract parses a document with the default Extractor.
func Extract(r io.Reader) ([]geo.GeoPoint, error) {
	return Extractor{}.Extract(r)
}

// SourceID derives the source identifier (base route id) from a file path.
func SourceID(path string) string {
	name := filepath.Base(path)
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// ExtractFile parses the KML file at path into a Polyline keyed by SourceID.
func (e Extractor) ExtractFile(path string) (geo.Polyline, error) {
	line := geo.Polyline{SourceID: SourceID(path)}

	f, err := os.Open(path)
	if err != nil {
		return line, &ParseError{Source: path, Err: err}
	}
	defer func() { _ = f.Close() }()

	points, err := e.Extract(f)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.Source = path
		}
		return line, err
	}

	line.Points = points
	return line, nil
}

// Extract returns every LineString coordinate of the document, folder
// placemarks first and direct placemarks second, in document order.
// A document without any LineString yields an empty slice and no error.
func (e Extractor) Extract(r io.Reader) ([]geo.GeoPoint, error) {
	var root kmlRoot
	if err := xml.NewDecoder(r).Decode(&root); err != nil {
		return nil, &ParseError{Err: err}
	}

	points := []geo.GeoPoint{}
	for _, pm := range root.Document.placemarks() {
		text, ok := pm.coordinates()
		if !ok {
			log.Trace().Str("placemark", pm.Name).Msg("Placemark has no LineString, skipping")
			continue
		}

		var err error
		points, err = e.appendCoordinates(points, text)
		if err != nil {
			var pe *ParseError
			if errors.As(err, &pe) {
				pe.Placemark = pm.Name
			}
			return nil, err
		}
	}

	return points, nil
}

// appendCoordinates tokenizes coordinate text on whitespace and appends the
// parsed points to dst.
func (e Extractor) appendCoordinates(dst []geo.GeoPoint, text string) ([]geo.GeoPoint, error) {
	limit := e.MaxTokenBytes
	if limit <= 0 {
		limit = DefaultMaxTokenBytes
	}

	sc := bufio.NewScanner(strings.NewReader(text))
	sc.Buffer(make([]byte, 0, min(limit, 64)), limit)
	sc.Split(bufio.ScanWords)

	for sc.Scan() {
		token := sc.Text()
		p, err := parseTuple(token)
		if err != nil {
			return nil, &ParseError{Token: token, Err: err}
		}
		dst = append(dst, p)
	}

	if err := sc.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, &ParseError{Err: fmt.Errorf("%w: limit %d bytes", ErrTokenTooLong, limit)}
		}
		return nil, &ParseError{Err: err}
	}

	return dst, nil
}

// parseTuple parses "lon,lat[,alt]". Altitude is discarded.
func parseTuple(token string) (geo.GeoPoint, error) {
	parts := strings.Split(token, ",")
	if len(parts) < 2 || len(parts) > 3 {
		return geo.GeoPoint{}, fmt.Errorf("expected lon,lat[,alt], got %d fields", len(parts))
	}

	lon, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return geo.GeoPoint{}, fmt.Errorf("longitude: %w", err)
	}
	lat, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return geo.GeoPoint{}, fmt.Errorf("latitude: %w", err)
	}

	p := geo.GeoPoint{Latitude: lat, Longitude: lon}
	if err := p.Validate(); err != nil {
		return geo.GeoPoint{}, err
	}

	return p, nil
}
