// Package kml extracts ordered LineString coordinates from KML documents
// exported by map authoring tools.
package kml

// Exporters are inconsistent about nesting: some put every Placemark into a
// Folder (one per map layer), others place them directly under Document.
// Both locations are read.
type kmlRoot struct {
	Document kmlDocument `xml:"Document"`
}

type kmlDocument struct {
	Name       string         `xml:"name"`
	Folders    []kmlFolder    `xml:"Folder"`
	Placemarks []kmlPlacemark `xml:"Placemark"`
}

type kmlFolder struct {
	Name       string         `xml:"name"`
	Placemarks []kmlPlacemark `xml:"Placemark"`
}

type kmlPlacemark struct {
	Name        string          `xml:"name"`
	LineStrings []kmlLineString `xml:"LineString"`
}

type kmlLineString struct {
	Coordinates []string `xml:"coordinates"`
}

// placemarks returns folder placemarks first, then direct ones,
// each group in document order.
func (d kmlDocument) placemarks() []kmlPlacemark {
	var out []kmlPlacemark
	for _, f := range d.Folders {
		out = append(out, f.Placemarks...)
	}
	return append(out, d.Placemarks...)
}

// coordinates returns the coordinate text of the first LineString, if any.
func (p kmlPlacemark) coordinates() (string, bool) {
	if len(p.LineStrings) == 0 || len(p.LineStrings[0].Coordinates) == 0 {
		return "", false
	}
	return p.LineStrings[0].Coordinates[0], true
}
