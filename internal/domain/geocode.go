package domain

// A geocoding result with its provenance tag.
// The source records where the point came from (e.g. "inline-latlng",
// "hash-dev", "ors-geocode") for observability; it never drives control flow.
type GeocodePoint struct {
	Coordinates Coordinates
	Source      string
}
