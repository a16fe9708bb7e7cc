package geocode

import (
	"delivery-dispatch-service/internal/domain"
	"regexp"
	"strconv"
	"strings"
)

var inlineLatLngRe = regexp.MustCompile(`^\s*(-?\d+(?:\.\d+)?)\s*,\s*(-?\d+(?:\.\d+)?)\s*$`)

// normalize ensures consistent cache keys by collapsing whitespace and
// case-folding.
func normalize(address string) string {
	return strings.ToLower(strings.Join(strings.Fields(address), " "))
}

// parseInlineLatLng recognizes addresses of the form "lat,lng" so callers can
// supply exact coordinates disguised as a text field. Out-of-range values are
// treated as not inline rather than as an error.
func parseInlineLatLng(address string) (domain.GeocodePoint, bool) {
	m := inlineLatLngRe.FindStringSubmatch(address)
	if m == nil {
		return domain.GeocodePoint{}, false
	}

	lat, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return domain.GeocodePoint{}, false
	}
	lng, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return domain.GeocodePoint{}, false
	}

	c := domain.Coordinates{Lat: lat, Lng: lng}
	if !c.Valid() {
		return domain.GeocodePoint{}, false
	}

	return domain.GeocodePoint{Coordinates: c, Source: SourceInline}, true
}
