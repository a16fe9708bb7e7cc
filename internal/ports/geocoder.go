package ports

import (
	"context"
	"delivery-dispatch-service/internal/domain"
	"errors"
)

// ErrAddressNotFound signals that no backend could resolve an address.
// It is a per-address condition, not an infrastructure failure; callers that
// geocode batches must collect every unresolved address before failing.
var ErrAddressNotFound = errors.New("address not found")

// Contract for resolving a free-text address (or inline "lat,lng" string)
// to coordinates.
type Geocoder interface {
	// Geocode returns the resolved point or ErrAddressNotFound.
	// Any other error is an upstream dependency failure.
	Geocode(ctx context.Context, address string) (domain.GeocodePoint, error)
}
