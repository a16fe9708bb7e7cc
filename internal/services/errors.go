package services

import (
	"errors"
	"fmt"
	"strings"
)

// Client-correctable input conditions.
var (
	ErrNoStops          = errors.New("at least one stop is required")
	ErrNoAssignedOrders = errors.New("no assigned orders found for driver")
)

// UnresolvedAddressesError reports every assigned order whose delivery
// address failed to geocode. The full set is collected before failing so the
// caller sees the whole data-quality problem at once, not just the first hit.
type UnresolvedAddressesError struct {
	OrderIDs []string
}

func (e *UnresolvedAddressesError) Error() string {
	return "unable to geocode delivery addresses for assigned orders: " + strings.Join(e.OrderIDs, ", ")
}

// DependencyError marks an upstream/infra failure (repository, location
// store, live geocoding or matrix backend). Not retried at this layer.
type DependencyError struct {
	Op  string
	Err error
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *DependencyError) Unwrap() error { return e.Err }

// IsInputError reports whether err is client-correctable.
func IsInputError(err error) bool {
	var unresolved *UnresolvedAddressesError
	return errors.Is(err, ErrNoStops) ||
		errors.Is(err, ErrNoAssignedOrders) ||
		errors.As(err, &unresolved)
}
