package ports

import (
	"context"
	"delivery-dispatch-service/internal/domain"
)

// Port: a boundary for driver live-location records.
type DriverLocationStore interface {
	// Store or replace the driver's latest reported position.
	Upsert(ctx context.Context, loc domain.DriverLocation) error
	// Return the driver's most recent position, or ok=false when none is
	// known (never reported, or expired).
	LastKnownPosition(ctx context.Context, orgID, driverID string) (domain.Coordinates, bool, error)
}
