package ports

import (
	"context"
	"delivery-dispatch-service/internal/domain"
)

// Port: a boundary for retrieving Order entities from a data source.
type OrderRepository interface {
	// Return the driver's currently assigned orders, excluding terminal
	// statuses (Delivered, Failed).
	ListAssignedNonTerminal(ctx context.Context, orgID, driverID string) ([]*domain.Order, error)
}
