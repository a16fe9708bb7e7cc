package domain

// Delivery order status values as stored by the dispatch backend.
type OrderStatus string

const (
	StatusCreated   OrderStatus = "Created"
	StatusAssigned  OrderStatus = "Assigned"
	StatusPickedUp  OrderStatus = "PickedUp"
	StatusEnRoute   OrderStatus = "EnRoute"
	StatusDelivered OrderStatus = "Delivered"
	StatusFailed    OrderStatus = "Failed"
)

// Terminal reports whether an order in this status can no longer be routed.
func (s OrderStatus) Terminal() bool {
	return s == StatusDelivered || s == StatusFailed
}

// A delivery order as seen by the route optimizer: an identifier and the
// free-text delivery address to resolve. The full order record (pickup,
// billing, proof-of-delivery) lives behind the repository port.
type Order struct {
	OrderID         string
	OrgID           string
	DriverID        string
	DeliveryAddress string
	Status          OrderStatus
}
