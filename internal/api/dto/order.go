package dto

type OrderResponse struct {
	OrderID         string `json:"order_id"`
	DeliveryAddress string `json:"delivery_address"`
	Status          string `json:"status"`
}

type ListOrdersResponse struct {
	Orders []OrderResponse `json:"orders"`
}
