package api

import (
	"delivery-dispatch-service/internal/api/handlers"
	"delivery-dispatch-service/internal/ports"
	"delivery-dispatch-service/internal/services"
	"net/http"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(
	optimizer *services.RouteOptimizer,
	orders ports.OrderRepository,
	locations ports.DriverLocationStore,
) http.Handler {
	mux := http.NewServeMux()

	routeHandler := &handlers.RouteHandler{Optimizer: optimizer}
	orderHandler := &handlers.OrderHandler{Repo: orders}
	driverHandler := &handlers.DriverHandler{Locations: locations}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/routes/optimize", routeHandler.Optimize)
	mux.HandleFunc("/orders/assigned", orderHandler.ListAssigned)
	mux.HandleFunc("/drivers/location", driverHandler.UpsertLocation)

	return loggingMiddleware(mux)
}
