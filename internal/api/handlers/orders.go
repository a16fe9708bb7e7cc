package handlers

import (
	"delivery-dispatch-service/internal/api/dto"
	"delivery-dispatch-service/internal/ports"
	"net/http"

	"github.com/sirupsen/logrus"
)

// OrderHandler exposes read-only retrieval of a driver's routable orders.
type OrderHandler struct {
	Repo ports.OrderRepository
}

func (h *OrderHandler) ListAssigned(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	org := orgID(r)
	if org == "" {
		writeError(w, r, http.StatusBadRequest, "X-Org-ID header is required")
		return
	}

	driverID := r.URL.Query().Get("driver_id")
	if driverID == "" {
		writeError(w, r, http.StatusBadRequest, "driver_id is required")
		return
	}

	orders, err := h.Repo.ListAssignedNonTerminal(r.Context(), org, driverID)
	if err != nil {
		logrus.WithError(err).Error("list assigned orders failed")
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListOrdersResponse{
		Orders: make([]dto.OrderResponse, 0, len(orders)),
	}
	for _, o := range orders {
		res.Orders = append(res.Orders, dto.OrderResponse{
			OrderID:         o.OrderID,
			DeliveryAddress: o.DeliveryAddress,
			Status:          string(o.Status),
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
