package handlers

import (
	"delivery-dispatch-service/internal/api/dto"
	"delivery-dispatch-service/internal/services"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/sirupsen/logrus"
)

type RouteHandler struct {
	Optimizer *services.RouteOptimizer
}

// Optimize runs single-vehicle open-route optimization for a driver's stops.
// Input problems (no stops, unresolvable addresses) map to 400 with the full
// failure detail; upstream geo-service failures map to 502; solver failures
// are internal.
func (h *RouteHandler) Optimize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	org := orgID(r)
	if org == "" {
		writeError(w, r, http.StatusBadRequest, "X-Org-ID header is required")
		return
	}

	var req dto.OptimizeRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	if err := validate.Struct(req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	svcReq := services.OptimizeRouteRequest{
		OrgID:    org,
		DriverID: req.DriverID,
		StartLat: req.StartLat,
		StartLng: req.StartLng,
	}
	for _, s := range req.Stops {
		svcReq.Stops = append(svcReq.Stops, services.StopInput{
			OrderID: s.OrderID,
			Lat:     s.Lat,
			Lng:     s.Lng,
			Address: s.Address,
		})
	}

	solution, err := h.Optimizer.Optimize(r.Context(), svcReq)
	if err != nil {
		var depErr *services.DependencyError
		switch {
		case services.IsInputError(err):
			writeError(w, r, http.StatusBadRequest, err.Error())
		case errors.As(err, &depErr):
			logrus.WithError(err).Error("route optimization dependency failed")
			writeError(w, r, http.StatusBadGateway, depErr.Op+" failed")
		default:
			logrus.WithError(err).Error("route optimization failed")
			writeError(w, r, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	res := dto.OptimizeResponse{
		MatrixSource:         solution.MatrixSource,
		TotalDistanceMeters:  solution.TotalDistanceMeters,
		TotalDurationSeconds: solution.TotalDurationSeconds,
		OrderedStops:         make([]dto.OptimizedStopResponse, 0, len(solution.OrderedStops)),
	}
	for _, s := range solution.OrderedStops {
		res.OrderedStops = append(res.OrderedStops, dto.OptimizedStopResponse{
			Sequence:                   s.Sequence,
			OrderID:                    s.OrderID,
			Lat:                        s.Coordinates.Lat,
			Lng:                        s.Coordinates.Lng,
			Address:                    s.Address,
			DistanceFromPreviousMeters: s.DistanceFromPreviousMeters,
			DurationFromPreviousSecs:   s.DurationFromPreviousSecs,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
