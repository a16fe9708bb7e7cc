package handlers

import (
	"delivery-dispatch-service/internal/api/dto"
	"delivery-dispatch-service/internal/domain"
	"delivery-dispatch-service/internal/ports"
	"encoding/json"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// DriverHandler exposes driver live-location reporting. Reported positions
// feed the route optimizer's start-position fallback.
type DriverHandler struct {
	Locations ports.DriverLocationStore
}

func (h *DriverHandler) UpsertLocation(w http.ResponseWriter, r *http.Request) {
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

	var req dto.LocationUpdateRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}

	if err := validate.Struct(req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	ts := time.Now().UTC()
	if req.Timestamp != nil {
		ts = req.Timestamp.UTC()
	}

	loc := domain.DriverLocation{
		OrgID:     org,
		DriverID:  req.DriverID,
		Lat:       req.Lat,
		Lng:       req.Lng,
		Heading:   req.Heading,
		Timestamp: ts,
	}

	if err := h.Locations.Upsert(r.Context(), loc); err != nil {
		logrus.WithError(err).Error("upsert driver location failed")
		writeError(w, r, http.StatusBadGateway, "location store unavailable")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.LocationUpdateResponse{
		DriverID:  loc.DriverID,
		Lat:       loc.Lat,
		Lng:       loc.Lng,
		Heading:   loc.Heading,
		Timestamp: loc.Timestamp,
	})
}
