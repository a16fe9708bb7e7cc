package dto

type OptimizeStopInput struct {
	OrderID string  `json:"order_id" validate:"required"`
	Lat     float64 `json:"lat" validate:"min=-90,max=90"`
	Lng     float64 `json:"lng" validate:"min=-180,max=180"`
	Address string  `json:"address,omitempty"`
}

type OptimizeRequest struct {
	DriverID string              `json:"driver_id" validate:"required"`
	Stops    []OptimizeStopInput `json:"stops,omitempty" validate:"omitempty,dive"`
	StartLat *float64            `json:"start_lat,omitempty" validate:"omitempty,min=-90,max=90"`
	StartLng *float64            `json:"start_lng,omitempty" validate:"omitempty,min=-180,max=180"`
}

type OptimizedStopResponse struct {
	Sequence                   int     `json:"sequence"`
	OrderID                    string  `json:"order_id"`
	Lat                        float64 `json:"lat"`
	Lng                        float64 `json:"lng"`
	Address                    string  `json:"address,omitempty"`
	DistanceFromPreviousMeters float64 `json:"distance_from_previous_meters"`
	DurationFromPreviousSecs   float64 `json:"duration_from_previous_seconds"`
}

type OptimizeResponse struct {
	MatrixSource         string                  `json:"matrix_source"`
	TotalDistanceMeters  float64                 `json:"total_distance_meters"`
	TotalDurationSeconds float64                 `json:"total_duration_seconds"`
	OrderedStops         []OptimizedStopResponse `json:"ordered_stops"`
}
