package dto

import "time"

type LocationUpdateRequest struct {
	DriverID  string     `json:"driver_id" validate:"required"`
	Lat       float64    `json:"lat" validate:"min=-90,max=90"`
	Lng       float64    `json:"lng" validate:"min=-180,max=180"`
	Heading   *float64   `json:"heading,omitempty" validate:"omitempty,min=0,max=360"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

type LocationUpdateResponse struct {
	DriverID  string    `json:"driver_id"`
	Lat       float64   `json:"lat"`
	Lng       float64   `json:"lng"`
	Heading   *float64  `json:"heading,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
