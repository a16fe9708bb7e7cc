package domain

import "time"

// Most recent live position reported by a driver. Records expire from the
// store after a configurable TTL; expired records simply stop resolving.
type DriverLocation struct {
	OrgID     string
	DriverID  string
	Lat       float64
	Lng       float64
	Heading   *float64
	Timestamp time.Time
}
