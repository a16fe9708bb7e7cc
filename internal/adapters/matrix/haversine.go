package matrix

import (
	"context"
	"delivery-dispatch-service/internal/domain"
	"math"
)

// SourceHaversine tags matrices produced by the great-circle approximation.
const SourceHaversine = "haversine-dev"

const (
	earthRadiusMeters = 6371000.0
	// Approximate urban speed for development fallback.
	assumedSpeedMetersPerSecond = 13.89
)

// HaversineProvider computes great-circle distances at an assumed urban travel
// speed. It is the offline/development stand-in for a road-network matrix
// service: deterministic, dependency-free, and symmetric.
type HaversineProvider struct{}

func NewHaversineProvider() *HaversineProvider { return &HaversineProvider{} }

func (p *HaversineProvider) CalculateMatrix(_ context.Context, points []domain.Coordinates) (domain.RouteMatrix, error) {
	n := len(points)
	distance := make([][]float64, n)
	duration := make([][]float64, n)

	for i := range points {
		distance[i] = make([]float64, n)
		duration[i] = make([]float64, n)
		for j := range points {
			if i == j {
				continue
			}
			meters := haversineMeters(points[i], points[j])
			distance[i][j] = meters
			duration[i][j] = meters / assumedSpeedMetersPerSecond
		}
	}

	return domain.RouteMatrix{
		Source:          SourceHaversine,
		DistanceMeters:  distance,
		DurationSeconds: duration,
	}, nil
}

// haversineMeters returns the great-circle distance between two points using
// the mean Earth radius.
func haversineMeters(a, b domain.Coordinates) float64 {
	phi1 := a.Lat * math.Pi / 180
	phi2 := b.Lat * math.Pi / 180
	dPhi := (b.Lat - a.Lat) * math.Pi / 180
	dLambda := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	return 2 * earthRadiusMeters * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}
