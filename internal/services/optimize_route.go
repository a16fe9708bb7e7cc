package services

import (
	"context"
	"delivery-dispatch-service/internal/domain"
	"delivery-dispatch-service/internal/platform/obs"
	"delivery-dispatch-service/internal/ports"
	"delivery-dispatch-service/internal/solver"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

// An explicit stop supplied by the caller (exact coordinates, optional
// original address for display).
type StopInput struct {
	OrderID string
	Lat     float64
	Lng     float64
	Address string
}

type OptimizeRouteRequest struct {
	OrgID    string
	DriverID string
	// Explicit stops; when empty, stops are derived from the driver's
	// assigned non-terminal orders.
	Stops    []StopInput
	StartLat *float64
	StartLng *float64
}

// RouteOptimizer composes geocoding, matrix construction and the open-route
// solver into a single request/response transformation. It holds no state
// across calls; the geocoder's cache is the only persistent collaborator.
type RouteOptimizer struct {
	Orders    ports.OrderRepository
	Locations ports.DriverLocationStore
	Geocoder  ports.Geocoder
	Matrix    ports.RouteMatrixProvider
	// Solver wall-clock budget; clamped by the solver to [1s, 30s].
	SolverTimeLimit time.Duration
}

// Optimize computes the minimal-duration one-way visiting order for a
// driver's stops. All-or-nothing: input and dependency failures return an
// error with no partial result.
func (o *RouteOptimizer) Optimize(ctx context.Context, req OptimizeRouteRequest) (_ *domain.RouteSolution, err error) {
	defer obs.Time(ctx, "routes.Optimize")(&err)

	stops, err := o.resolveStops(ctx, req)
	if err != nil {
		return nil, err
	}
	if len(stops) == 0 {
		return nil, ErrNoStops
	}

	start, err := o.resolveStart(ctx, req, stops)
	if err != nil {
		return nil, err
	}

	// Start is always matrix index 0; stop i maps to node i+1.
	points := make([]domain.Coordinates, 0, 1+len(stops))
	points = append(points, start)
	for _, s := range stops {
		points = append(points, s.Coordinates)
	}

	m, err := o.Matrix.CalculateMatrix(ctx, points)
	if err != nil {
		return nil, &DependencyError{Op: "calculate route matrix", Err: err}
	}

	sequence, err := o.solve(ctx, m.DurationSeconds)
	if err != nil {
		return nil, err
	}

	return assembleSolution(m, stops, sequence), nil
}

// resolveStops returns the request's explicit stops verbatim, or geocodes the
// driver's assigned non-terminal orders. Geocoding failures are aggregated
// across the whole batch before failing.
func (o *RouteOptimizer) resolveStops(ctx context.Context, req OptimizeRouteRequest) ([]domain.Stop, error) {
	if len(req.Stops) > 0 {
		stops := make([]domain.Stop, 0, len(req.Stops))
		for _, s := range req.Stops {
			stops = append(stops, domain.Stop{
				OrderID:     s.OrderID,
				Coordinates: domain.Coordinates{Lat: s.Lat, Lng: s.Lng},
				Address:     s.Address,
			})
		}
		return stops, nil
	}

	orders, err := o.Orders.ListAssignedNonTerminal(ctx, req.OrgID, req.DriverID)
	if err != nil {
		return nil, &DependencyError{Op: "list assigned orders", Err: err}
	}
	if len(orders) == 0 {
		return nil, ErrNoAssignedOrders
	}

	// Memoize per-address lookups within the request; repeated delivery
	// addresses are common and the misses must stay misses.
	memo := make(map[string]*domain.GeocodePoint)
	unresolved := make([]string, 0)
	stops := make([]domain.Stop, 0, len(orders))

	for _, order := range orders {
		address := strings.TrimSpace(order.DeliveryAddress)
		if address == "" {
			unresolved = append(unresolved, order.OrderID)
			continue
		}

		point, seen := memo[address]
		if !seen {
			resolved, err := o.Geocoder.Geocode(ctx, address)
			switch {
			case errors.Is(err, ports.ErrAddressNotFound):
				memo[address] = nil
			case err != nil:
				return nil, &DependencyError{Op: "geocode delivery address", Err: err}
			default:
				memo[address] = &resolved
			}
			point = memo[address]
		}

		if point == nil {
			unresolved = append(unresolved, order.OrderID)
			continue
		}

		stops = append(stops, domain.Stop{
			OrderID:     order.OrderID,
			Coordinates: point.Coordinates,
			Address:     order.DeliveryAddress,
		})
	}

	if len(unresolved) > 0 {
		return nil, &UnresolvedAddressesError{OrderIDs: unresolved}
	}

	return stops, nil
}

// resolveStart picks the route origin: explicit request coordinates, else the
// driver's last known position, else the first stop (degenerate but keeps the
// solver well-defined).
func (o *RouteOptimizer) resolveStart(ctx context.Context, req OptimizeRouteRequest, stops []domain.Stop) (domain.Coordinates, error) {
	if req.StartLat != nil && req.StartLng != nil {
		return domain.Coordinates{Lat: *req.StartLat, Lng: *req.StartLng}, nil
	}

	position, ok, err := o.Locations.LastKnownPosition(ctx, req.OrgID, req.DriverID)
	if err != nil {
		return domain.Coordinates{}, &DependencyError{Op: "look up driver location", Err: err}
	}
	if ok {
		return position, nil
	}

	return stops[0].Coordinates, nil
}

// solve runs the open-route search on its own goroutine so a slow
// optimization cannot stall the caller past its own deadline; cancellation
// abandons the in-flight search.
func (o *RouteOptimizer) solve(ctx context.Context, durations [][]float64) ([]int, error) {
	type solveResult struct {
		sequence []int
		err      error
	}

	results := make(chan solveResult, 1)
	go func() {
		sequence, err := solver.SolveOpenRoute(ctx, durations, 0, o.SolverTimeLimit)
		results <- solveResult{sequence: sequence, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-results:
		if res.err != nil {
			return nil, fmt.Errorf("solve open route: %w", res.err)
		}
		return res.sequence, nil
	}
}

// assembleSolution walks the solved node sequence, attaching per-leg costs
// from the previous node in the sequence and dense 1-based sequence numbers.
func assembleSolution(m domain.RouteMatrix, stops []domain.Stop, sequence []int) *domain.RouteSolution {
	ordered := make([]domain.SolvedStop, 0, len(stops))
	totalDistance := 0.0
	totalDuration := 0.0

	previous := 0
	if len(sequence) > 0 {
		previous = sequence[0]
	}

	for _, node := range sequence {
		if node == 0 {
			continue
		}
		stop := stops[node-1]
		distance := m.DistanceMeters[previous][node]
		duration := m.DurationSeconds[previous][node]
		totalDistance += distance
		totalDuration += duration

		ordered = append(ordered, domain.SolvedStop{
			Sequence:                   len(ordered) + 1,
			OrderID:                    stop.OrderID,
			Coordinates:                stop.Coordinates,
			Address:                    stop.Address,
			DistanceFromPreviousMeters: distance,
			DurationFromPreviousSecs:   duration,
		})
		previous = node
	}

	// Defensive fallback: a degenerate sequence with stops present still
	// yields the first stop priced from the start node.
	if len(ordered) == 0 && len(stops) > 0 {
		distance, duration := 0.0, 0.0
		if len(m.DistanceMeters) > 1 {
			distance = m.DistanceMeters[0][1]
		}
		if len(m.DurationSeconds) > 1 {
			duration = m.DurationSeconds[0][1]
		}
		stop := stops[0]
		ordered = append(ordered, domain.SolvedStop{
			Sequence:                   1,
			OrderID:                    stop.OrderID,
			Coordinates:                stop.Coordinates,
			Address:                    stop.Address,
			DistanceFromPreviousMeters: distance,
			DurationFromPreviousSecs:   duration,
		})
		totalDistance += distance
		totalDuration += duration
	}

	return &domain.RouteSolution{
		MatrixSource:         m.Source,
		TotalDistanceMeters:  round2(totalDistance),
		TotalDurationSeconds: round2(totalDuration),
		OrderedStops:         ordered,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
