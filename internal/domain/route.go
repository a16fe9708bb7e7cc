package domain

// A single delivery stop prepared for optimization. Stops are built fresh per
// request (from explicit request data or geocoded assigned orders) and are
// never persisted.
type Stop struct {
	OrderID     string
	Coordinates Coordinates
	Address     string
}

// Square pairwise distance/duration matrices over an ordered point list.
// Both matrices share the point ordering of the input; the diagonal is zero.
// Source records which provider produced the matrix.
type RouteMatrix struct {
	Source          string
	DistanceMeters  [][]float64
	DurationSeconds [][]float64
}

// One stop in a solved route, with the leg cost from the previous node in the
// optimized sequence (not from the start).
type SolvedStop struct {
	Sequence                   int
	OrderID                    string
	Coordinates                Coordinates
	Address                    string
	DistanceFromPreviousMeters float64
	DurationFromPreviousSecs   float64
}

// The optimized visiting order for a single vehicle, one-way (no return leg).
// A RouteSolution is planning output only and carries no side effects.
type RouteSolution struct {
	MatrixSource         string
	TotalDistanceMeters  float64
	TotalDurationSeconds float64
	OrderedStops         []SolvedStop
}
