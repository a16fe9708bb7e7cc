// Package solver computes single-vehicle open delivery routes: visit every
// node starting from a fixed start index, minimizing total transit duration,
// with no return to the start.
//
// The underlying search is built around closed tours, so the node set is
// augmented with one synthetic sink node: zero cost from every real node into
// the sink, effectively infinite cost out of it. The solver is then run with
// the sink as the mandatory end node, making the free edge into the sink the
// mechanism that terminates the tour after the last real stop. This converts
// a closed-tour search into an open-path search without a bespoke algorithm.
package solver

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrInfeasible is returned when no feasible visiting order exists. The sink
// construction guarantees feasibility for well-formed matrices, so hitting
// this indicates a defect or pathological sentinel-cost input, not a
// transient condition.
var ErrInfeasible = errors.New("no feasible route found")

// Cost out of the sink node; large enough that the search never routes
// through the sink except as the final destination.
const sinkExitCost = 1e9

// Wall-clock bounds for the metaheuristic search. Routing search is NP-hard;
// the limit trades optimality for bounded latency on a synchronous endpoint.
const (
	DefaultTimeLimit = 5 * time.Second
	MinTimeLimit     = 1 * time.Second
	MaxTimeLimit     = 30 * time.Second
)

// ClampTimeLimit bounds a configured search budget to [MinTimeLimit, MaxTimeLimit].
// Non-positive values select the default.
func ClampTimeLimit(d time.Duration) time.Duration {
	if d <= 0 {
		return DefaultTimeLimit
	}
	if d < MinTimeLimit {
		return MinTimeLimit
	}
	if d > MaxTimeLimit {
		return MaxTimeLimit
	}
	return d
}

// SolveOpenRoute returns the node visiting order over durationSeconds
// starting at startIndex, covering every other node exactly once, with no
// forced return. The first element of the result is always startIndex.
//
// The search runs an initial cheapest-arc construction followed by guided
// local search until timeLimit expires or ctx is cancelled. Cancellation
// abandons the search promptly and returns the context error.
func SolveOpenRoute(ctx context.Context, durationSeconds [][]float64, startIndex int, timeLimit time.Duration) ([]int, error) {
	n := len(durationSeconds)
	if n == 0 {
		return []int{}, nil
	}
	if startIndex < 0 || startIndex >= n {
		return nil, fmt.Errorf("start index %d out of range for %d nodes", startIndex, n)
	}
	for i, row := range durationSeconds {
		if len(row) != n {
			return nil, fmt.Errorf("duration matrix row %d has %d columns, want %d", i, len(row), n)
		}
	}
	if n == 1 {
		return []int{startIndex}, nil
	}

	// Augment with the synthetic sink at index n.
	sink := n
	cost := make([][]float64, n+1)
	for i := 0; i <= n; i++ {
		cost[i] = make([]float64, n+1)
	}
	for i := 0; i < n; i++ {
		copy(cost[i][:n], durationSeconds[i])
		cost[i][sink] = 0
		cost[sink][i] = sinkExitCost
	}
	cost[sink][sink] = 0

	// Initial feasible path [start, reals..., sink] by cheapest-arc extension.
	path := cheapestArcPath(cost, n, startIndex)
	if len(path) != n+1 {
		return nil, ErrInfeasible
	}

	// Improve with guided local search inside the time budget. Two movable
	// positions or fewer means there is nothing left to permute.
	if n > 2 {
		var err error
		path, err = guidedLocalSearch(ctx, cost, path, timeLimit)
		if err != nil {
			return nil, err
		}
	}

	sequence := make([]int, 0, n)
	for _, node := range path {
		if node != sink {
			sequence = append(sequence, node)
		}
	}
	if len(sequence) != n || sequence[0] != startIndex {
		return nil, ErrInfeasible
	}

	return sequence, nil
}

// cheapestArcPath builds [start, remaining reals by greedy cheapest arc, sink].
func cheapestArcPath(cost [][]float64, n, startIndex int) []int {
	visited := make([]bool, n)
	visited[startIndex] = true

	path := make([]int, 0, n+1)
	path = append(path, startIndex)

	current := startIndex
	for len(path) < n {
		next := -1
		for candidate := 0; candidate < n; candidate++ {
			if visited[candidate] {
				continue
			}
			if next == -1 || cost[current][candidate] < cost[current][next] {
				next = candidate
			}
		}
		if next == -1 {
			break
		}
		visited[next] = true
		path = append(path, next)
		current = next
	}

	return append(path, n)
}
