package solver

import (
	"context"
	"time"
)

// Weight of the penalty term relative to the average arc cost of the initial
// solution. The usual guided-local-search tuning range is 0.1-0.5; the search
// only has one move neighborhood so a mid-range value works well.
const penaltyWeight = 0.3

// glsState carries the augmented-cost bookkeeping for one search run.
// path[0] (the start) and path[len-1] (the sink) are fixed; every position in
// between is movable.
type glsState struct {
	cost    [][]float64
	penalty [][]int
	lambda  float64
}

func (s *glsState) trueCost(path []int) float64 {
	total := 0.0
	for i := 0; i+1 < len(path); i++ {
		total += s.cost[path[i]][path[i+1]]
	}
	return total
}

func (s *glsState) augCost(a, b int) float64 {
	return s.cost[a][b] + s.lambda*float64(s.penalty[a][b])
}

// guidedLocalSearch improves path under the time budget: descend to a local
// minimum of the penalty-augmented objective, penalize the most "useful"
// arcs of the local minimum, and repeat, keeping the best true-cost path seen.
func guidedLocalSearch(ctx context.Context, cost [][]float64, path []int, timeLimit time.Duration) ([]int, error) {
	nodes := len(cost)
	penalty := make([][]int, nodes)
	for i := range penalty {
		penalty[i] = make([]int, nodes)
	}

	state := &glsState{cost: cost, penalty: penalty}

	initial := state.trueCost(path)
	arcs := len(path) - 1
	if arcs > 0 {
		state.lambda = penaltyWeight * initial / float64(arcs)
	}

	deadline := time.Now().Add(ClampTimeLimit(timeLimit))

	best := make([]int, len(path))
	copy(best, path)
	bestCost := initial

	current := make([]int, len(path))
	copy(current, path)

	for time.Now().Before(deadline) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		state.descend(current, deadline)

		if c := state.trueCost(current); c < bestCost {
			bestCost = c
			copy(best, current)
		}

		state.penalizeMaxUtility(current)
	}

	return best, nil
}

// descend applies first-improvement 2-opt and or-opt moves until the path is
// locally minimal under the augmented objective or the deadline passes.
func (s *glsState) descend(path []int, deadline time.Time) {
	for {
		if time.Now().After(deadline) {
			return
		}
		if s.tryTwoOpt(path) {
			continue
		}
		if s.tryOrOpt(path) {
			continue
		}
		return
	}
}

// tryTwoOpt reverses one segment of the movable region if that lowers the
// augmented cost. The duration matrix is asymmetric in general, so the delta
// includes the re-traversed interior arcs, not just the two boundary arcs.
func (s *glsState) tryTwoOpt(path []int) bool {
	last := len(path) - 2 // final movable position; path[last+1] is the sink
	for i := 1; i <= last; i++ {
		for j := i + 1; j <= last; j++ {
			removed := s.augCost(path[i-1], path[i]) + s.augCost(path[j], path[j+1])
			added := s.augCost(path[i-1], path[j]) + s.augCost(path[i], path[j+1])
			for k := i; k < j; k++ {
				removed += s.augCost(path[k], path[k+1])
				added += s.augCost(path[k+1], path[k])
			}
			if added < removed-1e-9 {
				for a, b := i, j; a < b; a, b = a+1, b-1 {
					path[a], path[b] = path[b], path[a]
				}
				return true
			}
		}
	}
	return false
}

// tryOrOpt relocates a short segment (length 1-3) to another position in the
// movable region if that lowers the augmented cost.
func (s *glsState) tryOrOpt(path []int) bool {
	last := len(path) - 2
	for segLen := 1; segLen <= 3; segLen++ {
		for i := 1; i+segLen-1 <= last; i++ {
			j := i + segLen - 1
			detach := s.augCost(path[i-1], path[i]) +
				s.augCost(path[j], path[j+1]) -
				s.augCost(path[i-1], path[j+1])

			for k := 1; k <= last; k++ {
				if k >= i-1 && k <= j {
					continue
				}
				attach := s.augCost(path[k], path[i]) +
					s.augCost(path[j], path[k+1]) -
					s.augCost(path[k], path[k+1])
				if attach < detach-1e-9 {
					s.relocate(path, i, j, k)
					return true
				}
			}
		}
	}
	return false
}

// relocate moves path[i..j] to sit immediately after position k (k outside
// the segment).
func (s *glsState) relocate(path []int, i, j, k int) {
	segment := make([]int, j-i+1)
	copy(segment, path[i:j+1])

	rest := append([]int{}, path[:i]...)
	rest = append(rest, path[j+1:]...)

	insertAfter := k
	if k > j {
		insertAfter = k - len(segment)
	}

	out := path[:0]
	out = append(out, rest[:insertAfter+1]...)
	out = append(out, segment...)
	out = append(out, rest[insertAfter+1:]...)
}

// penalizeMaxUtility increments the penalty of every arc in the current local
// minimum whose utility cost/(1+penalty) is maximal. Penalized arcs become
// expensive under the augmented objective, pushing the next descent away from
// this local minimum.
func (s *glsState) penalizeMaxUtility(path []int) {
	maxUtil := 0.0
	for i := 0; i+1 < len(path); i++ {
		a, b := path[i], path[i+1]
		util := s.cost[a][b] / float64(1+s.penalty[a][b])
		if util > maxUtil {
			maxUtil = util
		}
	}
	if maxUtil == 0 {
		return
	}
	for i := 0; i+1 < len(path); i++ {
		a, b := path[i], path[i+1]
		if s.cost[a][b]/float64(1+s.penalty[a][b]) >= maxUtil-1e-9 {
			s.penalty[a][b]++
		}
	}
}
