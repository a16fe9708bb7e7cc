package solver

import (
	"context"
	"testing"
	"time"
)

func TestSolveOpenRouteNoNodes(t *testing.T) {
	sequence, err := SolveOpenRoute(context.Background(), [][]float64{}, 0, time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sequence) != 0 {
		t.Fatalf("sequence = %v, want empty", sequence)
	}
}

func TestSolveOpenRouteSingleNode(t *testing.T) {
	sequence, err := SolveOpenRoute(context.Background(), [][]float64{{0}}, 0, time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sequence) != 1 || sequence[0] != 0 {
		t.Fatalf("sequence = %v, want [0]", sequence)
	}
}

func TestSolveOpenRouteTwoNodes(t *testing.T) {
	durations := [][]float64{
		{0, 120},
		{120, 0},
	}

	sequence, err := SolveOpenRoute(context.Background(), durations, 0, time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sequence) != 2 || sequence[0] != 0 || sequence[1] != 1 {
		t.Fatalf("sequence = %v, want [0 1]", sequence)
	}
}

func TestSolveOpenRouteStopSetPreservation(t *testing.T) {
	// Asymmetric 6-node matrix; the exact order is not asserted, only that
	// the result is a permutation starting at the requested index.
	durations := [][]float64{
		{0, 10, 42, 7, 33, 18},
		{12, 0, 9, 25, 40, 6},
		{38, 11, 0, 16, 8, 29},
		{9, 27, 14, 0, 21, 35},
		{31, 44, 10, 19, 0, 13},
		{17, 8, 26, 34, 12, 0},
	}

	sequence, err := SolveOpenRoute(context.Background(), durations, 2, time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(sequence) != 6 {
		t.Fatalf("sequence length = %d, want 6", len(sequence))
	}
	if sequence[0] != 2 {
		t.Fatalf("sequence starts at %d, want 2", sequence[0])
	}

	seen := make(map[int]bool, 6)
	for _, node := range sequence {
		if node < 0 || node > 5 {
			t.Fatalf("node %d out of range", node)
		}
		if seen[node] {
			t.Fatalf("node %d visited twice in %v", node, sequence)
		}
		seen[node] = true
	}
}

func TestSolveOpenRouteImprovesOnGreedy(t *testing.T) {
	// Greedy cheapest-arc from node 0 picks 0->1 (1) then 1->2 (10) for a
	// total of 11; the optimal open path 0->2->1 costs 3. The search must
	// escape the greedy construction.
	durations := [][]float64{
		{0, 1, 2},
		{5, 0, 10},
		{9, 1, 0},
	}

	sequence, err := SolveOpenRoute(context.Background(), durations, 0, time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(sequence) != 3 || sequence[0] != 0 {
		t.Fatalf("sequence = %v, want permutation starting at 0", sequence)
	}

	total := 0.0
	for i := 0; i+1 < len(sequence); i++ {
		total += durations[sequence[i]][sequence[i+1]]
	}
	if total != 3 {
		t.Fatalf("total duration = %f (sequence %v), want optimal 3", total, sequence)
	}
}

func TestSolveOpenRouteCancellation(t *testing.T) {
	durations := [][]float64{
		{0, 1, 2, 3},
		{1, 0, 1, 2},
		{2, 1, 0, 1},
		{3, 2, 1, 0},
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := SolveOpenRoute(ctx, durations, 0, 30*time.Second); err == nil {
		t.Fatal("expected error from cancelled context")
	}
}

func TestSolveOpenRouteStartIndexOutOfRange(t *testing.T) {
	if _, err := SolveOpenRoute(context.Background(), [][]float64{{0, 1}, {1, 0}}, 5, time.Second); err == nil {
		t.Fatal("expected error for out-of-range start index")
	}
}

func TestClampTimeLimit(t *testing.T) {
	cases := []struct {
		in   time.Duration
		want time.Duration
	}{
		{0, DefaultTimeLimit},
		{-time.Second, DefaultTimeLimit},
		{500 * time.Millisecond, MinTimeLimit},
		{10 * time.Second, 10 * time.Second},
		{5 * time.Minute, MaxTimeLimit},
	}

	for _, c := range cases {
		if got := ClampTimeLimit(c.in); got != c.want {
			t.Fatalf("ClampTimeLimit(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}
