package astar

import (
	"container/heap"
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/pdrpinto/gridastar/grid"
)

// adjacency is a small directed test graph.
type adjacency map[string][]Neighbor[string]

func (a adjacency) Neighbors(n string) []Neighbor[string] { return a[n] }

func zero(string, string) float64 { return 0 }

func TestPriorityQueueTieBreak(t *testing.T) {
	t.Parallel()
	queue := priorityQueue{}
	entries := []openEntry{
		{node: 0, f: 5, h: 2, seq: 1},
		{node: 1, f: 4, h: 3, seq: 2},
		{node: 2, f: 5, h: 1, seq: 3},
		{node: 3, f: 5, h: 1, seq: 4},
		{node: 4, f: 4, h: 3, seq: 5},
	}
	for _, e := range entries {
		heap.Push(&queue, e)
	}

	var got []int32
	for queue.Len() > 0 {
		got = append(got, heap.Pop(&queue).(openEntry).node)
	}
	want := []int32{1, 4, 2, 3, 0}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("pop order = %v, want %v", got, want)
	}
}

func TestSearchImprovesDiscoveredNode(t *testing.T) {
	t.Parallel()
	// c is first discovered through the expensive a->c edge and must be
	// improved in place once b is expanded.
	g := adjacency{
		"a": {{ID: "c", Cost: 5}, {ID: "b", Cost: 1}},
		"b": {{ID: "c", Cost: 1}},
		"c": {{ID: "d", Cost: 1}},
	}

	got, err := Search(context.Background(), g, "a", "d", zero)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if want := []string{"a", "b", "c", "d"}; !reflect.DeepEqual(got.Path, want) {
		t.Fatalf("Path = %v, want %v", got.Path, want)
	}
	if got.TotalCost != 3 {
		t.Fatalf("TotalCost = %v, want 3", got.TotalCost)
	}
	// a, b, c, d each expanded once; the stale c entry is skipped.
	if got.ExpandedNodes != 4 {
		t.Fatalf("ExpandedNodes = %d, want 4", got.ExpandedNodes)
	}
}

func TestSearchSkipsClosedNeighbors(t *testing.T) {
	t.Parallel()
	// The cycle back to a must not reopen it or form a parent loop.
	g := adjacency{
		"a": {{ID: "b", Cost: 1}},
		"b": {{ID: "a", Cost: 1}, {ID: "c", Cost: 1}},
		"c": {{ID: "a", Cost: 1}, {ID: "b", Cost: 1}},
	}

	got, err := Search(context.Background(), g, "a", "c", zero)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if want := []string{"a", "b", "c"}; !reflect.DeepEqual(got.Path, want) {
		t.Fatalf("Path = %v, want %v", got.Path, want)
	}
}

func TestSearchNoPath(t *testing.T) {
	t.Parallel()
	g := adjacency{
		"a": {{ID: "b", Cost: 1}},
		"b": {{ID: "a", Cost: 1}},
		"z": {},
	}

	got, err := Search(context.Background(), g, "a", "z", zero)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if got.Found || got.Truncated || got.Path != nil || got.ExpandedNodes != 2 {
		t.Fatalf("Search() = %+v, want not found after 2 expansions", got)
	}
}

func TestSearchNoPathAtExpansionLimit(t *testing.T) {
	t.Parallel()
	g := adjacency{
		"a": {{ID: "b", Cost: 1}},
		"b": {{ID: "a", Cost: 1}},
		"z": {},
	}

	for _, limit := range []int{2, 3} {
		got, err := Search(context.Background(), g, "a", "z", zero, WithMaxExpansions(limit))
		if err != nil {
			t.Fatalf("Search() error = %v", err)
		}
		if got.Found || got.Truncated || got.ExpandedNodes != 2 {
			t.Fatalf("WithMaxExpansions(%d): Search() = %+v, want plain not found after 2 expansions", limit, got)
		}
	}

	got, err := Search(context.Background(), g, "a", "z", zero, WithMaxExpansions(1))
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if got.Found || !got.Truncated || got.ExpandedNodes != 1 {
		t.Fatalf("WithMaxExpansions(1): Search() = %+v, want truncated after 1 expansion", got)
	}
}

func TestSearchInadmissibleHeuristicStillTerminates(t *testing.T) {
	t.Parallel()
	g, err := grid.New(12, 12)
	if err != nil {
		t.Fatalf("grid.New() error = %v", err)
	}
	for y := 0; y < 11; y++ {
		_ = g.SetObstacle(6, y, true)
	}
	overestimate := func(a, b grid.Cell) float64 { return 10 * grid.Octile(a, b) }
	start, goal := grid.Cell{X: 0, Y: 0}, grid.Cell{X: 11, Y: 0}

	got, err := Search(context.Background(), GridGraph{Grid: g}, start, goal, overestimate)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if !got.Found {
		t.Fatalf("Search() found no path")
	}
	checkPath(t, g, got.Path, start, goal)
}

func TestStepperMatchesSearch(t *testing.T) {
	t.Parallel()
	g := randomGrid(t, 20, 30, 4)
	start, goal := grid.Cell{}, grid.Cell{X: 19, Y: 19}

	want, err := Search(context.Background(), GridGraph{Grid: g}, start, goal, grid.Octile)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	stepper := NewStepper[grid.Cell](GridGraph{Grid: g}, start, goal, grid.Octile)
	var last StepSnapshot[grid.Cell]
	for i := 0; i < 20*20+2; i++ {
		last = stepper.Step()
		for c := range last.Open {
			if last.Closed[c] {
				t.Fatalf("step %d: %v is open and closed", last.StepIndex, c)
			}
		}
		if last.Done {
			break
		}
	}
	if !last.Done {
		t.Fatalf("stepper did not finish")
	}
	if last.Found != want.Found || !reflect.DeepEqual(last.Path, want.Path) {
		t.Fatalf("stepper path = %v, search path = %v", last.Path, want.Path)
	}
	if got := stepper.Result(); !reflect.DeepEqual(got, want) {
		t.Fatalf("stepper Result() = %+v, want %+v", got, want)
	}
	if again := stepper.Step(); !again.Done || again.StepIndex != last.StepIndex {
		t.Fatalf("Step() after done advanced to %d", again.StepIndex)
	}
}

func TestStepperMaxExpansions(t *testing.T) {
	t.Parallel()
	g := randomGrid(t, 10, 0, 1)
	stepper := NewStepper[grid.Cell](GridGraph{Grid: g}, grid.Cell{}, grid.Cell{X: 9, Y: 9}, grid.Octile, WithMaxExpansions(2))

	stepper.Step()
	stepper.Step()
	snap := stepper.Step()
	if !snap.Done || !snap.Truncated || snap.Found {
		t.Fatalf("third Step() = %+v, want truncated", snap)
	}
	if len(snap.Closed) != 2 {
		t.Fatalf("closed %d nodes, want 2", len(snap.Closed))
	}
	if snap.CameFrom[grid.Cell{X: 1, Y: 1}] != (grid.Cell{}) {
		t.Fatalf("CameFrom[(1, 1)] = %v, want start", snap.CameFrom[grid.Cell{X: 1, Y: 1}])
	}
}

func TestSearchBatch(t *testing.T) {
	t.Parallel()
	g := adjacency{
		"a": {{ID: "b", Cost: 1}},
		"b": {{ID: "c", Cost: 2}},
		"c": {},
	}
	queries := []Query[string]{
		{Start: "a", Goal: "c"},
		{Start: "b", Goal: "c"},
		{Start: "c", Goal: "a"},
		{Start: "a", Goal: "a"},
	}

	got, err := SearchBatch(context.Background(), g, queries, zero, WithWorkers(3))
	if err != nil {
		t.Fatalf("SearchBatch() error = %v", err)
	}
	wantCosts := []float64{3, 2, 0, 0}
	wantFound := []bool{true, true, false, true}
	for i := range queries {
		if got[i].Found != wantFound[i] || got[i].TotalCost != wantCosts[i] {
			t.Fatalf("result %d = %+v, want found=%v cost=%v", i, got[i], wantFound[i], wantCosts[i])
		}
	}
}

func TestSearchBatchCanceled(t *testing.T) {
	t.Parallel()
	g := adjacency{"a": {{ID: "b", Cost: 1}}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := SearchBatch(ctx, g, []Query[string]{{Start: "a", Goal: "b"}}, zero, WithWorkers(0))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("SearchBatch() error = %v, want context.Canceled", err)
	}
}

func TestStepperNoPath(t *testing.T) {
	t.Parallel()
	g := adjacency{
		"a": {{ID: "b", Cost: 1}},
		"b": {{ID: "a", Cost: 1}},
		"z": {},
	}

	for _, limit := range []int{0, 2} {
		stepper := NewStepper[string](g, "a", "z", zero, WithMaxExpansions(limit))
		var last StepSnapshot[string]
		for i := 0; i < 5 && !last.Done; i++ {
			last = stepper.Step()
		}
		if !last.Done || last.Found || last.Truncated || last.Path != nil {
			t.Fatalf("WithMaxExpansions(%d): final Step() = %+v, want done without a path", limit, last)
		}
		if last.StepIndex != 2 {
			t.Fatalf("WithMaxExpansions(%d): StepIndex = %d, want 2", limit, last.StepIndex)
		}
		if !last.Closed["a"] || !last.Closed["b"] || len(last.Open) != 0 {
			t.Fatalf("WithMaxExpansions(%d): open %v, closed %v", limit, last.Open, last.Closed)
		}
		want := Result[string]{ExpandedNodes: 2}
		if got := stepper.Result(); !reflect.DeepEqual(got, want) {
			t.Fatalf("WithMaxExpansions(%d): Result() = %+v, want %+v", limit, got, want)
		}
	}
}
