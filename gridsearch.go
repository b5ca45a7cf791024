package astar

import (
	"context"
	"errors"
	"fmt"

	"github.com/pdrpinto/gridastar/grid"
)

var (
	// ErrInvalidCell is returned when a start or goal lies outside the grid.
	ErrInvalidCell = errors.New("astar: cell outside grid")
	// ErrNilGrid is returned when FindPath is given no grid.
	ErrNilGrid = errors.New("astar: nil grid")
)

// GridGraph adapts a grid.Grid to Graph: walkable Moore neighbours, priced
// 1 orthogonally and √2 diagonally.
type GridGraph struct {
	Grid *grid.Grid
}

// Neighbors returns the walkable cells around c with their step costs.
func (gg GridGraph) Neighbors(c grid.Cell) []Neighbor[grid.Cell] {
	cells := gg.Grid.Neighbors(c)
	out := make([]Neighbor[grid.Cell], 0, len(cells))
	for _, n := range cells {
		out = append(out, Neighbor[grid.Cell]{ID: n, Cost: grid.StepCost(c, n)})
	}
	return out
}

// FindPath searches g from start to goal with the octile heuristic.
//
// Coordinates outside g are rejected with ErrInvalidCell. A blocked goal (or
// start) yields a not-found Result without expanding anything.
func FindPath(ctx context.Context, g *grid.Grid, start, goal grid.Cell, options ...Option) (Result[grid.Cell], error) {
	if err := validateEndpoints(g, start, goal); err != nil {
		searchesTotal.WithLabelValues(outcomeInvalid).Inc()
		return Result[grid.Cell]{}, err
	}
	if g.IsObstacle(goal.X, goal.Y) || g.IsObstacle(start.X, start.Y) {
		searchesTotal.WithLabelValues(outcomeNoPath).Inc()
		return Result[grid.Cell]{}, nil
	}
	return Search(ctx, GridGraph{Grid: g}, start, goal, grid.Octile, options...)
}

// FindPaths runs FindPath for every query on a pool of WithWorkers
// goroutines. Results keep query order.
func FindPaths(ctx context.Context, g *grid.Grid, queries []Query[grid.Cell], options ...Option) ([]Result[grid.Cell], error) {
	return runBatch(ctx, queries, options, func(ctx context.Context, query Query[grid.Cell]) (Result[grid.Cell], error) {
		return FindPath(ctx, g, query.Start, query.Goal, options...)
	})
}

func validateEndpoints(g *grid.Grid, start, goal grid.Cell) error {
	if g == nil {
		return ErrNilGrid
	}
	for _, c := range [2]grid.Cell{start, goal} {
		if !g.InBounds(c) {
			return fmt.Errorf("%w: %v in %dx%d", ErrInvalidCell, c, g.Width(), g.Height())
		}
	}
	return nil
}

// PathCost sums the step costs along path. It is 0 for paths shorter than
// two cells.
func PathCost(path []grid.Cell) float64 {
	if len(path) == 0 {
		return 0
	}
	return AccumulatedCost(path, len(path)-1)
}

// AccumulatedCost is the cost from path[0] to path[i], following each cell's
// predecessor on the path.
func AccumulatedCost(path []grid.Cell, i int) float64 {
	cost := 0.0
	for k := i; k > 0; k-- {
		cost += grid.StepCost(path[k-1], path[k])
	}
	return cost
}
