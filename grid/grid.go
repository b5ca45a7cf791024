// Package grid provides a fixed-size occupancy map of free and blocked cells
// with the 8-connected neighbourhood used by the search engine.
package grid

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidDimensions is returned by New when width or height is not
	// positive, or when the cell count does not fit in an int.
	ErrInvalidDimensions = errors.New("grid: dimensions must be positive")
	// ErrOutOfBounds is returned when writing a cell outside the grid.
	ErrOutOfBounds = errors.New("grid: coordinates out of bounds")
)

// Cell is a grid coordinate. Two cells are the same node iff X and Y match.
type Cell struct {
	X, Y int
}

func (c Cell) String() string { return fmt.Sprintf("(%d, %d)", c.X, c.Y) }

// mooreOffsets is the fixed, row-major neighbour order. Search tie-breaks
// depend on it, so it must not change.
var mooreOffsets = [8]Cell{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// Grid stores one occupancy flag per cell.
//
// Grid is not safe for concurrent mutation. Any number of searches may read
// it concurrently as long as nothing calls a setter meanwhile.
type Grid struct {
	width  int
	height int
	cells  []bool // row-major: cells[y*width + x], true = blocked
}

// New returns a width x height grid with every cell free.
func New(width, height int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if width > math.MaxInt/height {
		return nil, fmt.Errorf("%w: %dx%d overflows", ErrInvalidDimensions, width, height)
	}
	return &Grid{
		width:  width,
		height: height,
		cells:  make([]bool, width*height),
	}, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// InBounds reports whether c lies inside the grid.
func (g *Grid) InBounds(c Cell) bool {
	return c.X >= 0 && c.X < g.width && c.Y >= 0 && c.Y < g.height
}

// IsObstacle reports whether (x, y) is inside the grid and blocked.
// Out-of-bounds coordinates are not obstacles; use Walkable for traversal.
func (g *Grid) IsObstacle(x, y int) bool {
	c := Cell{x, y}
	return g.InBounds(c) && g.cells[g.index(c)]
}

// Walkable reports whether c is in bounds and free.
func (g *Grid) Walkable(c Cell) bool {
	return g.InBounds(c) && !g.cells[g.index(c)]
}

// SetObstacle marks (x, y) blocked or free. Out-of-bounds writes leave the
// grid untouched and return ErrOutOfBounds.
func (g *Grid) SetObstacle(x, y int, blocked bool) error {
	c := Cell{x, y}
	if !g.InBounds(c) {
		return fmt.Errorf("%w: %v in %dx%d", ErrOutOfBounds, c, g.width, g.height)
	}
	g.cells[g.index(c)] = blocked
	return nil
}

// ToggleObstacle flips the occupancy of (x, y).
func (g *Grid) ToggleObstacle(x, y int) error {
	return g.SetObstacle(x, y, !g.IsObstacle(x, y))
}

// Reset frees every cell.
func (g *Grid) Reset() {
	clear(g.cells)
}

// Obstacles lists blocked cells in row-major order.
func (g *Grid) Obstacles() []Cell {
	var out []Cell
	for i, blocked := range g.cells {
		if blocked {
			out = append(out, Cell{X: i % g.width, Y: i / g.width})
		}
	}
	return out
}

// Clone returns an independent copy of g.
func (g *Grid) Clone() *Grid {
	cells := make([]bool, len(g.cells))
	copy(cells, g.cells)
	return &Grid{width: g.width, height: g.height, cells: cells}
}

// Neighbors returns the walkable cells among the eight surrounding c, in a
// fixed row-major order.
func (g *Grid) Neighbors(c Cell) []Cell {
	out := make([]Cell, 0, len(mooreOffsets))
	for _, d := range mooreOffsets {
		n := Cell{c.X + d.X, c.Y + d.Y}
		if g.Walkable(n) {
			out = append(out, n)
		}
	}
	return out
}

func (g *Grid) index(c Cell) int { return c.Y*g.width + c.X }
