// Package layout builds obstacle layouts from boolean expressions over the
// cell coordinates, e.g. `x == 5 && y < 8` for a wall with a gap.
package layout

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/pdrpinto/gridastar/grid"
)

// Env is the environment one expression is evaluated in, once per cell.
type Env struct {
	X int `expr:"x"`
	Y int `expr:"y"`
	W int `expr:"w"` // grid width
	H int `expr:"h"` // grid height
}

// Border reports whether the cell is on the outer ring of the grid.
func (e Env) Border() bool {
	return e.X == 0 || e.Y == 0 || e.X == e.W-1 || e.Y == e.H-1
}

// Abs is exposed for diagonal walls such as `Abs(x - y) == 0`.
func (e Env) Abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Layout is a compiled obstacle expression.
type Layout struct {
	Source  string
	program *vm.Program
}

// Compile checks src against Env and requires it to yield a bool.
func Compile(src string) (*Layout, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return nil, fmt.Errorf("layout: empty expression")
	}
	program, err := expr.Compile(src, expr.Env(Env{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("layout: compile %q: %w", src, err)
	}
	return &Layout{Source: src, program: program}, nil
}

// Blocked evaluates the expression for c on g.
func (l *Layout) Blocked(g *grid.Grid, c grid.Cell) (bool, error) {
	out, err := expr.Run(l.program, Env{X: c.X, Y: c.Y, W: g.Width(), H: g.Height()})
	if err != nil {
		return false, fmt.Errorf("layout: eval %q at %v: %w", l.Source, c, err)
	}
	return out.(bool), nil
}

// Apply blocks every cell of g for which the expression holds and returns
// how many cells it blocked. Cells where it is false are left as they were.
func (l *Layout) Apply(g *grid.Grid) (int, error) {
	blocked := 0
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			hit, err := l.Blocked(g, grid.Cell{X: x, Y: y})
			if err != nil {
				return blocked, err
			}
			if !hit {
				continue
			}
			if err := g.SetObstacle(x, y, true); err != nil {
				return blocked, err
			}
			blocked++
		}
	}
	return blocked, nil
}
