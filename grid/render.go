package grid

import (
	"bufio"
	"io"
)

// Render writes g as text, one row per line: "O " for obstacles, "X " for
// cells on path and "- " for free cells.
func Render(w io.Writer, g *Grid, path []Cell) error {
	onPath := make(map[Cell]bool, len(path))
	for _, c := range path {
		onPath[c] = true
	}

	bw := bufio.NewWriter(w)
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			c := Cell{x, y}
			switch {
			case g.cells[g.index(c)]:
				bw.WriteString("O ")
			case onPath[c]:
				bw.WriteString("X ")
			default:
				bw.WriteString("- ")
			}
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
