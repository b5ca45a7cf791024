package grid

import "math/rand"

// Scatter blocks count randomly picked cells. Picks may repeat, so fewer
// than count cells can end up blocked.
func (g *Grid) Scatter(rng *rand.Rand, count int) {
	for i := 0; i < count; i++ {
		g.cells[rng.Intn(len(g.cells))] = true
	}
}

// FillPercent scatters width*height*percent/100 obstacles.
func (g *Grid) FillPercent(rng *rand.Rand, percent int) {
	g.Scatter(rng, len(g.cells)*percent/100)
}
