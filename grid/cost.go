package grid

import "math"

// StepCost is the cost of moving between two cells: 1 for an orthogonal
// step, √2 for a diagonal one, 0 when a == b and +Inf when they are not
// adjacent.
func StepCost(a, b Cell) float64 {
	dx, dy := absInt(a.X-b.X), absInt(a.Y-b.Y)
	switch {
	case dx == 0 && dy == 0:
		return 0
	case dx > 1 || dy > 1:
		return math.Inf(1)
	case dx == 1 && dy == 1:
		return math.Sqrt2
	default:
		return 1
	}
}

// Octile is the octile distance between a and b. It never overestimates the
// cost of an 8-connected path priced by StepCost, and it is consistent.
func Octile(a, b Cell) float64 {
	dx, dy := absInt(a.X-b.X), absInt(a.Y-b.Y)
	return float64(dx+dy) + (math.Sqrt2-2)*float64(min(dx, dy))
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
