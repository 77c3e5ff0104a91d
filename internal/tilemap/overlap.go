package tilemap

import (
	"math"

	"github.com/samdwyer/isogrid/internal/geom"
)

// OverlapBox writes the occupants of every cell in the axis-aligned box
// centered at center into result, scanning row by row from the box's low
// corner, and returns how many were written. Scanning stops once result is
// full. An occupant covering several cells is reported once per cell.
func (g *Grid[T]) OverlapBox(center, size geom.Vec2, result []T) int {
	if len(result) == 0 {
		return 0
	}
	rows := int(math.RoundToEven(size.Y))
	columns := int(math.RoundToEven(size.X))
	if rows <= 0 || columns <= 0 {
		return 0
	}

	index := g.Index(g.transform.Snap(center.Sub(size.Scale(0.5))))
	last := index + (rows-1)*g.width + columns - 1
	inside := g.inRange(index) && g.inRange(last)

	var zero T
	count := 0
	for row := 0; row < rows; row++ {
		for column := 0; column < columns; column++ {
			i := index + column
			if !inside && !g.inRange(i) {
				continue
			}
			occupant := g.cells[i].Occupant
			if occupant == zero {
				continue
			}
			result[count] = occupant
			count++
			if count >= len(result) {
				return count
			}
		}
		index += g.width
	}
	return count
}
